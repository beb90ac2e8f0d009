// Tool interface and registry.
package agent

import (
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
)

// Tool represents a tool the model may call while answering a prompt.
type Tool interface {
	// Definition returns the tool definition for the OpenAI API.
	Definition() openai.ChatCompletionToolParam
	// Execute executes the tool with the given JSON-encoded arguments.
	Execute(argText string) (string, error)
	// Name returns the tool name.
	Name() string
}

// Registry holds the built-in tools and dispatches calls by name.
type Registry struct {
	tools  map[string]Tool
	params []openai.ChatCompletionToolParam
}

// NewRegistry returns a registry with the built-in tool set.
func NewRegistry() *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	r.Register(&DateTimeTool{})
	return r
}

// Register adds a tool to the registry.
func (r *Registry) Register(tool Tool) {
	r.tools[tool.Name()] = tool
	r.params = append(r.params, tool.Definition())
}

// Definitions returns all tool definitions for the OpenAI API.
func (r *Registry) Definitions() []openai.ChatCompletionToolParam {
	return r.params
}

// Execute dispatches a tool call by name.
func (r *Registry) Execute(call openai.ChatCompletionMessageToolCall) (string, error) {
	tool, ok := r.tools[call.Function.Name]
	if !ok {
		return marshalToolResponse(call.Function.Name, nil, fmt.Errorf("unknown tool: %s", call.Function.Name))
	}
	return tool.Execute(call.Function.Arguments)
}

// toolResponse is the wrapper sent back to the model after tool execution.
type toolResponse struct {
	OK   bool   `json:"ok"`
	Tool string `json:"tool,omitempty"`
	Data any    `json:"data,omitempty"`
	Err  string `json:"error,omitempty"`
}

// marshalToolResponse encodes a tool response as JSON.
func marshalToolResponse(tool string, data any, err error) (string, error) {
	resp := toolResponse{
		OK:   err == nil,
		Tool: tool,
		Data: data,
	}
	if err != nil {
		resp.Err = err.Error()
	}
	payload, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		return "", marshalErr
	}
	return string(payload), nil
}
