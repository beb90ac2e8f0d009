// OpenAI-backed Runner with a bounded tool-call loop.
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	configpkg "github.com/structurerun/structurerun/pkg/config"
	loggerpkg "github.com/structurerun/structurerun/pkg/logger"
	"github.com/structurerun/structurerun/pkg/model"
)

// OpenAIRunner runs prompts through the OpenAI chat completions API, giving
// the model access to the built-in tool registry.
type OpenAIRunner struct {
	client   openai.Client
	tools    *Registry
	maxTurns int
	logger   loggerpkg.Logger
	verbose  bool
}

// RunnerOption configures optional dependencies for OpenAIRunner.
type RunnerOption func(*OpenAIRunner)

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) RunnerOption {
	return func(r *OpenAIRunner) { r.logger = l }
}

// NewOpenAIRunner builds a runner from cfg. The API key is not validated
// here: a missing key surfaces as the provider's authentication error when
// the first request is made.
func NewOpenAIRunner(cfg configpkg.Config, opts ...RunnerOption) *OpenAIRunner {
	cfg = configpkg.Normalize(cfg)

	clientOpts := []option.RequestOption{}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.APIKey))
	}

	r := &OpenAIRunner{
		client:   openai.NewClient(clientOpts...),
		tools:    NewRegistry(),
		maxTurns: cfg.MaxTurns,
		logger:   loggerpkg.NopLogger{},
		verbose:  cfg.Verbose,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Run sends the prompt and resolves tool calls until the model produces a
// final answer or the turn budget is exhausted. Provider failures come back
// as *UpstreamError.
func (r *OpenAIRunner) Run(ctx context.Context, prompt string, choice model.Choice) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	}

	for turn := 0; turn < r.maxTurns; turn++ {
		loggerpkg.Debug(r.verbose, r.logger, "chat turn", map[string]any{
			"turn":     turn + 1,
			"messages": len(messages),
			"model":    string(choice),
		})

		completion, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:    openai.ChatModel(choice),
			Messages: messages,
			Tools:    r.tools.Definitions(),
		})
		if err != nil {
			return "", &UpstreamError{Err: err}
		}
		if len(completion.Choices) == 0 {
			return "", &UpstreamError{Err: errors.New("empty completion choices")}
		}

		message := completion.Choices[0].Message
		if len(message.ToolCalls) == 0 {
			return message.Content, nil
		}

		messages = append(messages, message.ToParam())
		for _, call := range message.ToolCalls {
			loggerpkg.Debug(r.verbose, r.logger, "tool call", map[string]any{
				"tool": call.Function.Name,
				"id":   call.ID,
			})
			output, err := r.tools.Execute(call)
			if err != nil {
				output = fmt.Sprintf(`{"ok":false,"error":%q}`, err.Error())
			}
			messages = append(messages, openai.ToolMessage(output, call.ID))
		}
	}

	return "", &UpstreamError{Err: errors.New("max turns reached without assistant content")}
}
