// DateTimeTool implementation.
package agent

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/openai/openai-go"
)

// DateTimeTool implements the datetime tool: it reports the current date
// and time, optionally in a caller-supplied IANA timezone and layout.
type DateTimeTool struct {
	// Now is substitutable for tests; nil means time.Now.
	Now func() time.Time
}

func (t *DateTimeTool) Name() string {
	return "datetime"
}

func (t *DateTimeTool) Definition() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name:        "datetime",
			Description: openai.String("Get the current date and time"),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"timezone": map[string]any{
						"type":        "string",
						"description": "IANA timezone name such as America/New_York; defaults to UTC",
					},
					"format": map[string]any{
						"type":        "string",
						"description": "Go time layout string; defaults to RFC3339",
					},
				},
			},
		},
	}
}

func (t *DateTimeTool) Execute(argText string) (string, error) {
	var args struct {
		Timezone string `json:"timezone"`
		Format   string `json:"format"`
	}
	if argText != "" {
		if err := json.Unmarshal([]byte(argText), &args); err != nil {
			return marshalToolResponse("datetime", nil, err)
		}
	}

	loc := time.UTC
	if args.Timezone != "" {
		parsed, err := time.LoadLocation(args.Timezone)
		if err != nil {
			return marshalToolResponse("datetime", nil, fmt.Errorf("unknown timezone %q", args.Timezone))
		}
		loc = parsed
	}

	layout := time.RFC3339
	if args.Format != "" {
		layout = args.Format
	}

	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	current := now().In(loc)

	return marshalToolResponse("datetime", map[string]any{
		"datetime": current.Format(layout),
		"timezone": loc.String(),
		"unix":     current.Unix(),
	}, nil)
}
