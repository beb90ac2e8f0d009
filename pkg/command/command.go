// Package command parses process arguments into a validated run request.
package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/structurerun/structurerun/pkg/model"
)

// Request is one validated invocation: a prompt plus the model to run it on.
// A Request is never constructed with a model outside the enumeration.
type Request struct {
	Prompt string
	Model  model.Choice
}

// ErrorKind classifies why parsing failed.
type ErrorKind int

const (
	// ErrMissingPrompt covers both an absent prompt and an empty one.
	ErrMissingPrompt ErrorKind = iota
	ErrExtraArgs
	ErrUnknownFlag
	ErrMissingValue
	ErrBadModel
)

// ParseError reports the first constraint the argument list violated.
type ParseError struct {
	Kind  ErrorKind
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrMissingPrompt:
		return "prompt is required and must be non-empty"
	case ErrExtraArgs:
		return fmt.Sprintf("unexpected argument %q: exactly one prompt is accepted", e.Token)
	case ErrUnknownFlag:
		return fmt.Sprintf("unknown flag %q", e.Token)
	case ErrMissingValue:
		return fmt.Sprintf("flag %q requires a value", e.Token)
	case ErrBadModel:
		return e.Err.Error()
	}
	return "invalid arguments"
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse validates argv (without the program name) into a Request. The prompt
// is positional; -model/-m may appear before or after it. Parse performs no
// I/O and reads no environment.
func Parse(argv []string) (Request, error) {
	req := Request{Model: model.Default}
	prompt := ""
	havePrompt := false

	setModel := func(value string) *ParseError {
		choice, err := model.Parse(value)
		if err != nil {
			return &ParseError{Kind: ErrBadModel, Token: value, Err: err}
		}
		req.Model = choice
		return nil
	}

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--model" || arg == "-m":
			if i+1 >= len(argv) {
				return Request{}, &ParseError{Kind: ErrMissingValue, Token: arg}
			}
			i++
			if perr := setModel(argv[i]); perr != nil {
				return Request{}, perr
			}
		case strings.HasPrefix(arg, "--model="):
			if perr := setModel(strings.TrimPrefix(arg, "--model=")); perr != nil {
				return Request{}, perr
			}
		case strings.HasPrefix(arg, "-m="):
			if perr := setModel(strings.TrimPrefix(arg, "-m=")); perr != nil {
				return Request{}, perr
			}
		case strings.HasPrefix(arg, "-") && arg != "-":
			return Request{}, &ParseError{Kind: ErrUnknownFlag, Token: arg}
		default:
			if havePrompt {
				return Request{}, &ParseError{Kind: ErrExtraArgs, Token: arg}
			}
			prompt = arg
			havePrompt = true
		}
	}

	if !havePrompt || prompt == "" {
		return Request{}, &ParseError{Kind: ErrMissingPrompt}
	}
	req.Prompt = prompt
	return req, nil
}

// Usage writes the CLI synopsis to w.
func Usage(w io.Writer, program string) {
	_, _ = fmt.Fprintf(w, "Usage: %s [flags] <prompt>\n\n", program)
	_, _ = fmt.Fprintln(w, "Run a single prompt against the agent and print its answer.")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Flags:")
	_, _ = fmt.Fprintf(w, "  -m, --model <id>   model to run the prompt on (default %s)\n", model.Default)
	_, _ = fmt.Fprintf(w, "                     valid models: %s\n", model.ChoicesText())
}
