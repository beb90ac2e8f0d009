package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/structurerun/structurerun/pkg/model"
)

func TestParsePromptOnlyUsesDefaultModel(t *testing.T) {
	req, err := Parse([]string{"Hi, how are you doing?"})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if req.Prompt != "Hi, how are you doing?" {
		t.Fatalf("prompt = %q", req.Prompt)
	}
	if req.Model != model.Default {
		t.Fatalf("model = %q, want default %q", req.Model, model.Default)
	}
}

func TestParseModelFlagForms(t *testing.T) {
	cases := [][]string{
		{"Hello", "--model", "gpt-4o-mini"},
		{"Hello", "-m", "gpt-4o-mini"},
		{"Hello", "--model=gpt-4o-mini"},
		{"Hello", "-m=gpt-4o-mini"},
		{"--model", "gpt-4o-mini", "Hello"}, // flag before the prompt
	}
	for _, argv := range cases {
		req, err := Parse(argv)
		if err != nil {
			t.Errorf("Parse(%v) returned error: %v", argv, err)
			continue
		}
		if req.Prompt != "Hello" || req.Model != model.GPT4oMini {
			t.Errorf("Parse(%v) = %+v", argv, req)
		}
	}
}

func TestParseEveryEnumeratedModel(t *testing.T) {
	for _, c := range model.All() {
		req, err := Parse([]string{"prompt", "--model", string(c)})
		if err != nil {
			t.Fatalf("Parse with model %q returned error: %v", c, err)
		}
		if req.Model != c {
			t.Fatalf("model = %q, want %q", req.Model, c)
		}
	}
}

func TestParseMissingAndEmptyPromptShareKind(t *testing.T) {
	for _, argv := range [][]string{{}, {""}} {
		_, err := Parse(argv)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("Parse(%v) error = %v, want *ParseError", argv, err)
		}
		if perr.Kind != ErrMissingPrompt {
			t.Fatalf("Parse(%v) kind = %v, want ErrMissingPrompt", argv, perr.Kind)
		}
	}
}

func TestParseRejectsUnknownModel(t *testing.T) {
	_, err := Parse([]string{"Hello", "--model", "invalid-model"})
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Kind != ErrBadModel {
		t.Fatalf("kind = %v, want ErrBadModel", perr.Kind)
	}
	for _, c := range model.All() {
		if !strings.Contains(err.Error(), string(c)) {
			t.Errorf("error %q does not list %q", err.Error(), c)
		}
	}
}

func TestParseModelMatchingIsCaseSensitive(t *testing.T) {
	_, err := Parse([]string{"Hello", "-m", "GPT-4O"})
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Kind != ErrBadModel {
		t.Fatalf("expected ErrBadModel for case mismatch, got %v", err)
	}
}

func TestParseErrorKinds(t *testing.T) {
	cases := []struct {
		argv []string
		kind ErrorKind
	}{
		{[]string{"Hello", "world"}, ErrExtraArgs},
		{[]string{"Hello", "--verbose"}, ErrUnknownFlag},
		{[]string{"Hello", "--model"}, ErrMissingValue},
		{[]string{"Hello", "-m"}, ErrMissingValue},
		{[]string{"--model", "gpt-4o"}, ErrMissingPrompt},
	}
	for _, tc := range cases {
		_, err := Parse(tc.argv)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%v) error = %v, want *ParseError", tc.argv, err)
			continue
		}
		if perr.Kind != tc.kind {
			t.Errorf("Parse(%v) kind = %v, want %v", tc.argv, perr.Kind, tc.kind)
		}
	}
}

func TestParseIsPure(t *testing.T) {
	argv := []string{"Hello", "--model", "gpt-4.1"}
	first, err := Parse(argv)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	second, err := Parse(argv)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if first != second {
		t.Fatalf("repeated Parse results differ: %+v vs %+v", first, second)
	}
}

func TestUsageListsModels(t *testing.T) {
	var sb strings.Builder
	Usage(&sb, "structurerun")
	out := sb.String()
	if !strings.Contains(out, "structurerun") {
		t.Errorf("usage missing program name:\n%s", out)
	}
	for _, c := range model.All() {
		if !strings.Contains(out, string(c)) {
			t.Errorf("usage missing model %q:\n%s", c, out)
		}
	}
}
