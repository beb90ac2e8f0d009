// Package model defines the closed set of model identifiers the agent accepts.
package model

import (
	"fmt"
	"strings"
)

// Choice identifies one of the models a prompt may be run against. Values
// outside the enumeration are not constructible through Parse.
type Choice string

const (
	GPT4o     Choice = "gpt-4o"
	GPT4oMini Choice = "gpt-4o-mini"
	GPT41     Choice = "gpt-4.1"
)

// Default is the model used when the caller does not pass -model.
const Default = GPT4o

var all = []Choice{GPT4o, GPT4oMini, GPT41}

// All returns the members in declaration order. The first member is Default.
func All() []Choice {
	out := make([]Choice, len(all))
	copy(out, all)
	return out
}

// Parse maps a raw flag value onto a Choice. Matching is exact string
// equality: values differing only in case, or containing a member as a
// substring, are rejected.
func Parse(s string) (Choice, error) {
	for _, c := range all {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown model %q (valid models: %s)", s, ChoicesText())
}

// ChoicesText renders the members for error and usage text.
func ChoicesText() string {
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
