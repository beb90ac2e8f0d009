// Package agent runs a single prompt against a language model provider.
package agent

import (
	"context"
	"fmt"

	"github.com/structurerun/structurerun/pkg/model"
)

// Runner is the seam between the CLI and the hosted model provider. The
// command surface and bootstrap are tested against a substitute Runner with
// no network dependency.
type Runner interface {
	Run(ctx context.Context, prompt string, choice model.Choice) (string, error)
}

// UpstreamError wraps a provider-side failure (authentication, rate limit,
// network). It is propagated to the exit path untranslated and never
// retried.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream provider: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
