// Package llm routes composed prompts to the active text-generation
// provider. Exactly one provider is active per process; the choice is made
// once at startup and never re-evaluated.
package llm

import (
	"context"
	"fmt"

	errx "github.com/motobot-ai/server/internal/core/error"
	logx "github.com/motobot-ai/server/pkg/logger"
)

// WarningMarker prefixes every collapsed provider-failure reply.
const WarningMarker = "⚠️"

// Generator is a text-generation provider.
type Generator interface {
	// Name is the user-facing provider label used in failure replies.
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Dispatcher wraps the active Generator and converts every failure into a
// user-visible warning string. The conversation flow never sees a provider
// error; the failed turn's text simply becomes the assistant's message.
type Dispatcher struct {
	gen Generator
}

func NewDispatcher(gen Generator) *Dispatcher {
	return &Dispatcher{gen: gen}
}

// Provider returns the label of the active provider.
func (d *Dispatcher) Provider() string { return d.gen.Name() }

// Generate returns the provider's completion, or a warning-tagged string
// when the call fails for any reason.
func (d *Dispatcher) Generate(ctx context.Context, prompt string) string {
	text, err := d.gen.Generate(ctx, prompt)
	if err != nil {
		logx.Error().
			Err(err).
			Str("provider", d.gen.Name()).
			Str("kind", errx.KindOf(err).String()).
			Msg("generation failed")
		return fmt.Sprintf("%s %s error: %v", WarningMarker, d.gen.Name(), err)
	}
	return text
}
