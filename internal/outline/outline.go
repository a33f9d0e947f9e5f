package outline

import (
	"context"
	"log/slog"

	"deckwright/internal/deck"
	"deckwright/internal/generation"
	"deckwright/internal/logging"
	"deckwright/internal/services"
	"deckwright/internal/targets"
)

// Stage generates outlines.
type Stage struct {
	gen    generation.Generator
	model  string
	logger *slog.Logger
}

// New constructs an outline stage that uses model for every call.
func New(gen generation.Generator, model string, logger *slog.Logger) *Stage {
	return &Stage{gen: gen, model: model, logger: logging.NewComponentLogger(logger, "outline")}
}

// Generate produces an outline for the input. The first failure triggers one
// stricter retry; a second failure is returned.
func (s *Stage) Generate(ctx context.Context, in deck.UserInput, t targets.Targets) (deck.Outline, error) {
	logger := logging.WithContext(ctx, s.logger)

	outline, err := s.attempt(ctx, in, t, false)
	if err == nil {
		return outline, nil
	}
	logging.WarnWithContext(logger, "outline generation failed; retrying with strict prompt", "outline_retry",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "model reply did not match the outline schema"),
		logging.String(logging.FieldImpact, "one extra generation call"),
	)

	outline, err = s.attempt(ctx, in, t, true)
	if err != nil {
		return deck.Outline{}, services.Wrap(services.ErrExternalTool, "outline", "generate", "outline generation failed after strict retry", err)
	}
	return outline, nil
}

func (s *Stage) attempt(ctx context.Context, in deck.UserInput, t targets.Targets, strict bool) (deck.Outline, error) {
	var outline deck.Outline
	err := s.gen.Generate(ctx, generation.Request{
		System:    systemPrompt(strict),
		Prompt:    userPrompt(in, t, strict),
		Model:     s.model,
		Schema:    Schema(),
		Normalize: Normalize,
	}, &outline)
	return outline, err
}
