// Package manuscript expands an outline into continuous spoken prose.
package manuscript

import (
	"context"
	"log/slog"

	"deckwright/internal/deck"
	"deckwright/internal/generation"
	"deckwright/internal/logging"
	"deckwright/internal/services"
	"deckwright/internal/targets"
)

// Schema is the manuscript shape shared by drafting and review rewrites.
func Schema() generation.Schema {
	section := generation.Object(map[string]any{
		"name":    generation.NonEmptyString(),
		"content": generation.String(),
	}, "name", "content")
	return generation.Object(map[string]any{
		"title":    generation.NonEmptyString(),
		"sections": generation.Array(section, 1, 0),
	}, "title", "sections")
}

// Stage drafts manuscripts.
type Stage struct {
	gen    generation.Generator
	model  string
	logger *slog.Logger
}

// New constructs a manuscript stage.
func New(gen generation.Generator, model string, logger *slog.Logger) *Stage {
	return &Stage{gen: gen, model: model, logger: logging.NewComponentLogger(logger, "manuscript")}
}

// Draft writes the manuscript for outline. Failures propagate; there is no retry.
func (s *Stage) Draft(ctx context.Context, outline deck.Outline, in deck.UserInput, t targets.Targets) (deck.Manuscript, error) {
	var m deck.Manuscript
	err := s.gen.Generate(ctx, generation.Request{
		System: systemPrompt,
		Prompt: userPrompt(outline, in, t),
		Model:  s.model,
		Schema: Schema(),
	}, &m)
	if err != nil {
		return deck.Manuscript{}, services.Wrap(services.ErrExternalTool, "manuscript", "draft", "manuscript generation failed", err)
	}

	words := m.WordCount()
	logger := logging.WithContext(ctx, s.logger)
	if targets.LengthAcceptable(m, t.TargetWordCount) {
		logger.Info("manuscript drafted",
			logging.Int("words", words),
			logging.Int("target_words", t.TargetWordCount),
			logging.Int("sections", len(m.Sections)),
		)
	} else {
		logging.WarnWithContext(logger, "manuscript length outside tolerance", "manuscript_length",
			logging.Int("words", words),
			logging.Int("target_words", t.TargetWordCount),
			logging.String(logging.FieldErrorHint, "length is guidance only; the review gate checks duration fit"),
			logging.String(logging.FieldImpact, "spoken duration may differ from the request"),
		)
	}
	return m, nil
}
