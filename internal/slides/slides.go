// Package slides derives audience-facing slide content from the manuscript.
//
// Slides carry a title, a few terse bullets and an optional image query.
// Speaker notes are always empty here; the notes stage fills them later.
// When the slide count falls outside the target range the stage retries once
// with a stricter instruction and accepts the second result as-is.
package slides

import (
	"context"
	"log/slog"
	"strings"

	"deckwright/internal/deck"
	"deckwright/internal/generation"
	"deckwright/internal/logging"
	"deckwright/internal/services"
	"deckwright/internal/targets"
)

// RetryLabel is the progress label reported before a slide-count retry.
const RetryLabel = "Adjusting slide count, retrying"

// Result is the extracted slide list plus how it was obtained.
type Result struct {
	Slides  []deck.Slide
	Retried bool
	// FirstCount is the slide count of the first attempt.
	FirstCount int
}

// Stage extracts slides.
type Stage struct {
	gen    generation.Generator
	model  string
	logger *slog.Logger
}

// New constructs a slide extraction stage.
func New(gen generation.Generator, model string, logger *slog.Logger) *Stage {
	return &Stage{gen: gen, model: model, logger: logging.NewComponentLogger(logger, "slides")}
}

// Schema is the slide list shape.
func Schema() generation.Schema {
	slide := generation.Object(map[string]any{
		"slide_number":  generation.Schema{"type": "integer"},
		"title":         generation.NonEmptyString(),
		"bullet_points": generation.Array(generation.String(), 0, 0),
		"speaker_notes": generation.String(),
		"image_query":   generation.NullableString(),
	}, "title", "bullet_points")
	return generation.Object(map[string]any{
		"slides": generation.Array(slide, 1, 0),
	}, "slides")
}

// Normalize accepts a bare slide array in place of {"slides": [...]}.
func Normalize(doc any) any {
	if list, ok := doc.([]any); ok {
		return map[string]any{"slides": list}
	}
	return doc
}

// Extract produces slides for m. onRetry, when non-nil, is called with the
// first attempt's count just before the strict retry.
func (s *Stage) Extract(ctx context.Context, m deck.Manuscript, t targets.Targets, onRetry func(got int)) (Result, error) {
	logger := logging.WithContext(ctx, s.logger)

	first, err := s.attempt(ctx, m, t, false)
	if err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "slides", "extract", "slide generation failed", err)
	}
	if targets.SlideCountAcceptable(len(first), t) {
		logger.Info("slides extracted", logging.Int("slides", len(first)))
		return Result{Slides: first, FirstCount: len(first)}, nil
	}

	logger.Info("slide count outside target range; retrying",
		logging.Args(append(logging.DecisionAttrs("slide_count", "retry", "count outside range"),
			logging.Int("slides", len(first)),
			logging.Int("min_slides", t.MinSlides),
			logging.Int("max_slides", t.MaxSlides),
		)...)...,
	)
	if onRetry != nil {
		onRetry(len(first))
	}
	second, err := s.attempt(ctx, m, t, true)
	if err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "slides", "extract", "strict slide generation failed", err)
	}
	if !targets.SlideCountAcceptable(len(second), t) {
		logging.WarnWithContext(logger, "slide count still outside target range", "slide_count_accepted",
			logging.Int("slides", len(second)),
			logging.Alert("slide_count_mismatch"),
			logging.String(logging.FieldErrorHint, "the second attempt is accepted as-is"),
			logging.String(logging.FieldImpact, "deck length may not match the requested duration"),
		)
	}
	return Result{Slides: second, Retried: true, FirstCount: len(first)}, nil
}

func (s *Stage) attempt(ctx context.Context, m deck.Manuscript, t targets.Targets, strict bool) ([]deck.Slide, error) {
	var out struct {
		Slides []deck.Slide `json:"slides"`
	}
	err := s.gen.Generate(ctx, generation.Request{
		System:    systemPrompt,
		Prompt:    userPrompt(m, t, strict),
		Model:     s.model,
		Schema:    Schema(),
		Normalize: Normalize,
	}, &out)
	if err != nil {
		return nil, err
	}
	return Finalize(out.Slides), nil
}

// Finalize renumbers slides 1..n in emission order, clears speaker notes and
// drops blank image queries. The input is not modified.
func Finalize(in []deck.Slide) []deck.Slide {
	out := deck.CloneSlides(in)
	for i := range out {
		out[i].Number = i + 1
		out[i].SpeakerNotes = ""
		if out[i].ImageQuery != nil && strings.TrimSpace(*out[i].ImageQuery) == "" {
			out[i].ImageQuery = nil
		}
	}
	return out
}
