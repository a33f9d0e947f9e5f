// Package notes derives presenter notes for each slide from the manuscript.
package notes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"deckwright/internal/deck"
	"deckwright/internal/generation"
	"deckwright/internal/logging"
	"deckwright/internal/textutil"
)

// RestatementThreshold is the cosine similarity at which a note counts as a
// restatement of the slide's bullets and is dropped.
const RestatementThreshold = 0.85

// Result is the explicit outcome of Enrich.
type Result struct {
	Slides []deck.Slide
	// Filtered counts notes dropped for restating their bullets.
	Filtered int
	Degraded bool
	Err      error
}

// Entry is one slide's notes as returned by the generator.
type Entry struct {
	SlideNumber  int    `json:"slide_number"`
	SpeakerNotes string `json:"speaker_notes"`
}

// Stage derives notes.
type Stage struct {
	gen    generation.Generator
	model  string
	logger *slog.Logger
}

// New constructs a notes stage.
func New(gen generation.Generator, model string, logger *slog.Logger) *Stage {
	return &Stage{gen: gen, model: model, logger: logging.NewComponentLogger(logger, "notes")}
}

// Schema is the notes list shape.
func Schema() generation.Schema {
	entry := generation.Object(map[string]any{
		"slide_number":  generation.Schema{"type": "integer", "minimum": 1},
		"speaker_notes": generation.String(),
	}, "slide_number", "speaker_notes")
	return generation.Object(map[string]any{
		"notes": generation.Array(entry, 0, 0),
	}, "notes")
}

// Normalize accepts a bare array of entries and notes given as a list of
// strings, which are joined with newlines.
func Normalize(doc any) any {
	if list, ok := doc.([]any); ok {
		doc = map[string]any{"notes": list}
	}
	root, ok := doc.(map[string]any)
	if !ok {
		return doc
	}
	entries, ok := root["notes"].([]any)
	if !ok {
		return root
	}
	for _, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		items, ok := entry["speaker_notes"].([]any)
		if !ok {
			continue
		}
		lines := make([]string, 0, len(items))
		for _, item := range items {
			if text, ok := item.(string); ok && strings.TrimSpace(text) != "" {
				lines = append(lines, strings.TrimSpace(text))
			}
		}
		entry["speaker_notes"] = strings.Join(lines, "\n")
	}
	return root
}

// Enrich fills speaker notes for slides. A generation failure leaves every
// slide's notes empty and marks the result degraded; it never fails the run.
func (s *Stage) Enrich(ctx context.Context, m deck.Manuscript, slides []deck.Slide) Result {
	logger := logging.WithContext(ctx, s.logger)

	var out struct {
		Notes []Entry `json:"notes"`
	}
	err := s.gen.Generate(ctx, generation.Request{
		System:    systemPrompt,
		Prompt:    userPrompt(m, slides),
		Model:     s.model,
		Schema:    Schema(),
		Normalize: Normalize,
	}, &out)
	if err != nil {
		logging.WarnWithContext(logger, "speaker notes unavailable", "notes_degraded",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check generation backend availability"),
			logging.String(logging.FieldImpact, "slides exported without speaker notes"),
		)
		return Result{Slides: Merge(slides, nil), Degraded: true, Err: fmt.Errorf("speaker notes: %w", err)}
	}

	kept, filtered := FilterRestatements(slides, out.Notes)
	for _, number := range filtered {
		logger.Info("speaker note dropped",
			logging.Args(append(logging.DecisionAttrs("notes_filter", "dropped", "note restates slide bullets"),
				logging.Int(logging.FieldSlideNumber, number),
			)...)...,
		)
	}
	merged := Merge(slides, kept)
	logger.Info("speaker notes added",
		logging.Int("entries", len(out.Notes)),
		logging.Int("filtered", len(filtered)),
	)
	return Result{Slides: merged, Filtered: len(filtered)}
}

// Merge returns copies of slides with notes keyed by slide number. Slides
// without an entry get empty notes. Later entries for the same number win.
func Merge(slides []deck.Slide, entries []Entry) []deck.Slide {
	byNumber := make(map[int]string, len(entries))
	for _, entry := range entries {
		byNumber[entry.SlideNumber] = strings.TrimSpace(entry.SpeakerNotes)
	}
	out := deck.CloneSlides(slides)
	for i := range out {
		out[i].SpeakerNotes = byNumber[out[i].Number]
	}
	return out
}

// FilterRestatements drops entries whose text is a near copy of their
// slide's bullets and returns the kept entries plus the dropped slide numbers.
func FilterRestatements(slides []deck.Slide, entries []Entry) ([]Entry, []int) {
	bullets := make(map[int]*textutil.Fingerprint, len(slides))
	for _, slide := range slides {
		bullets[slide.Number] = textutil.NewFingerprint(strings.Join(slide.Bullets, " "))
	}
	kept := make([]Entry, 0, len(entries))
	var dropped []int
	for _, entry := range entries {
		fp := textutil.NewFingerprint(entry.SpeakerNotes)
		if textutil.CosineSimilarity(fp, bullets[entry.SlideNumber]) >= RestatementThreshold {
			dropped = append(dropped, entry.SlideNumber)
			continue
		}
		kept = append(kept, entry)
	}
	return kept, dropped
}
