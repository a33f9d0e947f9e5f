package slides

import (
	"fmt"
	"strings"

	"deckwright/internal/deck"
	"deckwright/internal/targets"
)

const systemPrompt = "You are an expert at building visual presentations. " +
	"SLIDES ARE FOR THE AUDIENCE: minimal, impactful content with one core message per slide and no full sentences. " +
	"Do NOT write speaker notes; they are produced separately. Reply with valid JSON only."

func userPrompt(m deck.Manuscript, t targets.Targets, strict bool) string {
	sections := make([]string, 0, len(m.Sections))
	for _, section := range m.Sections {
		sections = append(sections, section.Name+":\n"+section.Content)
	}

	var b strings.Builder
	b.WriteString("Convert this speech manuscript into ultra-concise slide content.\n\n")
	fmt.Fprintf(&b, "SLIDE COUNT (required): between %d and %d slides in total.", t.MinSlides, t.MaxSlides)
	if strict {
		fmt.Fprintf(&b, " STRICT: you MUST produce between %d and %d slides; split or merge content to comply.", t.MinSlides, t.MaxSlides)
	}
	b.WriteString("\nIntroduction about 10-15% of slides, main content 70-80%, conclusion 10-15%.\n\n")
	fmt.Fprintf(&b, "Title: %s\n\nManuscript:\n%s\n\n", m.Title, strings.Join(sections, "\n\n---\n\n"))
	b.WriteString("For each slide output slide_number (1-based), title (concise), bullet_points (2-4 short phrases), ")
	b.WriteString("speaker_notes (always \"\") and image_query (string or null).\n\n")
	b.WriteString("Image query rules: null for the first slide, the last slide, agenda slides and text-heavy analytical slides. ")
	b.WriteString("Otherwise 2-4 words naming something that can be photographed, e.g. \"robot surgery operating room\" ")
	b.WriteString("rather than \"artificial intelligence\".\n\n")
	b.WriteString("Reply with {\"slides\": [...]}.")
	return b.String()
}
