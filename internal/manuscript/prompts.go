package manuscript

import (
	"fmt"
	"strings"

	"deckwright/internal/deck"
	"deckwright/internal/targets"
)

const systemPrompt = "You are an expert presentation writer specialising in spoken manuscripts. " +
	"The presenter will read this text aloud; slides and speaker notes are derived from it later. " +
	"Write full sentences, natural paragraphs and smooth transitions. No bullet-point style. " +
	"When adapting to a speaker profile change only language, tone and complexity, never the facts. " +
	"Reply with valid JSON only."

// SpeakerInstruction describes the delivery style for the speaker profile.
// Age bands: under 18, 18-29, 30-49, 50 and over.
func SpeakerInstruction(profile *deck.SpeakerProfile) string {
	if profile == nil {
		return "SPEAKER: no specific profile; use a neutral adult tone, clear and professional."
	}
	var style string
	switch {
	case profile.Age < 18:
		style = "Use simpler sentences and everyday vocabulary with an explanatory tone and little jargon, as a younger speaker would."
	case profile.Age < 30:
		style = "Use a natural, modern tone with moderate complexity, as a young adult would."
	case profile.Age < 50:
		style = "Use professional, clear language with moderate formality, as an adult professional would."
	default:
		style = "Use precise terminology and concise phrasing, as an experienced speaker would."
	}
	parts := []string{fmt.Sprintf("SPEAKER PROFILE: age %d.", profile.Age), style}
	if role := strings.TrimSpace(profile.Role); role != "" {
		parts = append(parts, fmt.Sprintf("Role/context: %s.", role))
	}
	if level := strings.TrimSpace(profile.ExperienceLevel); level != "" {
		parts = append(parts, fmt.Sprintf("Experience level: %s.", level))
	}
	parts = append(parts, "Adapt ONLY language, tone and complexity; do NOT change factual content.")
	return strings.Join(parts, " ")
}

func userPrompt(outline deck.Outline, in deck.UserInput, t targets.Targets) string {
	var b strings.Builder
	b.WriteString("Write a speech manuscript from this outline. The presenter will READ IT ALOUD.\n\n")
	fmt.Fprintf(&b, "Title: %s\nOutline sections:\n", outline.Title)
	for _, section := range outline.Sections {
		fmt.Fprintf(&b, "- %s: %s\n", section.Title, strings.Join(section.Points, ", "))
	}
	fmt.Fprintf(&b, "\nContext:\n- Topic: %s\n- Audience: %s\n- Duration: %d minutes\n- Language: %s\n\n",
		in.Topic, in.Audience, in.DurationMinutes, in.Language)
	b.WriteString(SpeakerInstruction(in.Speaker))
	fmt.Fprintf(&b, "\n\nLength: aim for roughly %d words (%d words per minute for this audience). ",
		t.TargetWordCount, t.WordsPerMinute)
	b.WriteString("Introduction about 10-15%, main body 70-80%, conclusion 10-15%. No padding and no abrupt cuts.\n\n")
	b.WriteString("Requirements: full sentences and paragraphs, natural when spoken, transitions between sections, ")
	b.WriteString("language and examples tailored to the audience, no bullet points.\n\n")
	b.WriteString("Reply with {\"title\": string, \"sections\": [{\"name\": string, \"content\": string}]}.")
	return b.String()
}
