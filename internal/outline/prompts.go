package outline

import (
	"fmt"
	"strings"

	"deckwright/internal/deck"
	"deckwright/internal/targets"
)

func systemPrompt(strict bool) string {
	var b strings.Builder
	b.WriteString("You are an expert presentation designer. ")
	b.WriteString("Produce a clear, professional outline with a logical narrative arc. ")
	b.WriteString("Reply with valid JSON only.")
	if strict {
		b.WriteString(" Every section MUST contain exactly \"type\", \"title\" and \"points\". ")
		b.WriteString("\"type\" must be one of introduction, main, conclusion.")
	}
	return b.String()
}

// mainSectionCount keeps enough main sections for the content to map onto
// the slide range: roughly three quarters of the midpoint, within [2, 8].
func mainSectionCount(t targets.Targets) int {
	return max(2, min(8, t.Midpoint()*3/4))
}

func userPrompt(in deck.UserInput, t targets.Targets, strict bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a presentation outline.\n\n")
	fmt.Fprintf(&b, "Structure:\n")
	fmt.Fprintf(&b, "1. One introduction section (type \"introduction\"): hook, context, purpose.\n")
	fmt.Fprintf(&b, "2. %d main sections (type \"main\"): one core idea each with 2-4 points, in logical order.\n", mainSectionCount(t))
	fmt.Fprintf(&b, "3. One conclusion section (type \"conclusion\"): summary and final takeaway.\n\n")
	fmt.Fprintf(&b, "Parameters:\n")
	fmt.Fprintf(&b, "- Topic: %s\n", in.Topic)
	fmt.Fprintf(&b, "- Duration: %d minutes\n", in.DurationMinutes)
	fmt.Fprintf(&b, "- Target slide count: %d-%d slides\n", t.MinSlides, t.MaxSlides)
	fmt.Fprintf(&b, "- Audience: %s\n", in.Audience)
	fmt.Fprintf(&b, "- Language: %s\n\n", in.Language)
	fmt.Fprintf(&b, "Adapt terminology and depth to the audience %q. ", in.Audience)
	fmt.Fprintf(&b, "Give the main sections enough substance for %d-%d slides.\n", t.MinSlides, t.MaxSlides)
	if strict {
		b.WriteString("\nSTRICT SCHEMA: each section object has \"type\" (introduction|main|conclusion), ")
		b.WriteString("\"title\" (string) and \"points\" (array of 2-4 strings).\n")
	}
	b.WriteString("\nReply with {\"title\": string, \"sections\": [{\"type\", \"title\", \"points\"}]}.")
	return b.String()
}
