package notes

import (
	"fmt"
	"strings"

	"deckwright/internal/deck"
)

const systemPrompt = "You are an expert at creating presenter support material. " +
	"SPEAKER NOTES ARE FOR THE PRESENTER; slides are for the audience. " +
	"Write 2-5 concise reminders per slide: key arguments and cues, short sentences or phrases, " +
	"never full paragraphs and never a copy of the slide bullets. Reply with valid JSON only."

func userPrompt(m deck.Manuscript, slides []deck.Slide) string {
	sections := make([]string, 0, len(m.Sections))
	for _, section := range m.Sections {
		sections = append(sections, section.Name+":\n"+section.Content)
	}
	var b strings.Builder
	b.WriteString("Write speaker notes for each slide, drawn from the manuscript.\n\n")
	fmt.Fprintf(&b, "Manuscript:\n%s\n\n", strings.Join(sections, "\n\n---\n\n"))
	b.WriteString("Slides (bullets are already fixed for the audience):\n")
	for _, slide := range slides {
		fmt.Fprintf(&b, "- Slide %d: %s | bullets: %s\n", slide.Number, slide.Title, strings.Join(slide.Bullets, "; "))
	}
	b.WriteString("\nFor each slide output slide_number and speaker_notes (2-5 notes, newline separated).\n")
	b.WriteString("Reply with {\"notes\": [{\"slide_number\": int, \"speaker_notes\": string}]}.")
	return b.String()
}
