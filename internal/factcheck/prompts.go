package factcheck

import (
	"fmt"
	"strings"

	"deckwright/internal/deck"
)

const systemPrompt = "You are a careful fact-checker for presentation scripts. " +
	"Analyse the manuscript sentence by sentence and report ONLY statements that are incorrect, " +
	"misleading, outdated, or unverifiable claims presented as fact. " +
	"original_text MUST be an exact verbatim copy of the problematic phrase so it can be replaced. " +
	"corrected_text is a minimal replacement that keeps tone, style and length. " +
	"Prefer widely accepted knowledge; when unsure, rephrase cautiously instead of inventing statistics. " +
	"Reply with valid JSON only."

func userPrompt(m deck.Manuscript, in deck.UserInput) string {
	sections := make([]string, 0, len(m.Sections))
	for _, section := range m.Sections {
		sections = append(sections, "## "+section.Name+"\n"+section.Content)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\nAudience: %s\n\nManuscript to analyse:\n\n%s\n\n", in.Topic, in.Audience, strings.Join(sections, "\n\n"))
	b.WriteString("For each factual issue give original_text (verbatim quote), issue_type ")
	b.WriteString("(incorrect|misleading|outdated|unverifiable), explanation, corrected_text.\n")
	b.WriteString("If nothing needs correcting reply with {\"issues\": []}.")
	return b.String()
}
