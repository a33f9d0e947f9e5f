package review

import (
	"fmt"
	"strings"

	"deckwright/internal/deck"
)

const evaluateSystemPrompt = "You are an expert presentation reviewer. " +
	"Evaluate the text as a SPOKEN MANUSCRIPT that will be read aloud. Reply with valid JSON only."

const rewriteSystemPrompt = "You are an expert presentation writer. " +
	"Improve the SPOKEN MANUSCRIPT using the feedback. Keep continuous prose with no bullet points. " +
	"Reply with valid JSON only."

func manuscriptBody(m deck.Manuscript) string {
	parts := make([]string, 0, len(m.Sections))
	for _, section := range m.Sections {
		parts = append(parts, section.Name+":\n"+section.Content)
	}
	return strings.Join(parts, "\n\n---\n\n")
}

func runContext(in deck.UserInput) string {
	return fmt.Sprintf("Topic: %s\nAudience: %s\nDuration: %d minutes\nLanguage: %s",
		in.Topic, in.Audience, in.DurationMinutes, in.Language)
}

func evaluatePrompt(m deck.Manuscript, in deck.UserInput) string {
	var b strings.Builder
	b.WriteString("Evaluate this presentation manuscript.\n\n")
	b.WriteString(runContext(in))
	fmt.Fprintf(&b, "\n\nTitle: %s\n\nManuscript content:\n%s\n\n", m.Title, manuscriptBody(m))
	b.WriteString("Criteria: structure and flow, clarity when spoken, audience fit, depth, engagement, ")
	b.WriteString("fit to the duration, natural transitions, absence of outline-like phrasing.\n\n")
	b.WriteString("Reply with {\"score\": integer 0-10, \"strengths\": [string], \"weaknesses\": [string], ")
	b.WriteString("\"missing_topics\": [string], \"improvement_suggestions\": [string]}.")
	return b.String()
}

func rewritePrompt(m deck.Manuscript, eval Evaluation, in deck.UserInput) string {
	var b strings.Builder
	b.WriteString("Improve this presentation manuscript based on the evaluation feedback.\n\n")
	fmt.Fprintf(&b, "Title: %s\n\nManuscript:\n%s\n\n", m.Title, manuscriptBody(m))
	fmt.Fprintf(&b, "Weaknesses: %s\n", strings.Join(eval.Weaknesses, ", "))
	fmt.Fprintf(&b, "Missing topics: %s\n", strings.Join(eval.MissingTopics, ", "))
	fmt.Fprintf(&b, "Suggestions: %s\n\n", strings.Join(eval.ImprovementSuggestions, ", "))
	b.WriteString(runContext(in))
	b.WriteString("\n\nFix the weaknesses, add missing content where relevant, keep the topic, duration, language ")
	b.WriteString("and section structure. Write full prose in every section.\n\n")
	b.WriteString("Reply with {\"title\": string, \"sections\": [{\"name\": string, \"content\": string}]}.")
	return b.String()
}
