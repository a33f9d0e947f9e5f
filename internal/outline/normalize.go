package outline

import (
	"strings"

	"deckwright/internal/deck"
	"deckwright/internal/generation"
)

// Schema is the canonical outline shape.
func Schema() generation.Schema {
	section := generation.Object(map[string]any{
		"type":   generation.String(deck.SectionIntroduction, deck.SectionMain, deck.SectionConclusion),
		"title":  generation.NonEmptyString(),
		"points": generation.Array(generation.String(), 0, 0),
	}, "type", "title", "points")
	return generation.Object(map[string]any{
		"title":    generation.NonEmptyString(),
		"sections": generation.Array(section, 1, 0),
	}, "title", "sections")
}

// Normalize canonicalizes alternate outline shapes. It never fails; anything
// it cannot interpret is passed through for the schema to reject.
func Normalize(doc any) any {
	root, ok := doc.(map[string]any)
	if !ok {
		return doc
	}
	sections, ok := root["sections"].([]any)
	if !ok {
		return root
	}
	out := make([]any, len(sections))
	for i, raw := range sections {
		out[i] = normalizeSection(raw)
	}
	root["sections"] = out
	return root
}

func normalizeSection(raw any) any {
	section, ok := raw.(map[string]any)
	if !ok {
		return raw
	}
	if _, has := section["points"]; !has {
		if legacy, ok := section["key_points"]; ok {
			section["points"] = legacy
		}
	}
	delete(section, "key_points")
	if _, has := section["points"]; !has {
		section["points"] = []any{}
	}

	kind, _ := section["type"].(string)
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		kind = deck.SectionMain
	}
	section["type"] = kind
	return section
}
