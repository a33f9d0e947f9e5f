package images

import (
	"fmt"
	"strings"
)

const visionSystemPrompt = `You review stock photos for professional presentation slides.
Judge the attached image only. Reply with a single JSON object.`

func visionPrompt(topic, context string) string {
	var b strings.Builder
	b.WriteString("Evaluate this image for use in a professional presentation slide.\n\n")
	fmt.Fprintf(&b, "Slide topic: %s\n", topic)
	fmt.Fprintf(&b, "Context: %s\n\n", context)
	b.WriteString(`Assess:
- Relevance to the topic (does it match the subject?)
- Clarity of subject (is the main subject clear?)
- Visual quality (sharpness, composition)
- Presentation suitability (professional, not distracting)
- Background usability (could work as slide background?)
- Absence of distracting elements (text, logos, clutter)

Output JSON with:
- "score": int 0-10 (10 = perfect for presentation)
- "reason": string (brief explanation)
- "suitable_as_background": bool (true if image could work as full-slide background)
`)
	return b.String()
}
