package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"deckwright/internal/layout"
)

const (
	// TitleMaxRunes bounds slide titles.
	TitleMaxRunes = 120
	// CaptionTitleMaxRunes bounds the title part of an image caption.
	CaptionTitleMaxRunes = 80
	// CaptionBulletMaxRunes bounds the bullet part of an image caption.
	CaptionBulletMaxRunes = 60

	// ReduceBodyAtBullets is the bullet count from which body text shrinks.
	ReduceBodyAtBullets = 4
	// BodyMinFontSize is the floor for reduced body text, in points.
	BodyMinFontSize = 10

	LineSpacing       = 1.4
	SpaceAfter        = 12
	ReducedSpaceAfter = 4

	bulletPrefix = "•  "
	ellipsis     = "…"
)

// PrepareTitle trims title and truncates it to maxRunes, replacing the tail
// with an ellipsis.
func PrepareTitle(title string, maxRunes int) string {
	title = strings.TrimSpace(title)
	if maxRunes <= 0 || utf8.RuneCountInString(title) <= maxRunes {
		return title
	}
	runes := []rune(title)
	return strings.TrimRightFunc(string(runes[:maxRunes-1]), unicode.IsSpace) + ellipsis
}

// Bullets is a capped bullet list plus the body size override, if any.
type Bullets struct {
	Points []string
	// Size is the reduced body size in points; zero keeps the theme size.
	Size int
}

// Reduced reports whether the body font was stepped down.
func (b Bullets) Reduced() bool {
	return b.Size > 0
}

// PrepareBullets caps points at layout.MaxBulletsDisplay and shrinks the body
// font by two points when the original list has ReduceBodyAtBullets or more.
func PrepareBullets(points []string, baseSize int) Bullets {
	if len(points) == 0 {
		return Bullets{}
	}
	out := Bullets{Points: points[:min(len(points), layout.MaxBulletsDisplay)]}
	if len(points) >= ReduceBodyAtBullets {
		out.Size = max(BodyMinFontSize, baseSize-2)
	}
	return out
}

// BulletText renders one point with its bullet glyph.
func BulletText(point string) string {
	return bulletPrefix + point
}

// Caption is the IMAGE_FOCUS caption: the title plus the first bullet.
func Caption(title string, bullets []string) string {
	caption := PrepareTitle(title, CaptionTitleMaxRunes)
	if len(bullets) == 0 {
		return caption
	}
	first := bullets[0]
	if runes := []rune(first); len(runes) > CaptionBulletMaxRunes {
		first = string(runes[:CaptionBulletMaxRunes]) + ellipsis
	}
	return caption + " — " + first
}
