// Package layout maps slide content shape to one of a fixed set of layouts
// and exposes each layout's geometry template.
//
// Selection is a pure, ordered rule table over three inputs: the slide's
// position in the deck, whether it has an image, and its bullet count.
package layout

import "deckwright/internal/deck"

// Name identifies a layout.
type Name string

// Layout names.
const (
	TitleSlide         Name = "TITLE_SLIDE"
	BoldSectionDivider Name = "BOLD_SECTION_DIVIDER"
	TitleAndBullets    Name = "TITLE_AND_BULLETS"
	AccentLeftLayout   Name = "ACCENT_LEFT_LAYOUT"
	CardLayout         Name = "CARD_LAYOUT"
	HeroRight          Name = "HERO_RIGHT"
	HeroBackground     Name = "HERO_BACKGROUND"
	ImageFocus         Name = "IMAGE_FOCUS"
	TwoColumn          Name = "TWO_COLUMN"
	MinimalText        Name = "MINIMAL_TEXT"
	Conclusion         Name = "CONCLUSION"
)

// All lists every layout in declaration order.
var All = []Name{
	TitleSlide, BoldSectionDivider, TitleAndBullets, AccentLeftLayout, CardLayout,
	HeroRight, HeroBackground, ImageFocus, TwoColumn, MinimalText, Conclusion,
}

// Input is the content shape the rules look at.
type Input struct {
	Index       int
	Total       int
	HasImage    bool
	BulletCount int
}

// InputFor derives the rule inputs for a slide at index of total.
func InputFor(slide deck.SlideWithImage, index, total int) Input {
	return Input{Index: index, Total: total, HasImage: slide.HasImage(), BulletCount: len(slide.Bullets)}
}

// Select picks the layout for a content slide. The first matching rule wins.
// A panic while evaluating yields TITLE_AND_BULLETS.
func Select(in Input) (name Name) {
	defer func() {
		if recover() != nil {
			name = TitleAndBullets
		}
	}()
	return selectLayout(in)
}

// SelectSlide is Select over a concrete slide.
func SelectSlide(slide deck.SlideWithImage, index, total int) Name {
	return Select(InputFor(slide, index, total))
}

func selectLayout(in Input) Name {
	switch {
	case in.Index == 0 && in.HasImage:
		return HeroBackground
	case in.Index == 0:
		return BoldSectionDivider
	case in.Index == in.Total-1:
		return Conclusion
	case in.HasImage && in.BulletCount <= 2:
		return HeroRight
	// Shadowed by the rule above; kept so the table stays complete.
	case in.HasImage && in.BulletCount <= 1:
		return ImageFocus
	case in.HasImage:
		return TwoColumn
	case in.BulletCount >= 4:
		return CardLayout
	case in.BulletCount <= 2:
		return MinimalText
	default:
		return AccentLeftLayout
	}
}
