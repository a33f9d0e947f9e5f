// Package theme defines the five visual themes applied uniformly across a
// deck: palette, optional background gradient, and typography tokens.
package theme

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RGB is an opaque 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Hex renders the colour as RRGGBB, the form OOXML expects.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Theme is a named palette plus typography tokens.
type Theme struct {
	ID          string
	Background  RGB
	Primary     RGB
	Secondary   RGB
	Accent      RGB
	CardBG      RGB
	OverlayDark RGB
	SectionBG   RGB
	SectionText RGB

	UseGradient   bool
	GradientStart RGB
	GradientEnd   RGB

	FontFamily  string
	TitleSize   int
	BodySize    int
	CaptionSize int
}

// Theme identifiers.
const (
	LightProfessional = "LIGHT_PROFESSIONAL"
	DarkTech          = "DARK_TECH"
	CorporateBlue     = "CORPORATE_BLUE"
	MinimalClean      = "MINIMAL_CLEAN"
	BoldGradient      = "BOLD_GRADIENT"
)

// Default is the theme used for blank or unknown names.
const Default = LightProfessional

const (
	defaultFont        = "Calibri"
	defaultTitleSize   = 48
	defaultBodySize    = 22
	defaultCaptionSize = 18
)

var (
	white = RGB{255, 255, 255}
	slate = RGB{15, 23, 42}
)

var themes = map[string]Theme{
	LightProfessional: withTypography(Theme{
		ID:          LightProfessional,
		Background:  RGB{247, 249, 252},
		Primary:     slate,
		Secondary:   RGB{100, 116, 139},
		Accent:      RGB{37, 99, 235},
		CardBG:      white,
		OverlayDark: slate,
		SectionBG:   RGB{37, 99, 235},
		SectionText: white,
	}),
	DarkTech: withTypography(Theme{
		ID:          DarkTech,
		Background:  slate,
		Primary:     RGB{248, 250, 252},
		Secondary:   RGB{148, 163, 184},
		Accent:      RGB{56, 189, 248},
		CardBG:      RGB{30, 41, 59},
		OverlayDark: slate,
		SectionBG:   RGB{56, 189, 248},
		SectionText: slate,
	}),
	CorporateBlue: withTypography(Theme{
		ID:          CorporateBlue,
		Background:  white,
		Primary:     RGB{1, 47, 105},
		Secondary:   RGB{70, 98, 132},
		Accent:      RGB{0, 84, 159},
		CardBG:      RGB{245, 248, 252},
		OverlayDark: RGB{1, 47, 105},
		SectionBG:   RGB{0, 84, 159},
		SectionText: white,
	}),
	MinimalClean: withTypography(Theme{
		ID:          MinimalClean,
		Background:  white,
		Primary:     RGB{23, 23, 23},
		Secondary:   RGB{115, 115, 115},
		Accent:      RGB{163, 163, 163},
		CardBG:      RGB{250, 250, 250},
		OverlayDark: RGB{23, 23, 23},
		SectionBG:   RGB{245, 245, 245},
		SectionText: RGB{23, 23, 23},
	}),
	BoldGradient: withTypography(Theme{
		ID:            BoldGradient,
		Background:    RGB{250, 250, 255},
		Primary:       slate,
		Secondary:     RGB{71, 85, 105},
		Accent:        RGB{99, 102, 241},
		CardBG:        white,
		OverlayDark:   RGB{30, 27, 75},
		SectionBG:     RGB{99, 102, 241},
		SectionText:   white,
		UseGradient:   true,
		GradientStart: RGB{99, 102, 241},
		GradientEnd:   RGB{168, 85, 247},
	}),
}

func withTypography(t Theme) Theme {
	t.FontFamily = defaultFont
	t.TitleSize = defaultTitleSize
	t.BodySize = defaultBodySize
	t.CaptionSize = defaultCaptionSize
	return t
}

// Lookup returns the named theme. Names are matched after trimming and
// upper-casing; unknown or blank names yield the default theme.
func Lookup(name string) Theme {
	if t, ok := themes[normalize(name)]; ok {
		return t
	}
	return themes[Default]
}

// Known reports whether name identifies a theme.
func Known(name string) bool {
	_, ok := themes[normalize(name)]
	return ok
}

// IDs lists the theme identifiers in a stable order.
func IDs() []string {
	ids := make([]string, 0, len(themes))
	for id := range themes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DisplayName renders an identifier for humans, e.g. "Light Professional".
func (t Theme) DisplayName() string {
	words := strings.ReplaceAll(strings.ToLower(t.ID), "_", " ")
	return cases.Title(language.English).String(words)
}

func normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
