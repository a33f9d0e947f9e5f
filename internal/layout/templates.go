package layout

// Slide canvas in inches (16:9).
const (
	SlideWidth  = 13.333
	SlideHeight = 7.5
)

// Grid and decoration measurements in inches.
const (
	MarginLeft        = 0.59
	MarginTop         = 0.47
	AccentBarWidth    = 0.08
	AccentLineHeight  = 0.04
	CardPadding       = 0.2
	CardCornerAdjust  = 0.05
	TitleMaxHeight    = 1.2
	MaxBulletsDisplay = 6
)

// Box is a rectangle in inches measured from the top-left of the slide.
type Box struct {
	Left   float64 `json:"left" yaml:"left"`
	Top    float64 `json:"top" yaml:"top"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 { return b.Left + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Top + b.Height }

// Expand grows the box by pad on every side.
func (b Box) Expand(pad float64) Box {
	return Box{Left: b.Left - pad, Top: b.Top - pad, Width: b.Width + 2*pad, Height: b.Height + 2*pad}
}

// Template is the fixed geometry for a layout. Nil boxes are absent areas.
type Template struct {
	Name          Name
	Title         *Box
	Body          *Box
	Image         *Box
	Subtitle      *Box
	Caption       *Box
	AccentLeft    bool
	AccentTop     bool
	CardStyle     bool
	HeroFullImage bool
}

func box(left, top, width, height float64) *Box {
	return &Box{Left: left, Top: top, Width: width, Height: height}
}

var templates = map[Name]Template{
	TitleSlide: {
		Name:      TitleSlide,
		Title:     box(0.59, 2.6, 12.15, 1.6),
		Subtitle:  box(0.59, 4.4, 12.15, 1.0),
		AccentTop: true,
	},
	BoldSectionDivider: {
		Name:  BoldSectionDivider,
		Title: box(0.59, 2.4, 12.15, 2.0),
		Body:  box(0.59, 4.6, 12.15, 1.2),
	},
	TitleAndBullets: {
		Name:  TitleAndBullets,
		Title: box(0.59, 0.47, 12.15, 0.95),
		Body:  box(0.59, 1.6, 12.15, 5.2),
	},
	AccentLeftLayout: {
		Name:       AccentLeftLayout,
		Title:      box(0.85, 0.47, 11.4, 0.95),
		Body:       box(0.85, 1.6, 11.4, 5.2),
		AccentLeft: true,
	},
	CardLayout: {
		Name:      CardLayout,
		Title:     box(0.59, 0.47, 12.15, 0.95),
		Body:      box(0.79, 1.7, 11.75, 4.9),
		CardStyle: true,
	},
	HeroRight: {
		Name:  HeroRight,
		Title: box(0.59, 0.47, 5.5, 0.95),
		Body:  box(0.59, 1.6, 5.5, 5.0),
		Image: box(6.3, 0, 7.0, 7.5),
	},
	HeroBackground: {
		Name:          HeroBackground,
		Title:         box(0.59, 2.2, 12.15, 1.4),
		Body:          box(0.59, 3.8, 12.15, 2.5),
		HeroFullImage: true,
	},
	ImageFocus: {
		Name:    ImageFocus,
		Image:   box(0.59, 0.47, 12.15, 5.2),
		Caption: box(0.59, 5.9, 12.15, 0.9),
	},
	TwoColumn: {
		Name:  TwoColumn,
		Title: box(0.59, 0.47, 12.15, 0.95),
		Body:  box(0.59, 1.6, 5.8, 5.0),
		Image: box(6.6, 1.6, 5.9, 4.0),
	},
	MinimalText: {
		Name:  MinimalText,
		Title: box(0.59, 2.8, 12.15, 1.2),
		Body:  box(0.59, 4.2, 12.15, 1.5),
	},
	Conclusion: {
		Name:       Conclusion,
		Title:      box(0.59, 0.47, 12.15, 0.95),
		Body:       box(0.59, 1.6, 12.15, 5.2),
		AccentLeft: true,
	},
}

// TemplateFor returns the template for a layout, or TITLE_AND_BULLETS for
// unknown names. The returned boxes are copies.
func TemplateFor(name Name) Template {
	tpl, ok := templates[name]
	if !ok {
		tpl = templates[TitleAndBullets]
	}
	return tpl.clone()
}

func (t Template) clone() Template {
	out := t
	out.Title = cloneBox(t.Title)
	out.Body = cloneBox(t.Body)
	out.Image = cloneBox(t.Image)
	out.Subtitle = cloneBox(t.Subtitle)
	out.Caption = cloneBox(t.Caption)
	return out
}

func cloneBox(b *Box) *Box {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}
