package pptx

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// EMU is an English Metric Unit, the OOXML length unit.
type EMU int64

// EMUPerInch is the number of EMU in one inch.
const EMUPerInch = 914400

// Inches converts a length in inches to EMU.
func Inches(v float64) EMU {
	return EMU(math.Round(v * EMUPerInch))
}

// Rect is a shape frame in EMU from the slide's top-left corner.
type Rect struct {
	X, Y, W, H EMU
}

// RectInches builds a frame from inch measurements.
func RectInches(left, top, width, height float64) Rect {
	return Rect{X: Inches(left), Y: Inches(top), W: Inches(width), H: Inches(height)}
}

// Color is an sRGB colour written as RRGGBB.
type Color string

// Fill describes a shape or background fill. The zero value draws nothing.
type Fill struct {
	Color Color
	// Transparency ranges from 0 (opaque) to 1 (invisible).
	Transparency float64
	// GradientTo turns the fill into a linear gradient from Color.
	GradientTo Color
	// GradientAngle is measured clockwise in degrees.
	GradientAngle float64
}

// Solid returns an opaque fill.
func Solid(c Color) Fill { return Fill{Color: c} }

// Align is a paragraph alignment.
type Align string

const (
	AlignLeft   Align = "l"
	AlignCenter Align = "ctr"
)

// Paragraph is one run of uniformly styled text.
type Paragraph struct {
	Text  string
	Font  string
	Size  float64 // points
	Bold  bool
	Color Color
	Align Align
	// LineSpacing is a multiple of single spacing; zero inherits.
	LineSpacing float64
	// SpaceAfter is in points; zero inherits.
	SpaceAfter float64
}

// Palette seeds the package theme part.
type Palette struct {
	Dark   Color
	Light  Color
	Accent Color
	Font   string
}

// Presentation is an in-memory deck. Language is the BCP 47 proofing
// language written on every text run; blank means en-US.
type Presentation struct {
	Title    string
	Creator  string
	Created  time.Time
	Palette  Palette
	Language string

	width  EMU
	height EMU
	slides []*Slide
}

// New returns an empty presentation with the given slide size in inches.
func New(widthIn, heightIn float64) *Presentation {
	return &Presentation{
		width:  Inches(widthIn),
		height: Inches(heightIn),
		Palette: Palette{
			Dark:   "000000",
			Light:  "FFFFFF",
			Accent: "4472C4",
			Font:   "Calibri",
		},
	}
}

const defaultLanguage = "en-US"

func (p *Presentation) language() string {
	if lang := strings.TrimSpace(p.Language); lang != "" {
		return escapeText(lang)
	}
	return defaultLanguage
}

// Size returns the slide size.
func (p *Presentation) Size() (EMU, EMU) {
	return p.width, p.height
}

// AddSlide appends a blank slide.
func (p *Presentation) AddSlide() *Slide {
	s := &Slide{}
	p.slides = append(p.slides, s)
	return s
}

// Slides returns the slides in order.
func (p *Presentation) Slides() []*Slide {
	return p.slides
}

// Slide is one slide under construction. Shapes are drawn in insertion order.
type Slide struct {
	background Fill
	shapes     []shape
	notes      string
}

// SetBackground sets the slide background fill.
func (s *Slide) SetBackground(f Fill) {
	s.background = f
}

// Background returns the current background fill.
func (s *Slide) Background() Fill {
	return s.background
}

// AddRect draws an unoutlined rectangle.
func (s *Slide) AddRect(r Rect, f Fill) {
	s.shapes = append(s.shapes, &rectShape{frame: r, fill: f, geom: "rect"})
}

// AddRoundRect draws an unoutlined rounded rectangle. adjust is the corner
// radius as a fraction of the shorter side.
func (s *Slide) AddRoundRect(r Rect, f Fill, adjust float64) {
	s.shapes = append(s.shapes, &rectShape{frame: r, fill: f, geom: "roundRect", adjust: adjust, hasAdjust: true})
}

// AddTextBox draws a word-wrapping text box with one or more paragraphs.
func (s *Slide) AddTextBox(r Rect, paragraphs ...Paragraph) {
	if len(paragraphs) == 0 {
		return
	}
	s.shapes = append(s.shapes, &textShape{frame: r, paragraphs: append([]Paragraph(nil), paragraphs...)})
}

// ErrUnsupportedImage is returned for picture formats the package cannot embed.
var ErrUnsupportedImage = errors.New("unsupported image format")

// AddPicture embeds image bytes stretched to r. Callers are expected to pass
// a frame that already preserves the image's aspect ratio. format is the
// name reported by image.DecodeConfig.
func (s *Slide) AddPicture(r Rect, data []byte, format string) error {
	ext, ok := mediaExtension(format)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedImage, format)
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: empty image", ErrUnsupportedImage)
	}
	s.shapes = append(s.shapes, &pictureShape{frame: r, data: data, ext: ext})
	return nil
}

// SetNotes sets the presenter notes. Lines become separate paragraphs.
func (s *Slide) SetNotes(text string) {
	s.notes = strings.TrimSpace(text)
}

// Notes returns the presenter notes.
func (s *Slide) Notes() string {
	return s.notes
}

// ShapeCount returns how many shapes have been drawn.
func (s *Slide) ShapeCount() int {
	return len(s.shapes)
}

// PictureCount returns how many pictures have been embedded.
func (s *Slide) PictureCount() int {
	n := 0
	for _, sh := range s.shapes {
		if _, ok := sh.(*pictureShape); ok {
			n++
		}
	}
	return n
}

func mediaExtension(format string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "png":
		return "png", true
	case "jpeg", "jpg":
		return "jpeg", true
	case "gif":
		return "gif", true
	default:
		return "", false
	}
}
