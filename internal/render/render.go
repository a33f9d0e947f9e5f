package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"deckwright/internal/deck"
	"deckwright/internal/fileutil"
	"deckwright/internal/language"
	"deckwright/internal/layout"
	"deckwright/internal/logging"
	"deckwright/internal/pptx"
	"deckwright/internal/services"
	"deckwright/internal/theme"
)

// Font sizes fixed by particular layouts, in points.
const (
	TitleSlideTitleSize = 52
	DividerTitleSize    = 40
	HeroTitleSize       = 44
	MinimalTitleSize    = 44

	HeroMaxBullets      = 3
	HeroSpaceAfter      = 8
	OverlayTransparency = 0.55
	AccentGradientAngle = 135
)

// Deck is everything needed to draw a presentation.
type Deck struct {
	Title    string
	Subtitle string
	// Language names the spoken language; it sets the proofing language.
	Language string
	Slides   []deck.SlideWithImage
}

// SlidePlan records how one content slide was drawn.
type SlidePlan struct {
	Number      int         `json:"slide_number" yaml:"slide_number"`
	Title       string      `json:"title" yaml:"title"`
	Layout      layout.Name `json:"layout" yaml:"layout"`
	ImageURL    string      `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	ImagePlaced bool        `json:"image_placed" yaml:"image_placed"`
	Bullets     int         `json:"bullets" yaml:"bullets"`
	Reduced     bool        `json:"reduced_font,omitempty" yaml:"reduced_font,omitempty"`
}

// Stats summarizes a render.
type Stats struct {
	// SlideCount includes the title slide.
	SlideCount     int
	ImagesIncluded int
	Slides         []SlidePlan
}

// Renderer draws decks with one theme.
type Renderer struct {
	theme   theme.Theme
	fetcher Fetcher
	logger  *slog.Logger
	now     func() time.Time
}

// New constructs a renderer. A nil fetcher renders every slide without images.
func New(th theme.Theme, fetcher Fetcher, logger *slog.Logger) *Renderer {
	return &Renderer{
		theme:   th,
		fetcher: fetcher,
		logger:  logging.NewComponentLogger(logger, "render"),
		now:     time.Now,
	}
}

// Render builds the presentation: a title slide followed by one slide per
// content slide, each drawn with its selected layout.
func (r *Renderer) Render(ctx context.Context, d Deck) (*pptx.Presentation, Stats) {
	p := pptx.New(layout.SlideWidth, layout.SlideHeight)
	p.Title = strings.TrimSpace(d.Title)
	p.Creator = "deckwright"
	p.Created = r.now()
	p.Language = language.Tag(d.Language)
	p.Palette = pptx.Palette{
		Dark:   color(r.theme.Primary),
		Light:  color(r.theme.Background),
		Accent: color(r.theme.Accent),
		Font:   r.theme.FontFamily,
	}

	r.titleSlide(p.AddSlide(), d.Title, d.Subtitle)

	stats := Stats{SlideCount: len(d.Slides) + 1, Slides: make([]SlidePlan, 0, len(d.Slides))}
	total := len(d.Slides)
	for i, slide := range d.Slides {
		name := layout.SelectSlide(slide, i, total)
		s := p.AddSlide()
		placed := r.contentSlide(services.WithSlide(ctx, slide.Number), s, slide, name)
		if slide.SpeakerNotes != "" {
			s.SetNotes(slide.SpeakerNotes)
		}
		if placed {
			stats.ImagesIncluded++
		}
		plan := SlidePlan{
			Number:      slide.Number,
			Title:       slide.Title,
			Layout:      name,
			ImagePlaced: placed,
			Bullets:     len(slide.Bullets),
			Reduced:     len(slide.Bullets) >= ReduceBodyAtBullets,
		}
		if slide.HasImage() {
			plan.ImageURL = *slide.ImageURL
		}
		stats.Slides = append(stats.Slides, plan)
	}
	return p, stats
}

// Export renders d and writes it to path atomically under the path's lock.
func (r *Renderer) Export(ctx context.Context, d Deck, path string) (Stats, error) {
	var stats Stats
	err := fileutil.WithLock(ctx, path, func() error {
		p, s := r.Render(ctx, d)
		stats = s
		return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
			return p.Write(w)
		})
	})
	if err != nil {
		return Stats{}, fmt.Errorf("export deck: %w", err)
	}
	logging.WithContext(ctx, r.logger).Info("deck written",
		logging.String("path", path),
		logging.Int("slides", stats.SlideCount),
		logging.Int("images", stats.ImagesIncluded),
	)
	return stats, nil
}

func (r *Renderer) titleSlide(s *pptx.Slide, title, subtitle string) {
	tpl := layout.TemplateFor(layout.TitleSlide)
	r.solidBackground(s)
	if tpl.AccentTop {
		r.accentLine(s)
	}
	if tpl.Title != nil {
		s.AddTextBox(titleFrame(*tpl.Title), r.titlePara(PrepareTitle(title, TitleMaxRunes), TitleSlideTitleSize, pptx.AlignCenter))
	}
	if subtitle = strings.TrimSpace(subtitle); tpl.Subtitle != nil && subtitle != "" {
		para := r.captionPara(subtitle)
		para.Align = pptx.AlignCenter
		s.AddTextBox(frame(*tpl.Subtitle), para)
	}
}

// contentSlide draws one slide and reports whether an image was placed.
func (r *Renderer) contentSlide(ctx context.Context, s *pptx.Slide, slide deck.SlideWithImage, name layout.Name) bool {
	tpl := layout.TemplateFor(name)
	logging.WithContext(ctx, r.logger).Debug("slide layout selected",
		logging.Args(append(logging.DecisionAttrs("layout", string(name), "content shape"),
			logging.Int("bullets", len(slide.Bullets)),
			logging.Bool("has_image", slide.HasImage()),
		)...)...,
	)

	switch {
	case name == layout.BoldSectionDivider:
		r.accentBackground(s)
		r.sectionDivider(s, tpl, slide)
		return false
	case name == layout.HeroBackground && slide.HasImage():
		return r.heroBackground(ctx, s, tpl, slide)
	case name == layout.HeroRight, name == layout.TwoColumn:
		r.solidBackground(s)
		r.title(s, tpl, slide.Title)
		r.body(s, tpl, slide.Bullets, pptx.AlignLeft, true)
		return r.picture(ctx, s, tpl.Image, slide)
	case name == layout.CardLayout:
		r.solidBackground(s)
		if tpl.Body != nil {
			s.AddRoundRect(frame(tpl.Body.Expand(layout.CardPadding)), pptx.Solid(color(r.theme.CardBG)), layout.CardCornerAdjust)
		}
		r.title(s, tpl, slide.Title)
		r.body(s, tpl, slide.Bullets, pptx.AlignLeft, true)
		return false
	case name == layout.AccentLeftLayout, name == layout.Conclusion:
		r.solidBackground(s)
		r.accentBar(s)
		r.title(s, tpl, slide.Title)
		r.body(s, tpl, slide.Bullets, pptx.AlignLeft, true)
		return false
	case name == layout.MinimalText:
		r.solidBackground(s)
		if tpl.Title != nil {
			s.AddTextBox(titleFrame(*tpl.Title), r.titlePara(PrepareTitle(slide.Title, TitleMaxRunes), MinimalTitleSize, pptx.AlignCenter))
		}
		r.body(s, tpl, slide.Bullets, pptx.AlignCenter, false)
		return false
	case name == layout.ImageFocus:
		r.solidBackground(s)
		placed := r.picture(ctx, s, tpl.Image, slide)
		if tpl.Caption != nil {
			s.AddTextBox(frame(*tpl.Caption), r.captionPara(Caption(slide.Title, slide.Bullets)))
		}
		return placed
	default:
		r.solidBackground(s)
		if tpl.AccentLeft {
			r.accentBar(s)
		}
		r.title(s, tpl, slide.Title)
		r.body(s, tpl, slide.Bullets, pptx.AlignLeft, true)
		return false
	}
}

func (r *Renderer) sectionDivider(s *pptx.Slide, tpl layout.Template, slide deck.SlideWithImage) {
	if tpl.Title != nil {
		para := r.titlePara(PrepareTitle(slide.Title, TitleMaxRunes), DividerTitleSize, pptx.AlignCenter)
		para.Color = color(r.theme.SectionText)
		s.AddTextBox(titleFrame(*tpl.Title), para)
	}
	bullets := PrepareBullets(slide.Bullets, r.theme.BodySize)
	if tpl.Body != nil && len(bullets.Points) > 0 {
		s.AddTextBox(frame(*tpl.Body), pptx.Paragraph{
			Text:  bullets.Points[0],
			Font:  r.theme.FontFamily,
			Size:  float64(r.theme.BodySize),
			Color: color(r.theme.SectionText),
			Align: pptx.AlignCenter,
		})
	}
}

// heroBackground draws a full-slide image under a dark overlay. When the
// image cannot be placed the slide keeps only its solid background.
func (r *Renderer) heroBackground(ctx context.Context, s *pptx.Slide, tpl layout.Template, slide deck.SlideWithImage) bool {
	r.solidBackground(s)
	full := layout.Box{Width: layout.SlideWidth, Height: layout.SlideHeight}
	if !r.picture(ctx, s, &full, slide) {
		return false
	}
	s.AddRect(frame(full), pptx.Fill{Color: color(r.theme.OverlayDark), Transparency: OverlayTransparency})

	if tpl.Title != nil {
		para := r.titlePara(PrepareTitle(slide.Title, TitleMaxRunes), HeroTitleSize, pptx.AlignCenter)
		para.Color = color(r.theme.SectionText)
		s.AddTextBox(titleFrame(*tpl.Title), para)
	}
	bullets := PrepareBullets(slide.Bullets, r.theme.BodySize)
	if tpl.Body != nil && len(bullets.Points) > 0 {
		size := r.theme.BodySize
		if bullets.Reduced() {
			size = bullets.Size
		}
		points := bullets.Points[:min(len(bullets.Points), HeroMaxBullets)]
		paras := make([]pptx.Paragraph, 0, len(points))
		for _, point := range points {
			paras = append(paras, pptx.Paragraph{
				Text:       BulletText(point),
				Font:       r.theme.FontFamily,
				Size:       float64(size),
				Color:      color(r.theme.SectionText),
				SpaceAfter: HeroSpaceAfter,
			})
		}
		s.AddTextBox(frame(*tpl.Body), paras...)
	}
	return true
}

// picture fetches the slide image and fits it into box.
func (r *Renderer) picture(ctx context.Context, s *pptx.Slide, box *layout.Box, slide deck.SlideWithImage) bool {
	if box == nil || !slide.HasImage() || r.fetcher == nil {
		return false
	}
	logger := logging.WithContext(ctx, r.logger)
	url := *slide.ImageURL
	data, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		r.skipImage(logger, url, "image download failed", err)
		return false
	}
	info, err := Inspect(data)
	if err != nil {
		r.skipImage(logger, url, "image dimensions unreadable", err)
		return false
	}
	fitted, ok := Fit(*box, info.Width, info.Height)
	if !ok {
		r.skipImage(logger, url, "image could not be fitted", nil)
		return false
	}
	if err := s.AddPicture(frame(fitted), data, info.Format); err != nil {
		r.skipImage(logger, url, "image format not embeddable", err)
		return false
	}
	return true
}

func (r *Renderer) skipImage(logger *slog.Logger, url, msg string, err error) {
	attrs := []logging.Attr{
		logging.String("url", url),
		logging.String(logging.FieldImpact, "slide rendered without its image"),
	}
	if err != nil {
		attrs = append(attrs, logging.Error(err))
	}
	logging.WarnWithContext(logger, msg, "image_skipped", attrs...)
}

func (r *Renderer) title(s *pptx.Slide, tpl layout.Template, title string) {
	if tpl.Title == nil {
		return
	}
	s.AddTextBox(titleFrame(*tpl.Title), r.titlePara(PrepareTitle(title, TitleMaxRunes), r.theme.TitleSize, pptx.AlignLeft))
}

// body draws the bullet list. reduce applies the dense-slide font step.
func (r *Renderer) body(s *pptx.Slide, tpl layout.Template, points []string, align pptx.Align, reduce bool) {
	bullets := PrepareBullets(points, r.theme.BodySize)
	if tpl.Body == nil || len(bullets.Points) == 0 {
		return
	}
	paras := make([]pptx.Paragraph, 0, len(bullets.Points))
	for _, point := range bullets.Points {
		para := r.bodyPara(BulletText(point))
		if align == pptx.AlignCenter {
			para.Align = align
		}
		if reduce && bullets.Reduced() {
			para.Size = float64(bullets.Size)
			para.SpaceAfter = ReducedSpaceAfter
		}
		paras = append(paras, para)
	}
	s.AddTextBox(frame(*tpl.Body), paras...)
}

func (r *Renderer) titlePara(text string, size int, align pptx.Align) pptx.Paragraph {
	para := pptx.Paragraph{
		Text:  text,
		Font:  r.theme.FontFamily,
		Size:  float64(size),
		Bold:  true,
		Color: color(r.theme.Primary),
	}
	if align == pptx.AlignCenter {
		para.Align = align
	}
	return para
}

func (r *Renderer) bodyPara(text string) pptx.Paragraph {
	return pptx.Paragraph{
		Text:        text,
		Font:        r.theme.FontFamily,
		Size:        float64(r.theme.BodySize),
		Color:       color(r.theme.Primary),
		LineSpacing: LineSpacing,
		SpaceAfter:  SpaceAfter,
	}
}

func (r *Renderer) captionPara(text string) pptx.Paragraph {
	return pptx.Paragraph{
		Text:  text,
		Font:  r.theme.FontFamily,
		Size:  float64(r.theme.CaptionSize),
		Color: color(r.theme.Secondary),
	}
}

func (r *Renderer) solidBackground(s *pptx.Slide) {
	s.SetBackground(pptx.Solid(color(r.theme.Background)))
}

// accentBackground uses the theme gradient when it has one.
func (r *Renderer) accentBackground(s *pptx.Slide) {
	if r.theme.UseGradient {
		s.SetBackground(pptx.Fill{
			Color:         color(r.theme.GradientStart),
			GradientTo:    color(r.theme.GradientEnd),
			GradientAngle: AccentGradientAngle,
		})
		return
	}
	s.SetBackground(pptx.Solid(color(r.theme.SectionBG)))
}

func (r *Renderer) accentBar(s *pptx.Slide) {
	s.AddRect(pptx.RectInches(0, 0, layout.AccentBarWidth, layout.SlideHeight), pptx.Solid(color(r.theme.Accent)))
}

func (r *Renderer) accentLine(s *pptx.Slide) {
	s.AddRect(pptx.RectInches(0, 0, layout.SlideWidth, layout.AccentLineHeight), pptx.Solid(color(r.theme.Accent)))
}

func frame(b layout.Box) pptx.Rect {
	return pptx.RectInches(b.Left, b.Top, b.Width, b.Height)
}

// titleFrame clamps a title box to layout.TitleMaxHeight.
func titleFrame(b layout.Box) pptx.Rect {
	b.Height = min(b.Height, layout.TitleMaxHeight)
	return frame(b)
}

func color(c theme.RGB) pptx.Color {
	return pptx.Color(c.Hex())
}
