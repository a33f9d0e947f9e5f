package deck

import "strings"

// Slide is the audience-facing content of one slide.
type Slide struct {
	Number       int      `json:"slide_number" yaml:"slide_number"`
	Title        string   `json:"title" yaml:"title"`
	Bullets      []string `json:"bullet_points" yaml:"bullet_points"`
	SpeakerNotes string   `json:"speaker_notes" yaml:"speaker_notes,omitempty"`
	ImageQuery   *string  `json:"image_query" yaml:"image_query,omitempty"`
}

// HasImageQuery reports whether the slide asks for an image.
func (s Slide) HasImageQuery() bool {
	return s.ImageQuery != nil && strings.TrimSpace(*s.ImageQuery) != ""
}

// Clone returns a deep copy of the slide.
func (s Slide) Clone() Slide {
	out := s
	if s.Bullets != nil {
		out.Bullets = append([]string(nil), s.Bullets...)
	}
	if s.ImageQuery != nil {
		query := *s.ImageQuery
		out.ImageQuery = &query
	}
	return out
}

// SlideWithImage is a slide plus the resolved image, if any.
type SlideWithImage struct {
	Slide    `yaml:",inline"`
	ImageURL *string `json:"image_url" yaml:"image_url,omitempty"`
}

// HasImage reports whether an image was resolved for the slide.
func (s SlideWithImage) HasImage() bool {
	return s.ImageURL != nil && strings.TrimSpace(*s.ImageURL) != ""
}

// CloneSlides deep-copies a slide list.
func CloneSlides(slides []Slide) []Slide {
	if slides == nil {
		return nil
	}
	out := make([]Slide, len(slides))
	for i, slide := range slides {
		out[i] = slide.Clone()
	}
	return out
}

// StringPtr returns a pointer to a copy of value.
func StringPtr(value string) *string {
	return &value
}
