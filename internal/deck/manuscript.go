package deck

import "strings"

// ManuscriptSection is a named block of prose meant to be read aloud.
type ManuscriptSection struct {
	Name    string `json:"name" yaml:"name"`
	Content string `json:"content" yaml:"content"`
}

// Manuscript is the full spoken script.
type Manuscript struct {
	Title    string              `json:"title" yaml:"title"`
	Sections []ManuscriptSection `json:"sections" yaml:"sections"`
}

// FullText joins the section contents in order, separated by blank lines.
func (m Manuscript) FullText() string {
	parts := make([]string, 0, len(m.Sections))
	for _, section := range m.Sections {
		parts = append(parts, section.Content)
	}
	return strings.Join(parts, "\n\n")
}

// WordCount counts whitespace-separated words of FullText.
func (m Manuscript) WordCount() int {
	return len(strings.Fields(m.FullText()))
}

// Clone returns a deep copy so callers can build a modified manuscript safely.
func (m Manuscript) Clone() Manuscript {
	out := Manuscript{Title: m.Title}
	if m.Sections != nil {
		out.Sections = make([]ManuscriptSection, len(m.Sections))
		copy(out.Sections, m.Sections)
	}
	return out
}

// Equal reports whether two manuscripts carry identical content.
func (m Manuscript) Equal(other Manuscript) bool {
	if m.Title != other.Title || len(m.Sections) != len(other.Sections) {
		return false
	}
	for i := range m.Sections {
		if m.Sections[i] != other.Sections[i] {
			return false
		}
	}
	return true
}
