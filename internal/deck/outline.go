package deck

// Section types recognised in an outline.
const (
	SectionIntroduction = "introduction"
	SectionMain         = "main"
	SectionConclusion   = "conclusion"
)

// OutlineSection is one narrative block of the outline.
type OutlineSection struct {
	Type   string   `json:"type" yaml:"type"`
	Title  string   `json:"title" yaml:"title"`
	Points []string `json:"points" yaml:"points"`
}

// Outline is the typed presentation structure produced by the outline stage.
type Outline struct {
	Title    string           `json:"title" yaml:"title"`
	Sections []OutlineSection `json:"sections" yaml:"sections"`
}

// ValidSectionType reports whether value is one of the known section types.
func ValidSectionType(value string) bool {
	switch value {
	case SectionIntroduction, SectionMain, SectionConclusion:
		return true
	default:
		return false
	}
}
