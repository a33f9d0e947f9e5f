package deck

// Fact-check issue classifications.
const (
	IssueIncorrect    = "incorrect"
	IssueMisleading   = "misleading"
	IssueOutdated     = "outdated"
	IssueUnverifiable = "unverifiable"
)

// Issue is a single problematic span with its minimal correction.
type Issue struct {
	OriginalText  string `json:"original_text" yaml:"original_text"`
	IssueType     string `json:"issue_type" yaml:"issue_type"`
	Explanation   string `json:"explanation" yaml:"explanation,omitempty"`
	CorrectedText string `json:"corrected_text" yaml:"corrected_text"`
}

// FactCheckReport lists the issues found in a manuscript. An empty report is
// a normal outcome.
type FactCheckReport struct {
	Issues []Issue `json:"issues" yaml:"issues"`
}
