package factcheck

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"deckwright/internal/deck"
	"deckwright/internal/generation"
	"deckwright/internal/logging"
)

// Result is the explicit outcome of Check.
type Result struct {
	Manuscript deck.Manuscript
	Report     deck.FactCheckReport
	// Applied counts issues whose quote was found in at least one section.
	Applied  int
	Degraded bool
	Err      error
}

// Checker runs fact-check analysis.
type Checker struct {
	gen    generation.Generator
	model  string
	logger *slog.Logger
}

// New constructs a fact checker.
func New(gen generation.Generator, model string, logger *slog.Logger) *Checker {
	return &Checker{gen: gen, model: model, logger: logging.NewComponentLogger(logger, "factcheck")}
}

// Schema is the report shape.
func Schema() generation.Schema {
	issue := generation.Object(map[string]any{
		"original_text": generation.String(),
		"issue_type": generation.String(
			deck.IssueIncorrect, deck.IssueMisleading, deck.IssueOutdated, deck.IssueUnverifiable,
		),
		"explanation":    generation.String(),
		"corrected_text": generation.String(),
	}, "original_text", "issue_type", "corrected_text")
	return generation.Object(map[string]any{
		"issues": generation.Array(issue, 0, 0),
	}, "issues")
}

// Analyze returns the issues found in m. An empty report is a normal result.
func (c *Checker) Analyze(ctx context.Context, m deck.Manuscript, in deck.UserInput) (deck.FactCheckReport, error) {
	var report deck.FactCheckReport
	err := c.gen.Generate(ctx, generation.Request{
		System: systemPrompt,
		Prompt: userPrompt(m, in),
		Model:  c.model,
		Schema: Schema(),
	}, &report)
	if err != nil {
		return deck.FactCheckReport{}, err
	}
	return report, nil
}

// Check analyzes and patches m. Any failure yields the unmodified manuscript
// with Degraded set.
func (c *Checker) Check(ctx context.Context, m deck.Manuscript, in deck.UserInput) Result {
	logger := logging.WithContext(ctx, c.logger)
	report, err := c.Analyze(ctx, m, in)
	if err != nil {
		logging.WarnWithContext(logger, "fact check skipped", "factcheck_degraded",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check generation backend availability"),
			logging.String(logging.FieldImpact, "manuscript used without fact corrections"),
		)
		return Result{Manuscript: m.Clone(), Degraded: true, Err: fmt.Errorf("fact check: %w", err)}
	}

	patched, applied := patch(m, report)
	logger.Info("fact check completed",
		logging.Int("issues", len(report.Issues)),
		logging.Int("applied", applied),
	)
	return Result{Manuscript: patched, Report: report, Applied: applied}
}

// Patch applies report to m and returns a new manuscript; m is not modified.
func Patch(m deck.Manuscript, report deck.FactCheckReport) deck.Manuscript {
	out, _ := patch(m, report)
	return out
}

func patch(m deck.Manuscript, report deck.FactCheckReport) (deck.Manuscript, int) {
	out := m.Clone()
	if len(report.Issues) == 0 {
		return out, 0
	}
	matched := make([]bool, len(report.Issues))
	for i := range out.Sections {
		content := out.Sections[i].Content
		for j, issue := range report.Issues {
			if issue.OriginalText == "" || !strings.Contains(content, issue.OriginalText) {
				continue
			}
			content = strings.Replace(content, issue.OriginalText, issue.CorrectedText, 1)
			matched[j] = true
		}
		out.Sections[i].Content = content
	}
	applied := 0
	for _, ok := range matched {
		if ok {
			applied++
		}
	}
	return out, applied
}
