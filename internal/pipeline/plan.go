package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"deckwright/internal/deck"
	"deckwright/internal/factcheck"
	"deckwright/internal/fileutil"
	"deckwright/internal/render"
	"deckwright/internal/review"
	"deckwright/internal/targets"
)

// Plan is the YAML record of how a deck was built.
type Plan struct {
	RunID       string             `yaml:"run_id"`
	GeneratedAt time.Time          `yaml:"generated_at"`
	Input       deck.UserInput     `yaml:"input"`
	Theme       string             `yaml:"theme"`
	Targets     targets.Targets    `yaml:"targets"`
	Outline     deck.Outline       `yaml:"outline"`
	Review      PlanReview         `yaml:"review"`
	FactCheck   PlanFactCheck      `yaml:"fact_check"`
	Slides      []render.SlidePlan `yaml:"slides"`
}

// PlanReview is the review gate outcome.
type PlanReview struct {
	Outcome    review.Outcome `yaml:"outcome"`
	Score      int            `yaml:"score"`
	Weaknesses []string       `yaml:"weaknesses,omitempty"`
	Error      string         `yaml:"error,omitempty"`
}

// PlanFactCheck is the fact-check outcome.
type PlanFactCheck struct {
	Degraded bool         `yaml:"degraded,omitempty"`
	Applied  int          `yaml:"applied"`
	Issues   []deck.Issue `yaml:"issues,omitempty"`
	Error    string       `yaml:"error,omitempty"`
}

func planReview(r review.Result) PlanReview {
	out := PlanReview{Outcome: r.Outcome, Score: r.Score}
	if r.Evaluation != nil {
		out.Weaknesses = r.Evaluation.Weaknesses
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return out
}

func planFactCheck(r factcheck.Result) PlanFactCheck {
	out := PlanFactCheck{Degraded: r.Degraded, Applied: r.Applied, Issues: r.Report.Issues}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return out
}

// PlanPathFor returns "<deck stem>_plan.yaml" next to the deck.
func PlanPathFor(deckPath string) string {
	stem := strings.TrimSuffix(deckPath, filepath.Ext(deckPath))
	return stem + "_plan.yaml"
}

// WritePlan encodes plan as YAML and writes it atomically.
func WritePlan(path string, plan Plan) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}
