package review

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"deckwright/internal/deck"
	"deckwright/internal/generation"
	"deckwright/internal/logging"
	"deckwright/internal/manuscript"
)

// ApprovalThreshold is the lowest score accepted without a rewrite.
const ApprovalThreshold = 8

// Outcome describes how the gate resolved.
type Outcome string

const (
	OutcomeApproved  Outcome = "approved"
	OutcomeRewritten Outcome = "rewritten"
	OutcomeDegraded  Outcome = "degraded"
)

// Evaluation is the rubric reply.
type Evaluation struct {
	Score                  int      `json:"score" yaml:"score"`
	Strengths              []string `json:"strengths" yaml:"strengths,omitempty"`
	Weaknesses             []string `json:"weaknesses" yaml:"weaknesses,omitempty"`
	MissingTopics          []string `json:"missing_topics" yaml:"missing_topics,omitempty"`
	ImprovementSuggestions []string `json:"improvement_suggestions" yaml:"improvement_suggestions,omitempty"`
}

// Result is the gate's explicit outcome.
type Result struct {
	Manuscript deck.Manuscript
	Score      int
	Outcome    Outcome
	Evaluation *Evaluation
	// Err is the cause when Outcome is OutcomeDegraded.
	Err error
}

// Models selects the evaluate and rewrite models.
type Models struct {
	Evaluate string
	Rewrite  string
}

// Gate evaluates and optionally rewrites manuscripts.
type Gate struct {
	gen    generation.Generator
	models Models
	logger *slog.Logger
}

// New constructs a review gate.
func New(gen generation.Generator, models Models, logger *slog.Logger) *Gate {
	return &Gate{gen: gen, models: models, logger: logging.NewComponentLogger(logger, "review")}
}

func evaluationSchema() generation.Schema {
	list := generation.Array(generation.String(), 0, 0)
	return generation.Object(map[string]any{
		"score":                   generation.Integer(0, 10),
		"strengths":               list,
		"weaknesses":              list,
		"missing_topics":          list,
		"improvement_suggestions": list,
	}, "score")
}

// Review runs the gate. It always returns a usable manuscript.
func (g *Gate) Review(ctx context.Context, m deck.Manuscript, in deck.UserInput) Result {
	logger := logging.WithContext(ctx, g.logger)
	original := m.Clone()

	eval, err := g.evaluate(ctx, m, in)
	if err != nil {
		return g.degraded(logger, original, "evaluate", err)
	}

	if eval.Score >= ApprovalThreshold {
		logger.Info("manuscript approved",
			logging.Args(logging.DecisionAttrs("review_gate", string(OutcomeApproved), "score at or above threshold")...)...,
		)
		return Result{Manuscript: original, Score: eval.Score, Outcome: OutcomeApproved, Evaluation: &eval}
	}

	logger.Info("manuscript below threshold; rewriting",
		logging.Args(append(logging.DecisionAttrs("review_gate", string(OutcomeRewritten), "score below threshold"),
			logging.Int("score", eval.Score),
			logging.Int("weaknesses", len(eval.Weaknesses)),
		)...)...,
	)
	rewritten, err := g.rewrite(ctx, m, eval, in)
	if err != nil {
		return g.degraded(logger, original, "rewrite", err)
	}
	return Result{Manuscript: rewritten, Score: eval.Score, Outcome: OutcomeRewritten, Evaluation: &eval}
}

func (g *Gate) degraded(logger *slog.Logger, original deck.Manuscript, step string, err error) Result {
	logging.WarnWithContext(logger, "manuscript review skipped", "review_degraded",
		logging.String("step", step),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check generation backend availability"),
		logging.String(logging.FieldImpact, "manuscript used without quality review"),
	)
	return Result{
		Manuscript: original,
		Score:      0,
		Outcome:    OutcomeDegraded,
		Err:        fmt.Errorf("review %s: %w", step, err),
	}
}

func (g *Gate) evaluate(ctx context.Context, m deck.Manuscript, in deck.UserInput) (Evaluation, error) {
	var eval Evaluation
	err := g.gen.Generate(ctx, generation.Request{
		System: evaluateSystemPrompt,
		Prompt: evaluatePrompt(m, in),
		Model:  g.models.Evaluate,
		Schema: evaluationSchema(),
	}, &eval)
	return eval, err
}

func (g *Gate) rewrite(ctx context.Context, m deck.Manuscript, eval Evaluation, in deck.UserInput) (deck.Manuscript, error) {
	var out deck.Manuscript
	err := g.gen.Generate(ctx, generation.Request{
		System: rewriteSystemPrompt,
		Prompt: rewritePrompt(m, eval, in),
		Model:  g.models.Rewrite,
		Schema: manuscript.Schema(),
	}, &out)
	return out, err
}

// ProgressLabel renders the label reported after the gate resolves.
func ProgressLabel(score int) string {
	return "Manuscript approved (" + strconv.Itoa(score) + "/10)"
}
