package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"deckwright/internal/config"
	"deckwright/internal/deck"
	"deckwright/internal/factcheck"
	"deckwright/internal/generation"
	"deckwright/internal/history"
	"deckwright/internal/images"
	"deckwright/internal/logging"
	"deckwright/internal/manuscript"
	"deckwright/internal/notes"
	"deckwright/internal/notifications"
	"deckwright/internal/outline"
	"deckwright/internal/render"
	"deckwright/internal/review"
	"deckwright/internal/scriptdoc"
	"deckwright/internal/services"
	"deckwright/internal/slides"
	"deckwright/internal/stageexec"
	"deckwright/internal/targets"
	"deckwright/internal/textutil"
	"deckwright/internal/theme"
)

// Result describes the artifacts of a successful run.
type Result struct {
	RunID          string `json:"run_id"`
	DeckPath       string `json:"deck_path"`
	ScriptPath     string `json:"script_path,omitempty"`
	PlanPath       string `json:"plan_path,omitempty"`
	SlideCount     int    `json:"slide_count"`
	ImagesIncluded int    `json:"images_included"`
	ReviewScore    int    `json:"review_score"`
}

// Dependencies are the collaborators a Pipeline calls out to. Only Generator
// is required. A nil Searcher disables image enrichment and a nil Fetcher
// downloads chosen images over HTTP.
type Dependencies struct {
	Generator generation.Generator
	Searcher  images.Searcher
	Fetcher   render.Fetcher
	Store     *history.Store
	Notifier  notifications.Service
}

// Pipeline runs generation requests against one configuration.
type Pipeline struct {
	cfg    *config.Config
	deps   Dependencies
	logger *slog.Logger

	outline    *outline.Stage
	manuscript *manuscript.Stage
	review     *review.Gate
	factcheck  *factcheck.Checker
	slides     *slides.Stage
	notes      *notes.Stage
	images     *images.Stage
}

// New wires the stages for cfg.
func New(cfg *config.Config, deps Dependencies, logger *slog.Logger) (*Pipeline, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "init", "config is nil", nil)
	}
	if deps.Generator == nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "init", "generator is required", nil)
	}
	if deps.Fetcher == nil {
		deps.Fetcher = render.NewHTTPFetcher(nil, cfg.FetchTimeout())
	}
	if deps.Notifier == nil {
		deps.Notifier = notifications.NewService(cfg)
	}
	logger = logging.NewComponentLogger(logger, "pipeline")
	gen := deps.Generator

	return &Pipeline{
		cfg:        cfg,
		deps:       deps,
		logger:     logger,
		outline:    outline.New(gen, cfg.ModelFor(config.TaskOutline), logger),
		manuscript: manuscript.New(gen, cfg.ModelFor(config.TaskManuscript), logger),
		review: review.New(gen, review.Models{
			Evaluate: cfg.ModelFor(config.TaskReviewEvaluate),
			Rewrite:  cfg.ModelFor(config.TaskReviewRewrite),
		}, logger),
		factcheck: factcheck.New(gen, cfg.ModelFor(config.TaskFactCheck), logger),
		slides:    slides.New(gen, cfg.ModelFor(config.TaskSlides), logger),
		notes:     notes.New(gen, cfg.ModelFor(config.TaskNotes), logger),
		images:    images.New(deps.Searcher, gen, images.OptionsFromConfig(cfg), logger),
	}, nil
}

// Run generates a deck for in. A blank outputPath writes
// <output dir>/<sanitized topic>.pptx.
func (p *Pipeline) Run(ctx context.Context, in deck.UserInput, outputPath string) (Result, error) {
	return p.run(ctx, in, outputPath, nil)
}

// Execution is a run started in the background.
type Execution struct {
	events <-chan Event
	done   chan struct{}
	result Result
	err    error
}

// Events delivers progress in order and is closed after the terminal event.
// Reading it is optional; the run never waits on it.
func (e *Execution) Events() <-chan Event { return e.events }

// Wait blocks until the run ends.
func (e *Execution) Wait() (Result, error) {
	<-e.done
	return e.result, e.err
}

// Start launches Run in a new goroutine and reports progress on the
// returned Execution.
func (p *Pipeline) Start(ctx context.Context, in deck.UserInput, outputPath string) *Execution {
	events := newProgress()
	exec := &Execution{events: events.out, done: make(chan struct{})}
	go func() {
		defer close(exec.done)
		exec.result, exec.err = p.run(ctx, in, outputPath, events)
	}()
	return exec
}

func (p *Pipeline) run(ctx context.Context, in deck.UserInput, outputPath string, events *progress) (Result, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	if strings.TrimSpace(in.Theme) == "" {
		in.Theme = p.cfg.Output.DefaultTheme
	}

	r := &run{
		p:       p,
		id:      runID,
		in:      in,
		logger:  logging.WithContext(ctx, p.logger),
		store:   p.deps.Store,
		events:  events,
		machine: newMachine(),
		started: time.Now(),
	}
	r.record(ctx)

	res, err := r.execute(ctx, outputPath)
	res.RunID = runID
	if err != nil {
		if advanceErr := r.machine.advance(StateFailed); advanceErr != nil {
			r.logger.Debug("run already terminal", logging.Error(advanceErr))
		}
		events.finish(err)
		return Result{RunID: runID}, err
	}
	r.complete(ctx, res)
	events.finish(nil)
	return res, nil
}

// run carries the state of one invocation.
type run struct {
	p       *Pipeline
	id      string
	in      deck.UserInput
	logger  *slog.Logger
	store   *history.Store
	events  *progress
	machine *machine
	started time.Time
}

func (r *run) record(ctx context.Context) {
	if r.store == nil {
		return
	}
	err := r.store.Create(context.WithoutCancel(ctx), &history.Run{
		ID:              r.id,
		Topic:           r.in.Topic,
		Theme:           r.in.ThemeOrDefault(),
		DurationMinutes: r.in.DurationMinutes,
		Audience:        r.in.Audience,
		Language:        r.in.Language,
		Status:          history.StatusPending,
	})
	if err != nil {
		logging.WarnWithContext(r.logger, "run history unavailable", "history_degraded",
			logging.Error(err),
			logging.Alert("history_unavailable"),
			logging.String(logging.FieldErrorHint, "check the state directory is writable"),
			logging.String(logging.FieldImpact, "this run will not appear in history"),
		)
		r.store = nil
	}
}

// stage runs fn through stageexec and advances to next on success. A context
// canceled while a fail-soft stage swallowed it still ends the run.
func (r *run) stage(ctx context.Context, name, label string, percent int, next State, fn stageexec.Func) error {
	err := stageexec.Run(ctx, stageexec.Options{
		Logger:   r.p.logger,
		Store:    r.store,
		Notifier: r.p.deps.Notifier,
		RunID:    r.id,
		Stage:    name,
		Label:    label,
		Percent:  percent,
		Progress: r.events.emit,
	}, func(ctx context.Context, report stageexec.Reporter) error {
		if err := fn(ctx, report); err != nil {
			return err
		}
		return ctx.Err()
	})
	if err != nil {
		return err
	}
	if next == "" {
		return nil
	}
	return r.machine.advance(next)
}

func (r *run) execute(ctx context.Context, outputPath string) (Result, error) {
	var (
		t         targets.Targets
		structure deck.Outline
		draft     deck.Manuscript
		reviewed  review.Result
		checked   factcheck.Result
		extracted slides.Result
		noted     notes.Result
		enriched  images.Result
		res       Result
	)

	err := r.stage(ctx, "validate", "", 0, "", func(context.Context, stageexec.Reporter) error {
		if err := r.in.Validate(); err != nil {
			return services.Wrap(services.ErrValidation, "pipeline", "validate", "invalid request", err)
		}
		if !theme.Known(r.in.Theme) {
			logging.WarnWithContext(r.logger, "unknown theme", "theme_fallback",
				logging.String("theme", r.in.Theme),
				logging.String(logging.FieldErrorHint, "run `deckwright themes` to list themes"),
				logging.String(logging.FieldImpact, "deck rendered with the default theme"),
			)
		}
		t = targets.ForInput(r.in)
		r.logger.Info("targets computed",
			logging.Int("target_words", t.TargetWordCount),
			logging.Int("min_slides", t.MinSlides),
			logging.Int("max_slides", t.MaxSlides),
			logging.Int("words_per_minute", t.WordsPerMinute),
		)
		return nil
	})
	if err != nil {
		return res, err
	}

	if err := r.stage(ctx, "outline", LabelPlanning, PercentPlanning, StateOutlined,
		func(ctx context.Context, _ stageexec.Reporter) (err error) {
			structure, err = r.p.outline.Generate(ctx, r.in, t)
			return err
		}); err != nil {
		return res, err
	}

	if err := r.stage(ctx, "manuscript", LabelWriting, PercentWriting, StateDrafted,
		func(ctx context.Context, _ stageexec.Reporter) (err error) {
			draft, err = r.p.manuscript.Draft(ctx, structure, r.in, t)
			return err
		}); err != nil {
		return res, err
	}

	if err := r.stage(ctx, "review", LabelReviewing, PercentReviewing, StateReviewed,
		func(ctx context.Context, report stageexec.Reporter) error {
			reviewed = r.p.review.Review(ctx, draft, r.in)
			report(review.ProgressLabel(reviewed.Score), PercentApproved)
			return nil
		}); err != nil {
		return res, err
	}

	if err := r.stage(ctx, "factcheck", LabelFactChecking, PercentFactChecking, StateFactChecked,
		func(ctx context.Context, _ stageexec.Reporter) error {
			checked = r.p.factcheck.Check(ctx, reviewed.Manuscript, r.in)
			return nil
		}); err != nil {
		return res, err
	}
	final := checked.Manuscript

	if err := r.stage(ctx, "slides", LabelSlides, PercentSlides, StateSlideExtracted,
		func(ctx context.Context, report stageexec.Reporter) (err error) {
			extracted, err = r.p.slides.Extract(ctx, final, t, func(int) {
				report(slides.RetryLabel, PercentSlideRetry)
			})
			return err
		}); err != nil {
		return res, err
	}

	if err := r.stage(ctx, "notes", LabelNotes, PercentNotes, StateNotesEnriched,
		func(ctx context.Context, _ stageexec.Reporter) error {
			noted = r.p.notes.Enrich(ctx, final, extracted.Slides)
			return nil
		}); err != nil {
		return res, err
	}

	if err := r.stage(ctx, "images", LabelImages, PercentImages, StateImageEnriched,
		func(ctx context.Context, _ stageexec.Reporter) error {
			enriched = r.p.images.Enrich(ctx, noted.Slides)
			return nil
		}); err != nil {
		return res, err
	}

	err = r.stage(ctx, "export", LabelExporting, PercentExporting, StateExported,
		func(ctx context.Context, _ stageexec.Reporter) error {
			path, err := r.deckPath(outputPath)
			if err != nil {
				return err
			}
			renderer := render.New(theme.Lookup(r.in.Theme), r.p.deps.Fetcher, r.p.logger)
			stats, err := renderer.Export(ctx, render.Deck{
				Title:    final.Title,
				Subtitle: subtitle(r.in.Topic, final.Title),
				Language: r.in.Language,
				Slides:   enriched.Slides,
			}, path)
			if err != nil {
				return services.Wrap(services.ErrTransient, "export", "write deck", "deck export failed", err)
			}
			res.DeckPath = path
			res.SlideCount = stats.SlideCount
			res.ImagesIncluded = stats.ImagesIncluded
			res.ReviewScore = reviewed.Score

			res.ScriptPath = r.writeScript(path, final)
			if r.p.cfg.Output.WritePlan {
				res.PlanPath = r.writePlan(path, Plan{
					RunID:       r.id,
					GeneratedAt: time.Now().UTC(),
					Input:       r.in,
					Theme:       theme.Lookup(r.in.Theme).ID,
					Targets:     t,
					Outline:     structure,
					Review:      planReview(reviewed),
					FactCheck:   planFactCheck(checked),
					Slides:      stats.Slides,
				})
			}
			return nil
		})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

func (r *run) deckPath(outputPath string) (string, error) {
	path := strings.TrimSpace(outputPath)
	if path == "" {
		path = DefaultOutputPath(r.p.cfg.Output.Dir, r.in.Topic)
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "export", "resolve path", "invalid output path", err)
	}
	if dir := filepath.Dir(expanded); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", services.Wrap(services.ErrConfiguration, "export", "create directory", "output directory not writable", err)
		}
	}
	return expanded, nil
}

// writeScript writes the manuscript document next to the deck. Failures are
// logged and yield an empty path.
func (r *run) writeScript(deckPath string, m deck.Manuscript) string {
	format, err := scriptdoc.ParseFormat(r.p.cfg.Output.ScriptFormat)
	if err == nil {
		path := scriptdoc.PathFor(deckPath, format)
		err = scriptdoc.Write(path, m, scriptdoc.Meta{
			Topic:           r.in.Topic,
			DurationMinutes: r.in.DurationMinutes,
			Audience:        r.in.Audience,
			Language:        r.in.Language,
		}, format)
		if err == nil {
			r.logger.Info("manuscript document written", logging.String("path", path))
			return path
		}
	}
	logging.WarnWithContext(r.logger, "manuscript document not written", "script_degraded",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check output.script_format and directory permissions"),
		logging.String(logging.FieldImpact, "deck delivered without the speaker manuscript"),
	)
	return ""
}

func (r *run) writePlan(deckPath string, plan Plan) string {
	path := PlanPathFor(deckPath)
	if err := WritePlan(path, plan); err != nil {
		logging.WarnWithContext(r.logger, "plan not written", "plan_degraded",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check directory permissions"),
			logging.String(logging.FieldImpact, "no plan document for this deck"),
		)
		return ""
	}
	r.logger.Info("plan written", logging.String("path", path))
	return path
}

func (r *run) complete(ctx context.Context, res Result) {
	elapsed := time.Since(r.started)
	r.logger.Info("pipeline completed",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.String("deck_path", res.DeckPath),
		logging.Int("slides", res.SlideCount),
		logging.Int("images", res.ImagesIncluded),
		logging.Int("review_score", res.ReviewScore),
		logging.Duration("duration", elapsed.Round(time.Millisecond)),
	)

	persistCtx := context.WithoutCancel(ctx)
	if r.store != nil {
		err := r.store.Complete(persistCtx, r.id, history.Outcome{
			DeckPath:       res.DeckPath,
			ScriptPath:     res.ScriptPath,
			PlanPath:       res.PlanPath,
			SlideCount:     res.SlideCount,
			ImagesIncluded: res.ImagesIncluded,
			ReviewScore:    res.ReviewScore,
		})
		if err != nil {
			r.logger.Error("failed to persist run completion", logging.Error(err))
		}
	}
	if r.p.deps.Notifier != nil {
		err := r.p.deps.Notifier.NotifyRunCompleted(persistCtx, notifications.RunSummary{
			Topic:          r.in.Topic,
			DeckPath:       res.DeckPath,
			SlideCount:     res.SlideCount,
			ImagesIncluded: res.ImagesIncluded,
			Duration:       elapsed,
		})
		if err != nil {
			r.logger.Debug("completion notification failed", logging.Error(err))
		}
	}
}

// DefaultOutputPath is where a deck goes when no path is given.
func DefaultOutputPath(dir, topic string) string {
	name := textutil.SanitizeFileName(strings.TrimSpace(topic))
	if name == "" {
		name = "presentation"
	}
	return filepath.Join(dir, name+".pptx")
}

// subtitle returns the topic when it adds something to the title.
func subtitle(topic, title string) string {
	topic = strings.TrimSpace(topic)
	if strings.EqualFold(topic, strings.TrimSpace(title)) {
		return ""
	}
	return topic
}

func (r Result) String() string {
	return fmt.Sprintf("%s (%d slides, %d images)", r.DeckPath, r.SlideCount, r.ImagesIncluded)
}
