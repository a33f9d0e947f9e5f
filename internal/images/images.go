package images

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"deckwright/internal/config"
	"deckwright/internal/deck"
	"deckwright/internal/generation"
	"deckwright/internal/logging"
	"deckwright/internal/services"
	"deckwright/internal/services/unsplash"
)

// Searcher finds photos for a free-text query, best match first.
type Searcher interface {
	Search(ctx context.Context, query string, perPage int, orientation string) ([]unsplash.Photo, error)
}

var (
	errNoCandidates = errors.New("no usable image candidates")
	errPanic        = errors.New("image lookup panicked")
)

// Options tunes search and vision scoring.
type Options struct {
	PerPage       int
	SearchTimeout time.Duration
	VisionTimeout time.Duration
	VisionModel   string
	// Vision enables candidate scoring when a generator is also present.
	Vision bool
}

// OptionsFromConfig reads the images section.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		PerPage:       cfg.Images.PerPage,
		SearchTimeout: cfg.SearchTimeout(),
		VisionTimeout: cfg.VisionTimeout(),
		VisionModel:   cfg.ModelFor(config.TaskVision),
		Vision:        cfg.Images.VisionEnabled,
	}
}

// Result is the enriched deck. Slides keep the input order.
type Result struct {
	Slides []deck.SlideWithImage
	// Included counts slides that received an image.
	Included int
	// Failed counts slides whose lookup errored or found nothing.
	Failed int
}

// Stage attaches images to slides.
type Stage struct {
	searcher Searcher
	gen      generation.Generator
	opts     Options
	logger   *slog.Logger
}

// New constructs an image stage. A nil searcher disables lookups; a nil
// generator disables vision scoring.
func New(searcher Searcher, gen generation.Generator, opts Options, logger *slog.Logger) *Stage {
	if opts.PerPage <= 0 {
		opts.PerPage = maxCandidates
	}
	return &Stage{
		searcher: searcher,
		gen:      gen,
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "images"),
	}
}

type outcome struct {
	url string
	err error
}

// Enrich resolves images for every slide concurrently and merges the
// outcomes by slide number.
func (s *Stage) Enrich(ctx context.Context, slides []deck.Slide) Result {
	logger := logging.WithContext(ctx, s.logger)
	outcomes := make([]outcome, len(slides))

	if s.searcher != nil {
		var g errgroup.Group
		for i, slide := range slides {
			if !slide.HasImageQuery() {
				continue
			}
			g.Go(func() error {
				defer func() {
					if r := recover(); r != nil {
						outcomes[i] = outcome{err: fmt.Errorf("%w: %v", errPanic, r)}
					}
				}()
				slideCtx := services.WithSlide(ctx, slide.Number)
				url, err := s.resolve(slideCtx, slide, i == 0)
				outcomes[i] = outcome{url: url, err: err}
				return nil
			})
		}
		_ = g.Wait()
	} else {
		logger.Debug("image search not configured; slides keep no images")
	}

	byNumber := make(map[int]outcome, len(slides))
	for i, slide := range slides {
		byNumber[slide.Number] = outcomes[i]
	}

	result := Result{Slides: make([]deck.SlideWithImage, len(slides))}
	for i, slide := range slides {
		res := byNumber[slide.Number]
		enriched := deck.SlideWithImage{Slide: slide.Clone()}
		switch {
		case res.err != nil:
			result.Failed++
			logging.WarnWithContext(logger, "slide image unavailable", "image_lookup_failed",
				logging.Int(logging.FieldSlideNumber, slide.Number),
				logging.String("query", strings.TrimSpace(deref(slide.ImageQuery))),
				logging.Error(res.err),
				logging.String(logging.FieldErrorHint, "check unsplash access key and quota"),
				logging.String(logging.FieldImpact, "slide rendered without an image"),
			)
		case res.url != "":
			enriched.ImageURL = deck.StringPtr(res.url)
			result.Included++
		}
		result.Slides[i] = enriched
	}

	logger.Info("slide images resolved",
		logging.Int("slides", len(slides)),
		logging.Int("included", result.Included),
		logging.Int("failed", result.Failed),
	)
	return result
}

func (s *Stage) resolve(ctx context.Context, slide deck.Slide, preferBackground bool) (string, error) {
	query := strings.TrimSpace(deref(slide.ImageQuery))

	photos, err := s.search(ctx, query)
	if err != nil {
		return "", err
	}
	if len(photos) > maxCandidates {
		photos = photos[:maxCandidates]
	}
	candidates := parseCandidates(photos)
	if len(candidates) == 0 {
		return "", errNoCandidates
	}

	logger := logging.WithContext(ctx, s.logger)
	if s.visionEnabled() {
		topic := strings.TrimSpace(slide.Title)
		if topic == "" {
			topic = query
		}
		evaluated := s.evaluate(ctx, candidates, topic, slideContext(slide, query))
		if url, ok := selectByVision(evaluated, preferBackground); ok {
			logger.Debug("image chosen by vision",
				logging.Args(append(logging.DecisionAttrs("image_selection", "vision", "highest scoring candidate"),
					logging.Int("evaluated", len(evaluated)),
					logging.Bool("prefer_background", preferBackground),
				)...)...,
			)
			return url, nil
		}
	}

	url, ok := selectByMetadata(photos)
	if !ok {
		return "", errNoCandidates
	}
	logger.Debug("image chosen by metadata",
		logging.Args(logging.DecisionAttrs("image_selection", "metadata", "vision scores unavailable")...)...,
	)
	return url, nil
}

func (s *Stage) search(ctx context.Context, query string) ([]unsplash.Photo, error) {
	if s.opts.SearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.SearchTimeout)
		defer cancel()
	}
	photos, err := s.searcher.Search(ctx, query, s.opts.PerPage, unsplash.OrientationLandscape)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return photos, nil
}

func (s *Stage) visionEnabled() bool {
	return s.opts.Vision && s.gen != nil
}

// evaluate scores candidates concurrently. Failed evaluations are dropped;
// the returned slice keeps search order.
func (s *Stage) evaluate(ctx context.Context, candidates []candidate, topic, slideCtx string) []scored {
	slots := make([]*Evaluation, len(candidates))
	var g errgroup.Group
	for i, c := range candidates {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					slots[i] = nil
					logging.WithContext(ctx, s.logger).Debug("candidate evaluation panicked",
						logging.String("url", c.url),
						logging.Any("panic", r),
					)
				}
			}()
			eval, err := s.evaluateOne(ctx, c.url, topic, slideCtx)
			if err != nil {
				logging.WithContext(ctx, s.logger).Debug("candidate evaluation failed",
					logging.String("url", c.url),
					logging.Error(err),
				)
				return nil
			}
			slots[i] = &eval
			return nil
		})
	}
	_ = g.Wait()

	out := make([]scored, 0, len(candidates))
	for i, eval := range slots {
		if eval != nil {
			out = append(out, scored{candidate: candidates[i], eval: *eval})
		}
	}
	return out
}

func (s *Stage) evaluateOne(ctx context.Context, url, topic, slideCtx string) (Evaluation, error) {
	if s.opts.VisionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.VisionTimeout)
		defer cancel()
	}
	var eval Evaluation
	err := s.gen.Generate(ctx, generation.Request{
		System:    visionSystemPrompt,
		Prompt:    visionPrompt(topic, slideCtx),
		Model:     s.opts.VisionModel,
		ImageURL:  url,
		Schema:    EvaluationSchema(),
		Normalize: NormalizeEvaluation,
	}, &eval)
	return eval, err
}

// EvaluationSchema is the vision reply shape.
func EvaluationSchema() generation.Schema {
	return generation.Object(map[string]any{
		"score":                  generation.Integer(0, 10),
		"reason":                 generation.String(),
		"suitable_as_background": generation.Schema{"type": "boolean"},
	}, "score")
}

// NormalizeEvaluation rounds fractional scores, which some vision models emit.
func NormalizeEvaluation(doc any) any {
	root, ok := doc.(map[string]any)
	if !ok {
		return doc
	}
	if score, ok := root["score"].(float64); ok {
		root["score"] = math.Round(score)
	}
	return root
}

func slideContext(slide deck.Slide, query string) string {
	bullets := slide.Bullets
	if len(bullets) > 3 {
		bullets = bullets[:3]
	}
	if joined := strings.TrimSpace(strings.Join(bullets, " | ")); joined != "" {
		return joined
	}
	return "Search: " + query
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
