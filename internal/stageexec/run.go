// Package stageexec runs one pipeline stage with uniform logging, run-history
// progress updates and failure notification.
package stageexec

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"deckwright/internal/history"
	"deckwright/internal/logging"
	"deckwright/internal/notifications"
	"deckwright/internal/services"
)

// Reporter records a progress label for the running stage.
type Reporter func(label string, percent int)

// Func is the body of a stage.
type Func func(ctx context.Context, report Reporter) error

// Options controls stage execution and history persistence behavior.
type Options struct {
	Logger   *slog.Logger
	Store    *history.Store
	Notifier notifications.Service
	RunID    string
	Stage    string
	// Label and Percent are reported when the stage starts. A blank label
	// records the stage without a progress update.
	Label   string
	Percent int
	// Progress receives every reported label, after it is persisted.
	Progress Reporter
}

// Run executes fn as the named stage. A failure is logged, recorded on the run
// and announced through the notifier before it is returned unchanged.
func Run(ctx context.Context, opts Options, fn Func) error {
	if fn == nil {
		return fmt.Errorf("stage body unavailable: %s", opts.Stage)
	}

	stageCtx := services.WithStage(ctx, opts.Stage)
	stageLogger := logging.WithContext(stageCtx, opts.Logger)

	stageLogger.Info(
		"stage started",
		logging.String(logging.FieldEventType, "stage_start"),
		logging.String("stage_label", DisplayName(opts.Stage)),
	)

	report := func(label string, percent int) {
		label = strings.TrimSpace(label)
		if label == "" {
			return
		}
		if opts.Store != nil && opts.RunID != "" {
			if err := opts.Store.UpdateProgress(stageCtx, opts.RunID, opts.Stage, label, percent); err != nil {
				stageLogger.Debug("progress update not persisted", logging.Error(err))
			}
		}
		if opts.Progress != nil {
			opts.Progress(label, percent)
		}
	}
	report(opts.Label, opts.Percent)

	started := time.Now()
	if err := fn(stageCtx, report); err != nil {
		return handleFailure(stageCtx, stageLogger, opts, err)
	}

	stageLogger.Info(
		"stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Duration("duration", time.Since(started).Round(time.Millisecond)),
	)
	return nil
}

func handleFailure(ctx context.Context, logger *slog.Logger, opts Options, stageErr error) error {
	message := strings.TrimSpace(stageErr.Error())
	if message == "" {
		message = "stage failed"
	}
	status := services.FailureStatus(stageErr)

	logging.ErrorWithContext(logger, "stage failed", "stage_failure",
		logging.String("resolved_status", string(status)),
		logging.String("error_message", message),
		logging.String(logging.FieldErrorHint, failureHint(status)),
		logging.Error(stageErr),
	)

	// The caller's context may already be canceled; the failure must still land.
	persistCtx := context.WithoutCancel(ctx)
	if opts.Store != nil && opts.RunID != "" {
		if err := opts.Store.Fail(persistCtx, opts.RunID, status, message); err != nil {
			logger.Error("failed to persist stage failure", logging.Error(err))
		}
	}

	if opts.Notifier != nil && status != history.StatusCanceled {
		contextLabel := fmt.Sprintf("%s (run %s)", opts.Stage, shortID(opts.RunID))
		if err := opts.Notifier.NotifyError(persistCtx, stageErr, contextLabel); err != nil {
			logger.Debug("stage error notification failed", logging.Error(err))
		}
	}

	return stageErr
}

// DisplayName turns a stage identifier such as "fact_check" into "Fact Check".
func DisplayName(stage string) string {
	stage = strings.TrimSpace(stage)
	if stage == "" {
		return ""
	}
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(stage))
	return cases.Title(language.English).String(strings.Join(words, " "))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func failureHint(status history.Status) string {
	switch status {
	case history.StatusInvalid:
		return "check the request and configuration, then rerun"
	case history.StatusCanceled:
		return "run was canceled; rerun to start over"
	default:
		return "rerun; the generation backend may be unavailable or rate limited"
	}
}
