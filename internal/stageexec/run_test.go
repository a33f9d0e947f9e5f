package stageexec_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"deckwright/internal/history"
	"deckwright/internal/notifications"
	"deckwright/internal/services"
	"deckwright/internal/stageexec"
	"deckwright/internal/testsupport"
)

type recordingNotifier struct {
	mu       sync.Mutex
	contexts []string
	errs     []error
}

func (r *recordingNotifier) NotifyRunCompleted(context.Context, notifications.RunSummary) error {
	return nil
}

func (r *recordingNotifier) NotifyError(_ context.Context, err error, label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contexts = append(r.contexts, label)
	r.errs = append(r.errs, err)
	return nil
}

func (r *recordingNotifier) TestNotification(context.Context) error { return nil }

func TestRunRecordsProgressAndStage(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	run := testsupport.NewRun(t, store, "Volcanoes")

	var reported []string
	var sawStage string
	err := stageexec.Run(context.Background(), stageexec.Options{
		Store:   store,
		RunID:   run.ID,
		Stage:   "slides",
		Label:   "Creating slides",
		Percent: 55,
		Progress: func(label string, percent int) {
			reported = append(reported, label)
		},
	}, func(ctx context.Context, report stageexec.Reporter) error {
		sawStage, _ = services.StageFromContext(ctx)
		report("Adjusting slide count, retrying", 60)
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sawStage != "slides" {
		t.Fatalf("expected stage in context, got %q", sawStage)
	}
	if strings.Join(reported, ",") != "Creating slides,Adjusting slide count, retrying" {
		t.Fatalf("unexpected progress: %v", reported)
	}

	got, err := store.Get(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != history.StatusRunning || got.Stage != "slides" {
		t.Fatalf("unexpected run state: %+v", got)
	}
	if got.ProgressLabel != "Adjusting slide count, retrying" || got.ProgressPercent != 60 {
		t.Fatalf("unexpected progress: %q %d", got.ProgressLabel, got.ProgressPercent)
	}
}

func TestRunFailurePersistsAndNotifies(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	run := testsupport.NewRun(t, store, "Volcanoes")
	notifier := &recordingNotifier{}

	cause := services.Wrap(services.ErrExternalTool, "outline", "generate", "outline generation failed", errors.New("503"))
	err := stageexec.Run(context.Background(), stageexec.Options{
		Store:    store,
		Notifier: notifier,
		RunID:    run.ID,
		Stage:    "outline",
		Label:    "Planning structure",
		Percent:  5,
	}, func(context.Context, stageexec.Reporter) error {
		return cause
	})
	if !errors.Is(err, cause) {
		t.Fatalf("expected stage error returned unchanged, got %v", err)
	}

	got, err := store.Get(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != history.StatusFailed {
		t.Fatalf("expected failed status, got %s", got.Status)
	}
	if !strings.Contains(got.ErrorMessage, "outline generation failed") {
		t.Fatalf("unexpected error message: %q", got.ErrorMessage)
	}
	if len(notifier.contexts) != 1 || !strings.HasPrefix(notifier.contexts[0], "outline (run ") {
		t.Fatalf("unexpected notifications: %v", notifier.contexts)
	}
}

func TestRunValidationFailureMarksInvalid(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	run := testsupport.NewRun(t, store, "Volcanoes")

	_ = stageexec.Run(context.Background(), stageexec.Options{
		Store: store,
		RunID: run.ID,
		Stage: "validate",
	}, func(context.Context, stageexec.Reporter) error {
		return services.Wrap(services.ErrValidation, "pipeline", "validate", "invalid request", errors.New("topic is required"))
	})

	got, err := store.Get(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != history.StatusInvalid {
		t.Fatalf("expected invalid status, got %s", got.Status)
	}
}

func TestRunCanceledSkipsNotification(t *testing.T) {
	notifier := &recordingNotifier{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := stageexec.Run(ctx, stageexec.Options{Notifier: notifier, Stage: "images"},
		func(ctx context.Context, _ stageexec.Reporter) error {
			return ctx.Err()
		})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if len(notifier.contexts) != 0 {
		t.Fatalf("expected no notification for canceled run, got %v", notifier.contexts)
	}
}

func TestRunWithoutStoreStillExecutes(t *testing.T) {
	called := false
	err := stageexec.Run(context.Background(), stageexec.Options{Stage: "notes", Label: "Adding speaker notes", Percent: 70},
		func(context.Context, stageexec.Reporter) error {
			called = true
			return nil
		})
	if err != nil || !called {
		t.Fatalf("expected stage body to run, err=%v called=%v", err, called)
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"fact_check": "Fact Check",
		"outline":    "Outline",
		"":           "",
		"slide-plan": "Slide Plan",
	}
	for in, want := range cases {
		if got := stageexec.DisplayName(in); got != want {
			t.Fatalf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}
