package testsupport

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"deckwright/internal/config"
	"deckwright/internal/history"
)

// MustOpenStore opens a history.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewRun creates a pending run for tests using the provided store.
func NewRun(t testing.TB, store *history.Store, topic string) *history.Run {
	t.Helper()

	run := &history.Run{
		ID:              uuid.NewString(),
		Topic:           topic,
		Theme:           "LIGHT_PROFESSIONAL",
		DurationMinutes: 10,
		Audience:        "testers",
		Language:        "English",
	}
	if err := store.Create(context.Background(), run); err != nil {
		t.Fatalf("store.Create: %v", err)
	}
	return run
}
