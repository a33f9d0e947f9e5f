package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"deckwright/internal/history"
	"deckwright/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "slides", "generate", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"slides", "generate", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutMarkerDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected default detail, got %q", err.Error())
	}
}

func TestFailureStatusMapping(t *testing.T) {
	validationErr := services.Wrap(services.ErrValidation, "input", "validate", "invalid", nil)
	if status := services.FailureStatus(validationErr); status != history.StatusInvalid {
		t.Fatalf("expected invalid for validation error, got %s", status)
	}

	configErr := services.Wrap(services.ErrConfiguration, "config", "load", "missing key", nil)
	if status := services.FailureStatus(configErr); status != history.StatusInvalid {
		t.Fatalf("expected invalid for configuration error, got %s", status)
	}

	transientErr := services.Wrap(services.ErrTransient, "outline", "generate", "call failed", errors.New("io"))
	if status := services.FailureStatus(transientErr); status != history.StatusFailed {
		t.Fatalf("expected failed for transient error, got %s", status)
	}

	canceled := fmt.Errorf("run: %w", context.Canceled)
	if status := services.FailureStatus(canceled); status != history.StatusCanceled {
		t.Fatalf("expected canceled, got %s", status)
	}

	if status := services.FailureStatus(nil); status != history.StatusFailed {
		t.Fatalf("expected failed for nil error, got %s", status)
	}
}
