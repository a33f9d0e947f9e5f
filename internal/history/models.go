package history

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a recorded run.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusInvalid   Status = "invalid"
	StatusCanceled  Status = "canceled"
)

var allStatuses = []Status{
	StatusPending,
	StatusRunning,
	StatusCompleted,
	StatusFailed,
	StatusInvalid,
	StatusCanceled,
}

// AllStatuses returns every known status in lifecycle order.
func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ParseStatus matches a status name case-insensitively.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	for _, status := range allStatuses {
		if status == normalized {
			return status, true
		}
	}
	return "", false
}

// IsTerminal reports whether the status ends a run.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusInvalid, StatusCanceled:
		return true
	default:
		return false
	}
}

// Run is one recorded pipeline invocation.
type Run struct {
	ID              string     `json:"id"`
	Topic           string     `json:"topic"`
	Theme           string     `json:"theme"`
	DurationMinutes int        `json:"duration_minutes"`
	Audience        string     `json:"audience"`
	Language        string     `json:"language"`
	Status          Status     `json:"status"`
	Stage           string     `json:"stage,omitempty"`
	ProgressLabel   string     `json:"progress_label,omitempty"`
	ProgressPercent int        `json:"progress_percent"`
	DeckPath        string     `json:"deck_path,omitempty"`
	ScriptPath      string     `json:"script_path,omitempty"`
	PlanPath        string     `json:"plan_path,omitempty"`
	SlideCount      int        `json:"slide_count"`
	ImagesIncluded  int        `json:"images_included"`
	ReviewScore     int        `json:"review_score"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
}

// Elapsed returns how long the run took, or has been running so far.
func (r Run) Elapsed(now time.Time) time.Duration {
	end := now
	if r.FinishedAt != nil {
		end = *r.FinishedAt
	}
	if r.CreatedAt.IsZero() || end.Before(r.CreatedAt) {
		return 0
	}
	return end.Sub(r.CreatedAt)
}
