package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrRunNotFound is returned by updates that target a missing run.
var ErrRunNotFound = errors.New("run not found")

// Create inserts a new run. CreatedAt and UpdatedAt are stamped when zero.
func (s *Store) Create(ctx context.Context, run *Run) error {
	if run == nil {
		return errors.New("run is nil")
	}
	if strings.TrimSpace(run.ID) == "" {
		return errors.New("run id is required")
	}
	now := time.Now().UTC()
	if run.CreatedAt.IsZero() {
		run.CreatedAt = now
	}
	run.UpdatedAt = now
	if run.Status == "" {
		run.Status = StatusPending
	}
	_, err := s.exec(ctx,
		`INSERT INTO runs (
            id, topic, theme, duration_minutes, audience, language, status,
            stage, progress_label, progress_percent, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Topic,
		nullableString(run.Theme),
		run.DurationMinutes,
		nullableString(run.Audience),
		nullableString(run.Language),
		run.Status,
		nullableString(run.Stage),
		nullableString(run.ProgressLabel),
		run.ProgressPercent,
		run.CreatedAt.Format(time.RFC3339Nano),
		run.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Get fetches a run by identifier. It returns nil without error when the run
// does not exist.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// FindByPrefix resolves an abbreviated run id. Ambiguous prefixes are errors.
func (s *Store) FindByPrefix(ctx context.Context, prefix string) (*Run, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, errors.New("run id is required")
	}
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT `+runColumns+` FROM runs WHERE id LIKE ? ORDER BY created_at DESC LIMIT 2`,
		escapeLike(prefix)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("find run: %w", err)
	}
	runs, err := collectRuns(rows)
	if err != nil {
		return nil, err
	}
	switch len(runs) {
	case 0:
		return nil, nil
	case 1:
		return runs[0], nil
	default:
		return nil, fmt.Errorf("run id prefix %q is ambiguous", prefix)
	}
}

// UpdateProgress records the latest stage and progress label for a run and
// marks it running.
func (s *Store) UpdateProgress(ctx context.Context, id, stage, label string, percent int) error {
	res, err := s.exec(ctx,
		`UPDATE runs
         SET status = ?, stage = COALESCE(?, stage), progress_label = ?, progress_percent = ?, updated_at = ?
         WHERE id = ?`,
		StatusRunning,
		nullableString(stage),
		nullableString(label),
		percent,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	return requireRow(res)
}

// Outcome carries what a finished run produced.
type Outcome struct {
	DeckPath       string
	ScriptPath     string
	PlanPath       string
	SlideCount     int
	ImagesIncluded int
	ReviewScore    int
}

// Complete marks a run as completed with its artifacts.
func (s *Store) Complete(ctx context.Context, id string, outcome Outcome) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.exec(ctx,
		`UPDATE runs
         SET status = ?, progress_label = ?, progress_percent = 100, deck_path = ?, script_path = ?,
             plan_path = ?, slide_count = ?, images_included = ?, review_score = ?, error_message = NULL,
             updated_at = ?, finished_at = ?
         WHERE id = ?`,
		StatusCompleted,
		"Done",
		nullableString(outcome.DeckPath),
		nullableString(outcome.ScriptPath),
		nullableString(outcome.PlanPath),
		outcome.SlideCount,
		outcome.ImagesIncluded,
		outcome.ReviewScore,
		now,
		now,
		id,
	)
	if err != nil {
		return fmt.Errorf("complete run: %w", err)
	}
	return requireRow(res)
}

// Fail marks a run as ended with a failure status and message.
func (s *Store) Fail(ctx context.Context, id string, status Status, message string) error {
	if !status.IsTerminal() || status == StatusCompleted {
		status = StatusFailed
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.exec(ctx,
		`UPDATE runs SET status = ?, error_message = ?, updated_at = ?, finished_at = ? WHERE id = ?`,
		status,
		nullableString(message),
		now,
		now,
		id,
	)
	if err != nil {
		return fmt.Errorf("fail run: %w", err)
	}
	return requireRow(res)
}

// List returns the most recent runs, newest first, optionally filtered by
// status. A non-positive limit returns every match.
func (s *Store) List(ctx context.Context, limit int, statuses ...Status) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	args := make([]any, 0, len(statuses)+1)
	if len(statuses) > 0 {
		query += ` WHERE status IN (` + makePlaceholders(len(statuses)) + `)`
		for _, status := range statuses {
			args = append(args, status)
		}
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return collectRuns(rows)
}

// Remove deletes a run by identifier.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	res, err := s.exec(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("remove run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func collectRuns(rows *sql.Rows) ([]*Run, error) {
	defer rows.Close()
	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrRunNotFound
	}
	return nil
}
