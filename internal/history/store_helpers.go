package history

import (
	"database/sql"
	"errors"
	"strings"
	"time"
)

const runColumns = "id, topic, theme, duration_minutes, audience, language, status, stage, progress_label, progress_percent, deck_path, script_path, plan_path, slide_count, images_included, review_score, error_message, created_at, updated_at, finished_at"

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run           Run
		theme         sql.NullString
		audience      sql.NullString
		language      sql.NullString
		statusStr     string
		stage         sql.NullString
		progressLabel sql.NullString
		deckPath      sql.NullString
		scriptPath    sql.NullString
		planPath      sql.NullString
		errorMessage  sql.NullString
		createdRaw    sql.NullString
		updatedRaw    sql.NullString
		finishedRaw   sql.NullString
	)

	if err := scanner.Scan(
		&run.ID,
		&run.Topic,
		&theme,
		&run.DurationMinutes,
		&audience,
		&language,
		&statusStr,
		&stage,
		&progressLabel,
		&run.ProgressPercent,
		&deckPath,
		&scriptPath,
		&planPath,
		&run.SlideCount,
		&run.ImagesIncluded,
		&run.ReviewScore,
		&errorMessage,
		&createdRaw,
		&updatedRaw,
		&finishedRaw,
	); err != nil {
		return nil, err
	}

	run.Theme = theme.String
	run.Audience = audience.String
	run.Language = language.String
	run.Status = Status(statusStr)
	run.Stage = stage.String
	run.ProgressLabel = progressLabel.String
	run.DeckPath = deckPath.String
	run.ScriptPath = scriptPath.String
	run.PlanPath = planPath.String
	run.ErrorMessage = errorMessage.String

	if created, err := parseTimeString(createdRaw.String); err == nil {
		run.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		run.UpdatedAt = updated
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer("%", "", "_", "")
	return replacer.Replace(value)
}
