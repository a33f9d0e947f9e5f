package deck

import (
	"errors"
	"fmt"
	"strings"
)

// Duration bounds accepted for a single presentation.
const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 120
)

// DefaultTheme is used when the caller does not pick one.
const DefaultTheme = "LIGHT_PROFESSIONAL"

// SpeakerProfile adapts manuscript style and speaking rate to the presenter.
type SpeakerProfile struct {
	Age             int    `json:"age" yaml:"age"`
	Role            string `json:"role,omitempty" yaml:"role,omitempty"`
	ExperienceLevel string `json:"experience_level,omitempty" yaml:"experience_level,omitempty"`
}

// UserInput is the immutable request for one pipeline run.
type UserInput struct {
	Topic           string          `json:"topic" yaml:"topic"`
	DurationMinutes int             `json:"duration_minutes" yaml:"duration_minutes"`
	Audience        string          `json:"audience" yaml:"audience"`
	Language        string          `json:"language" yaml:"language"`
	Theme           string          `json:"theme" yaml:"theme"`
	Speaker         *SpeakerProfile `json:"speaker_profile,omitempty" yaml:"speaker_profile,omitempty"`
}

// Validate reports the first field that makes the input unusable.
func (in UserInput) Validate() error {
	if strings.TrimSpace(in.Topic) == "" {
		return errors.New("topic is required")
	}
	if in.DurationMinutes < MinDurationMinutes || in.DurationMinutes > MaxDurationMinutes {
		return fmt.Errorf("duration must be between %d and %d minutes (got %d)", MinDurationMinutes, MaxDurationMinutes, in.DurationMinutes)
	}
	if strings.TrimSpace(in.Audience) == "" {
		return errors.New("audience is required")
	}
	if strings.TrimSpace(in.Language) == "" {
		return errors.New("language is required")
	}
	if in.Speaker != nil {
		if in.Speaker.Age < 1 || in.Speaker.Age > 120 {
			return fmt.Errorf("speaker age must be between 1 and 120 (got %d)", in.Speaker.Age)
		}
	}
	return nil
}

// ThemeOrDefault returns the requested theme name or DefaultTheme when blank.
func (in UserInput) ThemeOrDefault() string {
	if name := strings.TrimSpace(in.Theme); name != "" {
		return name
	}
	return DefaultTheme
}
