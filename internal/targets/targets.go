// Package targets derives word-count and slide-count targets from the
// requested duration, audience, and speaker profile.
package targets

import (
	"strings"

	"deckwright/internal/deck"
)

// Speaking rates in words per minute.
const (
	BaselineWPM  = 135
	GeneralWPM   = 125
	TechnicalWPM = 145
	YouthMaxWPM  = 130
	SeniorMinWPM = 140
)

// Length tolerance around the target word count.
const (
	LowerTolerance = 0.9
	UpperTolerance = 1.1
)

var (
	generalAudienceKeywords   = []string{"student", "general", "public", "beginner", "overview", "introductory", "everyone"}
	technicalAudienceKeywords = []string{"expert", "technical", "engineer", "developer", "specialist", "professional"}
)

// Targets holds the numbers the generation stages aim for.
type Targets struct {
	TargetWordCount int `json:"target_word_count" yaml:"target_word_count"`
	MinSlides       int `json:"min_slides" yaml:"min_slides"`
	MaxSlides       int `json:"max_slides" yaml:"max_slides"`
	WordsPerMinute  int `json:"words_per_minute" yaml:"words_per_minute"`
}

// Midpoint returns the integer midpoint of the slide range.
func (t Targets) Midpoint() int {
	return (t.MinSlides + t.MaxSlides) / 2
}

// Compute derives targets for a duration in minutes.
func Compute(durationMinutes int, audience string, speaker *deck.SpeakerProfile) Targets {
	wpm := WordsPerMinute(audience, speaker)
	minSlides := max(3, durationMinutes)
	maxSlides := max(minSlides, durationMinutes*2)
	return Targets{
		TargetWordCount: durationMinutes * wpm,
		MinSlides:       minSlides,
		MaxSlides:       maxSlides,
		WordsPerMinute:  wpm,
	}
}

// ForInput is Compute applied to a user request.
func ForInput(in deck.UserInput) Targets {
	return Compute(in.DurationMinutes, in.Audience, in.Speaker)
}

// WordsPerMinute picks the speaking rate for an audience and speaker.
func WordsPerMinute(audience string, speaker *deck.SpeakerProfile) int {
	wpm := BaselineWPM
	lowered := strings.ToLower(audience)
	switch {
	case containsAny(lowered, generalAudienceKeywords):
		wpm = GeneralWPM
	case containsAny(lowered, technicalAudienceKeywords):
		wpm = TechnicalWPM
	}
	if speaker != nil {
		if speaker.Age < 18 {
			wpm = min(wpm, YouthMaxWPM)
		}
		if speaker.Age >= 50 && strings.EqualFold(strings.TrimSpace(speaker.ExperienceLevel), "expert") {
			wpm = max(wpm, SeniorMinWPM)
		}
	}
	return wpm
}

func containsAny(value string, keywords []string) bool {
	if value == "" {
		return false
	}
	for _, keyword := range keywords {
		if strings.Contains(value, keyword) {
			return true
		}
	}
	return false
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// LengthAcceptable reports whether the manuscript is within tolerance of the
// target word count. Bounds are truncated to integers.
func LengthAcceptable(manuscript deck.Manuscript, targetWordCount int) bool {
	count := manuscript.WordCount()
	lower := int(float64(targetWordCount) * LowerTolerance)
	upper := int(float64(targetWordCount) * UpperTolerance)
	return count >= lower && count <= upper
}

// SlideCountAcceptable reports whether n lies in [MinSlides, MaxSlides].
func SlideCountAcceptable(n int, t Targets) bool {
	return n >= t.MinSlides && n <= t.MaxSlides
}
