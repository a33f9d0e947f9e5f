package deck

import (
	"strings"
	"testing"
)

func TestUserInputValidate(t *testing.T) {
	base := UserInput{Topic: "Solar power", DurationMinutes: 10, Audience: "students", Language: "English"}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*UserInput)
		want   string
	}{
		{"blank topic", func(in *UserInput) { in.Topic = "  " }, "topic"},
		{"zero duration", func(in *UserInput) { in.DurationMinutes = 0 }, "duration"},
		{"long duration", func(in *UserInput) { in.DurationMinutes = 121 }, "duration"},
		{"blank audience", func(in *UserInput) { in.Audience = "" }, "audience"},
		{"blank language", func(in *UserInput) { in.Language = "" }, "language"},
		{"speaker age", func(in *UserInput) { in.Speaker = &SpeakerProfile{Age: 0} }, "speaker age"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)
			err := in.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestManuscriptFullTextAndWordCount(t *testing.T) {
	m := Manuscript{
		Title: "T",
		Sections: []ManuscriptSection{
			{Name: "Intro", Content: "Hello there audience."},
			{Name: "Body", Content: "Two\nwords  more"},
		},
	}
	if got, want := m.FullText(), "Hello there audience.\n\nTwo\nwords  more"; got != want {
		t.Fatalf("FullText = %q, want %q", got, want)
	}
	if got := m.WordCount(); got != 6 {
		t.Fatalf("WordCount = %d, want 6", got)
	}
	if (Manuscript{}).WordCount() != 0 {
		t.Fatal("expected empty manuscript to have zero words")
	}
}

func TestSlideCloneDoesNotAlias(t *testing.T) {
	original := Slide{Number: 1, Title: "A", Bullets: []string{"x"}, ImageQuery: StringPtr("q")}
	clone := original.Clone()
	clone.Bullets[0] = "changed"
	*clone.ImageQuery = "other"
	if original.Bullets[0] != "x" || *original.ImageQuery != "q" {
		t.Fatal("clone must not share storage with original")
	}
}

func TestHasImageQueryTreatsBlankAsMissing(t *testing.T) {
	if (Slide{ImageQuery: StringPtr("   ")}).HasImageQuery() {
		t.Fatal("blank query should not count")
	}
	if !(Slide{ImageQuery: StringPtr("city skyline")}).HasImageQuery() {
		t.Fatal("expected query to count")
	}
}
