package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"deckwright/internal/deck"
	"deckwright/internal/history"
	"deckwright/internal/pipeline"
	"deckwright/internal/testsupport"
)

func TestGenerateWritesDeckAndRecordsHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	scriptHappyPath(env.generator, 3)

	stdout, stderr, err := runCLI(t, env, "generate", "--topic", "Coral Reefs", "--duration", "3")
	if err != nil {
		t.Fatalf("generate: %v\nstderr:\n%s", err, stderr)
	}
	deckPath := filepath.Join(env.outputDir, "Coral Reefs.pptx")
	requireContains(t, stdout, "Deck:    "+deckPath, "Slides:  4 (0 with images)", "Review:  8/10")
	requireContains(t, stderr, "[  5%] Planning structure", "[100%] Done")
	if _, err := os.Stat(deckPath); err != nil {
		t.Fatalf("deck not written: %v", err)
	}

	listOut, _, err := runCLI(t, env, "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, listOut, "Coral Reefs", "completed", "Done (100%)")

	showOut, _, err := runCLI(t, env, "history", "list", "--json")
	if err != nil {
		t.Fatalf("history list --json: %v", err)
	}
	var runs []history.Run
	if err := json.Unmarshal([]byte(showOut), &runs); err != nil {
		t.Fatalf("decode runs: %v", err)
	}
	if len(runs) != 1 || runs[0].DeckPath != deckPath || runs[0].SlideCount != 4 {
		t.Fatalf("unexpected runs: %+v", runs)
	}

	detail, _, err := runCLI(t, env, "history", "show", runs[0].ID[:8])
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	requireContains(t, detail, "Topic:     Coral Reefs", "Status:    completed", "Review:    8/10")
}

func TestGenerateJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	scriptHappyPath(env.generator, 2)

	stdout, _, err := runCLI(t, env, "generate", "-t", "Coral Reefs", "-d", "2", "-o", filepath.Join(env.baseDir, "talk.pptx"), "--json")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var res pipeline.Result
	if err := json.Unmarshal([]byte(stdout), &res); err != nil {
		t.Fatalf("decode result: %v\n%s", err, stdout)
	}
	if res.DeckPath != filepath.Join(env.baseDir, "talk.pptx") || res.SlideCount != 3 || res.RunID == "" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.ScriptPath != filepath.Join(env.baseDir, "talk_script.html") {
		t.Fatalf("unexpected script path %q", res.ScriptPath)
	}
}

func TestGenerateInvalidInputIsRecorded(t *testing.T) {
	env := setupCLITestEnv(t)

	_, stderr, err := runCLI(t, env, "generate", "--duration", "0")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "duration must be between") {
		t.Fatalf("unexpected error: %v", err)
	}
	requireContains(t, stderr, "Failed")
	if calls := len(env.generator.Calls()); calls != 0 {
		t.Fatalf("generator called %d times for invalid input", calls)
	}

	out, _, err := runCLI(t, env, "history", "list", "--status", "invalid")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "invalid", "Artificial Intelligence in Healthcare")
}

func TestGenerateOutlineFailureReturnsError(t *testing.T) {
	env := setupCLITestEnv(t)
	env.generator.Fail(testsupport.ModelIs("outline"), errors.New("backend unavailable"))

	_, _, err := runCLI(t, env, "generate")
	if err == nil || !strings.Contains(err.Error(), "backend unavailable") {
		t.Fatalf("expected outline failure, got %v", err)
	}

	out, _, err := runCLI(t, env, "history", "list", "--status", "failed")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "failed")
}

func TestGenerateRejectsUnknownExperience(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env, "generate", "--speaker-age", "40", "--speaker-experience", "guru")
	if err == nil || !strings.Contains(err.Error(), "--speaker-experience") {
		t.Fatalf("expected experience error, got %v", err)
	}
	if calls := len(env.generator.Calls()); calls != 0 {
		t.Fatalf("generator called %d times", calls)
	}
}

func TestGenerateOptionsUserInput(t *testing.T) {
	tests := []struct {
		name string
		opts generateOptions
		want deck.UserInput
	}{
		{
			name: "speaker ignored without age",
			opts: generateOptions{topic: " Reefs ", duration: 5, audience: "Divers", language: "English", speakerRole: "Researcher"},
			want: deck.UserInput{Topic: "Reefs", DurationMinutes: 5, Audience: "Divers", Language: "English"},
		},
		{
			name: "speaker profile with age",
			opts: generateOptions{topic: "Reefs", duration: 5, audience: "Divers", language: "de", theme: "dark_tech", speakerAge: 34, speakerRole: "Researcher", speakerExperience: "Expert"},
			want: deck.UserInput{
				Topic: "Reefs", DurationMinutes: 5, Audience: "Divers", Language: "German", Theme: "dark_tech",
				Speaker: &deck.SpeakerProfile{Age: 34, Role: "Researcher", ExperienceLevel: "expert"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.opts.userInput()
			if err != nil {
				t.Fatalf("userInput: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("input mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateFlagDefaults(t *testing.T) {
	cmd := newGenerateCommand(&commandContext{})
	flags := cmd.Flags()
	for name, want := range map[string]string{
		"topic":    defaultTopic,
		"duration": "10",
		"audience": defaultAudience,
		"language": defaultLanguage,
	} {
		if got := flags.Lookup(name).DefValue; got != want {
			t.Fatalf("--%s default = %q, want %q", name, got, want)
		}
	}
	for name, short := range map[string]string{"topic": "t", "duration": "d", "audience": "a", "language": "l", "output": "o"} {
		if got := flags.Lookup(name).Shorthand; got != short {
			t.Fatalf("--%s shorthand = %q, want %q", name, got, short)
		}
	}
}

func TestProgressRendererWritesOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	r := newProgressRenderer(&buf)
	for _, ev := range []pipeline.Event{
		{Label: pipeline.LabelPlanning, Percent: 5},
		{Label: pipeline.LabelPlanning, Percent: 5},
		{Label: pipeline.LabelWriting, Percent: 15},
		{Label: pipeline.LabelFailed, Percent: 15, Err: errors.New("boom")},
	} {
		r.render(ev)
	}
	want := "[  5%] Planning structure\n[ 15%] " + pipeline.LabelWriting + "\n[ 15%] Failed: boom\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("progress output mismatch (-want +got):\n%s", diff)
	}
}
