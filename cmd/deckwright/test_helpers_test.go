package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"deckwright/internal/config"
	"deckwright/internal/generation"
	"deckwright/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	outputDir  string
	generator  *testsupport.FakeGenerator
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	for _, name := range []string{
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_MODEL_OUTLINE", "OPENAI_MODEL_MANUSCRIPT",
		"OPENAI_MODEL_SCRIPT_REVIEW_EVALUATE", "OPENAI_MODEL_SCRIPT_REVIEW_REWRITE",
		"OPENAI_MODEL_SLIDES", "OPENAI_MODEL_NOTES", "OPENAI_MODEL_IMAGE_VISION",
		"UNSPLASH_ACCESS_KEY", "DECKWRIGHT_NTFY_TOPIC",
	} {
		t.Setenv(name, "")
	}

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		outputDir:  filepath.Join(base, "decks"),
		generator:  testsupport.NewFakeGenerator(),
	}
	content := fmt.Sprintf(`[generation]
api_key = "test"
model = "default"
outline_model = "outline"
manuscript_model = "manuscript"
review_evaluate_model = "evaluate"
review_rewrite_model = "rewrite"
factcheck_model = "factcheck"
slides_model = "slides"
notes_model = "notes"

[images]
enabled = false
vision_enabled = false

[output]
dir = %q

[paths]
state_dir = %q
log_dir = %q

[logging]
level = "error"
`, env.outputDir, filepath.Join(base, "state"), filepath.Join(base, "logs"))
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func (e *cliTestEnv) newGenerator(context.Context, *config.Config, *slog.Logger) (generation.Generator, error) {
	return e.generator, nil
}

// runCLI executes the root command against the test config. Global flags
// are appended so callers only pass the subcommand and its flags.
func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()

	ctx := &commandContext{newGenerator: env.newGenerator, logWriter: io.Discard}
	cmd := newRootCommandWith(ctx)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--config", env.configPath, "--env-file="))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output string, substrings ...string) {
	t.Helper()
	for _, substr := range substrings {
		if !strings.Contains(output, substr) {
			t.Fatalf("expected output to contain %q\noutput:\n%s", substr, output)
		}
	}
}

// scriptHappyPath registers replies for a full run that yields slides
// content slides.
func scriptHappyPath(gen *testsupport.FakeGenerator, slides int) {
	slideList := make([]map[string]any, slides)
	noteList := make([]map[string]any, slides)
	for i := range slideList {
		slideList[i] = map[string]any{
			"slide_number":  i + 1,
			"title":         fmt.Sprintf("Reef topic %d", i+1),
			"bullet_points": []string{"Warm shallow water", "Calcium carbonate skeletons"},
			"speaker_notes": "",
			"image_query":   nil,
		}
		noteList[i] = map[string]any{
			"slide_number":  i + 1,
			"speaker_notes": fmt.Sprintf("Ask the room a question (%d)", i+1),
		}
	}
	gen.
		OnValue(testsupport.ModelIs("outline"), map[string]any{
			"title": "Coral Reefs",
			"sections": []map[string]any{
				{"type": "introduction", "title": "Why reefs matter", "points": []string{"biodiversity"}},
				{"type": "conclusion", "title": "Protecting reefs", "points": []string{"action"}},
			},
		}).
		OnValue(testsupport.ModelIs("manuscript"), map[string]any{
			"title": "Life on the Reef",
			"sections": []map[string]any{
				{"name": "Introduction", "content": "Reefs shelter a quarter of marine species."},
			},
		}).
		OnValue(testsupport.ModelIs("evaluate"), map[string]any{"score": 8}).
		OnValue(testsupport.ModelIs("factcheck"), map[string]any{"issues": []any{}}).
		OnValue(testsupport.ModelIs("slides"), map[string]any{"slides": slideList}).
		OnValue(testsupport.ModelIs("notes"), map[string]any{"notes": noteList})
}
