package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"deckwright/internal/config"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"OPENAI_API_KEY", "OPENROUTER_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY",
		"UNSPLASH_ACCESS_KEY", "UNSPLASH_BASE_URL", "OPENAI_BASE_URL", "OPENAI_MODEL",
		"OPENAI_MODEL_OUTLINE", "OPENAI_MODEL_MANUSCRIPT", "OPENAI_MODEL_SCRIPT_REVIEW_EVALUATE",
		"OPENAI_MODEL_SCRIPT_REVIEW_REWRITE", "OPENAI_MODEL_SLIDES", "OPENAI_MODEL_NOTES",
		"OPENAI_MODEL_IMAGE_VISION", "DECKWRIGHT_NTFY_TOPIC",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaultConfigUsesEnvKeysAndExpandsPaths(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("UNSPLASH_ACCESS_KEY", "unsplash-test")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "deckwright")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Generation.APIKey != "sk-test" {
		t.Fatalf("expected api key from env, got %q", cfg.Generation.APIKey)
	}
	if cfg.Images.UnsplashAccessKey != "unsplash-test" {
		t.Fatalf("expected unsplash key from env, got %q", cfg.Images.UnsplashAccessKey)
	}
	if cfg.Generation.BaseURL != "https://api.openai.com/v1" {
		t.Fatalf("unexpected base url: %q", cfg.Generation.BaseURL)
	}
	if cfg.Output.DefaultTheme != "LIGHT_PROFESSIONAL" {
		t.Fatalf("unexpected default theme: %q", cfg.Output.DefaultTheme)
	}
	if got := cfg.ModelFor(config.TaskManuscript); got != "gpt-5" {
		t.Fatalf("manuscript model = %q, want gpt-5", got)
	}
	if got := cfg.ModelFor(config.TaskReviewEvaluate); got != "gpt-5-mini" {
		t.Fatalf("review evaluate model = %q, want gpt-5-mini", got)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("HOME", t.TempDir())
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "deckwright.toml")

	type payload struct {
		Generation struct {
			Provider     string `toml:"provider"`
			APIKey       string `toml:"api_key"`
			OutlineModel string `toml:"outline_model"`
		} `toml:"generation"`
		Images struct {
			Enabled bool `toml:"enabled"`
		} `toml:"images"`
		Output struct {
			Dir          string `toml:"dir"`
			DefaultTheme string `toml:"default_theme"`
			ScriptFormat string `toml:"script_format"`
		} `toml:"output"`
	}
	custom := payload{}
	custom.Generation.Provider = "OpenRouter"
	custom.Generation.APIKey = "or-key"
	custom.Generation.OutlineModel = "anthropic/some-model"
	custom.Output.Dir = filepath.Join(tempDir, "decks")
	custom.Output.DefaultTheme = " dark_tech "
	custom.Output.ScriptFormat = "markdown"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected existing config at %q, got %q exists=%v", configPath, resolved, exists)
	}
	if cfg.Generation.Provider != config.ProviderOpenRouter {
		t.Fatalf("provider = %q, want openrouter", cfg.Generation.Provider)
	}
	if cfg.Generation.BaseURL != "https://openrouter.ai/api/v1/chat/completions" {
		t.Fatalf("unexpected openrouter base url %q", cfg.Generation.BaseURL)
	}
	if got := cfg.ModelFor(config.TaskOutline); got != "anthropic/some-model" {
		t.Fatalf("outline model = %q", got)
	}
	if cfg.Output.DefaultTheme != "DARK_TECH" {
		t.Fatalf("theme = %q, want DARK_TECH", cfg.Output.DefaultTheme)
	}
	if cfg.Output.ScriptFormat != "md" {
		t.Fatalf("script format = %q, want md", cfg.Output.ScriptFormat)
	}
	if cfg.Images.Enabled {
		t.Fatal("expected images disabled by file")
	}
}

func TestModelEnvOverrides(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "sk")
	t.Setenv("UNSPLASH_ACCESS_KEY", "u")
	t.Setenv("OPENAI_MODEL_SLIDES", "slides-model")
	t.Setenv("OPENAI_MODEL_IMAGE_VISION", "vision-model")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := cfg.ModelFor(config.TaskSlides); got != "slides-model" {
		t.Fatalf("slides model = %q", got)
	}
	if got := cfg.ModelFor(config.TaskVision); got != "vision-model" {
		t.Fatalf("vision model = %q", got)
	}
}

func TestModelForFallsBackToDefaultModel(t *testing.T) {
	cfg := config.Default()
	cfg.Generation.NotesModel = ""
	cfg.Generation.Model = "base-model"
	if got := cfg.ModelFor(config.TaskNotes); got != "base-model" {
		t.Fatalf("expected fallback to default model, got %q", got)
	}
}

func TestFactCheckModelFollowsReviewEvaluate(t *testing.T) {
	cfg := config.Default()
	if got := cfg.ModelFor(config.TaskFactCheck); got != cfg.Generation.ReviewEvaluateModel {
		t.Fatalf("fact-check model = %q, want review evaluate model %q", got, cfg.Generation.ReviewEvaluateModel)
	}
	cfg.Generation.FactCheckModel = "checker"
	if got := cfg.ModelFor(config.TaskFactCheck); got != "checker" {
		t.Fatalf("explicit fact-check model ignored, got %q", got)
	}
	cfg.Generation.FactCheckModel = ""
	cfg.Generation.ReviewEvaluateModel = ""
	cfg.Generation.Model = "base"
	if got := cfg.ModelFor(config.TaskFactCheck); got != "base" {
		t.Fatalf("fact-check model = %q, want base", got)
	}
}

func TestValidateRequiresKeys(t *testing.T) {
	cfg := config.Default()
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "generation.api_key") {
		t.Fatalf("expected api key error, got %v", err)
	}

	cfg.Generation.APIKey = "sk"
	err = cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "unsplash_access_key") {
		t.Fatalf("expected unsplash key error, got %v", err)
	}

	cfg.Images.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config with images disabled, got %v", err)
	}
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	base := config.Default()
	base.Generation.APIKey = "sk"
	base.Images.Enabled = false

	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"provider", func(c *config.Config) { c.Generation.Provider = "other" }, "generation.provider"},
		{"theme", func(c *config.Config) { c.Output.DefaultTheme = "NEON" }, "output.default_theme"},
		{"script format", func(c *config.Config) { c.Output.ScriptFormat = "pdf" }, "output.script_format"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"timeout", func(c *config.Config) { c.Generation.TimeoutSeconds = 0 }, "generation.timeout_seconds"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "sk")
	t.Setenv("UNSPLASH_ACCESS_KEY", "u")

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Images.PerPage != 3 {
		t.Fatalf("per_page = %d, want 3", cfg.Images.PerPage)
	}
}
