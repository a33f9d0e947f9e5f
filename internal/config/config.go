package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Generation contains the text and vision generation backend settings.
type Generation struct {
	Provider            string `toml:"provider"`
	APIKey              string `toml:"api_key"`
	BaseURL             string `toml:"base_url"`
	Referer             string `toml:"referer"`
	Title               string `toml:"title"`
	TimeoutSeconds      int    `toml:"timeout_seconds"`
	MaxAttempts         int    `toml:"max_attempts"`
	Model               string `toml:"model"`
	OutlineModel        string `toml:"outline_model"`
	ManuscriptModel     string `toml:"manuscript_model"`
	ReviewEvaluateModel string `toml:"review_evaluate_model"`
	ReviewRewriteModel  string `toml:"review_rewrite_model"`
	FactCheckModel      string `toml:"factcheck_model"`
	SlidesModel         string `toml:"slides_model"`
	NotesModel          string `toml:"notes_model"`
	VisionModel         string `toml:"vision_model"`
}

// Images contains configuration for image search and vision scoring.
type Images struct {
	Enabled              bool   `toml:"enabled"`
	VisionEnabled        bool   `toml:"vision_enabled"`
	UnsplashAccessKey    string `toml:"unsplash_access_key"`
	UnsplashBaseURL      string `toml:"unsplash_base_url"`
	PerPage              int    `toml:"per_page"`
	SearchTimeoutSeconds int    `toml:"search_timeout_seconds"`
	VisionTimeoutSeconds int    `toml:"vision_timeout_seconds"`
	FetchTimeoutSeconds  int    `toml:"fetch_timeout_seconds"`
}

// Output contains configuration for generated artifacts.
type Output struct {
	Dir          string `toml:"dir"`
	DefaultTheme string `toml:"default_theme"`
	ScriptFormat string `toml:"script_format"`
	WritePlan    bool   `toml:"write_plan"`
}

// Paths contains state and log directories.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Config encapsulates all configuration values for deckwright.
//
// Configuration sections by subsystem:
//   - Generation: LLM backend and per-task model selection
//   - Images: Unsplash search and vision scoring
//   - Output: deck location, theme, and companion documents
//   - Paths: run history and log directories
//   - Logging: log format and level
//   - Notifications: ntfy push notification settings
type Config struct {
	Generation    Generation    `toml:"generation"`
	Images        Images        `toml:"images"`
	Output        Output        `toml:"output"`
	Paths         Paths         `toml:"paths"`
	Logging       Logging       `toml:"logging"`
	Notifications Notifications `toml:"notifications"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("deckwright.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state, log, and output directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir, c.Output.Dir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryPath returns the run history database location.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// LogFilePath returns the file the logger mirrors console output into.
func (c *Config) LogFilePath() string {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return ""
	}
	return filepath.Join(c.Paths.LogDir, "deckwright.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Task names the generation step a model is chosen for.
type Task string

const (
	TaskOutline        Task = "outline"
	TaskManuscript     Task = "manuscript"
	TaskReviewEvaluate Task = "review_evaluate"
	TaskReviewRewrite  Task = "review_rewrite"
	TaskFactCheck      Task = "factcheck"
	TaskSlides         Task = "slides"
	TaskNotes          Task = "notes"
	TaskVision         Task = "vision"
)

// ModelFor returns the model configured for a task, falling back to the
// default generation model.
func (c *Config) ModelFor(task Task) string {
	var model string
	switch task {
	case TaskOutline:
		model = c.Generation.OutlineModel
	case TaskManuscript:
		model = c.Generation.ManuscriptModel
	case TaskReviewEvaluate:
		model = c.Generation.ReviewEvaluateModel
	case TaskReviewRewrite:
		model = c.Generation.ReviewRewriteModel
	case TaskFactCheck:
		model = c.Generation.FactCheckModel
		if strings.TrimSpace(model) == "" {
			model = c.Generation.ReviewEvaluateModel
		}
	case TaskSlides:
		model = c.Generation.SlidesModel
	case TaskNotes:
		model = c.Generation.NotesModel
	case TaskVision:
		model = c.Generation.VisionModel
	}
	if model = strings.TrimSpace(model); model != "" {
		return model
	}
	return strings.TrimSpace(c.Generation.Model)
}

// LLMConfig contains the connection settings shared by every generation backend.
type LLMConfig struct {
	Provider       string
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
	MaxAttempts    int
}

// GetLLM returns the generation connection settings.
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider:       strings.TrimSpace(c.Generation.Provider),
		APIKey:         strings.TrimSpace(c.Generation.APIKey),
		BaseURL:        strings.TrimSpace(c.Generation.BaseURL),
		Model:          strings.TrimSpace(c.Generation.Model),
		Referer:        strings.TrimSpace(c.Generation.Referer),
		Title:          strings.TrimSpace(c.Generation.Title),
		TimeoutSeconds: c.Generation.TimeoutSeconds,
		MaxAttempts:    c.Generation.MaxAttempts,
	}
}

// SearchTimeout bounds a single image search call.
func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.Images.SearchTimeoutSeconds) * time.Second
}

// VisionTimeout bounds a single candidate evaluation.
func (c *Config) VisionTimeout() time.Duration {
	return time.Duration(c.Images.VisionTimeoutSeconds) * time.Second
}

// FetchTimeout bounds downloading one image while rendering.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Images.FetchTimeoutSeconds) * time.Second
}
