package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeGeneration()
	c.normalizeImages()
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeGeneration() {
	g := &c.Generation
	g.Provider = strings.ToLower(strings.TrimSpace(g.Provider))
	if g.Provider == "" {
		g.Provider = defaultProvider
	}

	g.APIKey = strings.TrimSpace(g.APIKey)
	if g.APIKey == "" {
		g.APIKey = firstEnv(providerKeyEnv(g.Provider)...)
	}

	g.BaseURL = strings.TrimSpace(g.BaseURL)
	if g.BaseURL == "" {
		switch g.Provider {
		case ProviderOpenAI:
			if value := firstEnv("OPENAI_BASE_URL"); value != "" {
				g.BaseURL = value
			} else {
				g.BaseURL = defaultOpenAIBaseURL
			}
		case ProviderOpenRouter:
			g.BaseURL = defaultOpenRouterBaseURL
		}
	}
	g.Referer = strings.TrimSpace(g.Referer)
	if g.Referer == "" {
		g.Referer = defaultReferer
	}
	g.Title = strings.TrimSpace(g.Title)
	if g.Title == "" {
		g.Title = defaultTitle
	}
	if g.TimeoutSeconds <= 0 {
		g.TimeoutSeconds = defaultGenerationTimeout
	}
	if g.MaxAttempts <= 0 {
		g.MaxAttempts = defaultGenerationAttempts
	}

	g.Model = envOverride("OPENAI_MODEL", g.Model, defaultModel)
	g.OutlineModel = envOverride("OPENAI_MODEL_OUTLINE", g.OutlineModel, "")
	g.ManuscriptModel = envOverride("OPENAI_MODEL_MANUSCRIPT", g.ManuscriptModel, "")
	g.ReviewEvaluateModel = envOverride("OPENAI_MODEL_SCRIPT_REVIEW_EVALUATE", g.ReviewEvaluateModel, "")
	g.ReviewRewriteModel = envOverride("OPENAI_MODEL_SCRIPT_REVIEW_REWRITE", g.ReviewRewriteModel, "")
	g.FactCheckModel = strings.TrimSpace(g.FactCheckModel)
	g.SlidesModel = envOverride("OPENAI_MODEL_SLIDES", g.SlidesModel, "")
	g.NotesModel = envOverride("OPENAI_MODEL_NOTES", g.NotesModel, "")
	g.VisionModel = envOverride("OPENAI_MODEL_IMAGE_VISION", g.VisionModel, "")
}

func (c *Config) normalizeImages() {
	img := &c.Images
	img.UnsplashAccessKey = strings.TrimSpace(img.UnsplashAccessKey)
	if img.UnsplashAccessKey == "" {
		img.UnsplashAccessKey = firstEnv("UNSPLASH_ACCESS_KEY")
	}
	if value := firstEnv("UNSPLASH_BASE_URL"); value != "" {
		img.UnsplashBaseURL = value
	}
	img.UnsplashBaseURL = strings.TrimRight(strings.TrimSpace(img.UnsplashBaseURL), "/")
	if img.UnsplashBaseURL == "" {
		img.UnsplashBaseURL = defaultUnsplashBaseURL
	}
	if img.PerPage <= 0 {
		img.PerPage = defaultImagesPerPage
	}
	if img.SearchTimeoutSeconds <= 0 {
		img.SearchTimeoutSeconds = defaultSearchTimeout
	}
	if img.VisionTimeoutSeconds <= 0 {
		img.VisionTimeoutSeconds = defaultVisionTimeout
	}
	if img.FetchTimeoutSeconds <= 0 {
		img.FetchTimeoutSeconds = defaultFetchTimeout
	}
}

func (c *Config) normalizeOutput() error {
	var err error
	if strings.TrimSpace(c.Output.Dir) == "" {
		c.Output.Dir = defaultOutputDir
	}
	if c.Output.Dir, err = expandPath(c.Output.Dir); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	c.Output.DefaultTheme = strings.ToUpper(strings.TrimSpace(c.Output.DefaultTheme))
	if c.Output.DefaultTheme == "" {
		c.Output.DefaultTheme = defaultTheme
	}
	c.Output.ScriptFormat = strings.ToLower(strings.TrimSpace(c.Output.ScriptFormat))
	switch c.Output.ScriptFormat {
	case "":
		c.Output.ScriptFormat = defaultScriptFormat
	case "markdown":
		c.Output.ScriptFormat = "md"
	}
	return nil
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		c.Notifications.NtfyTopic = firstEnv("DECKWRIGHT_NTFY_TOPIC")
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func providerKeyEnv(provider string) []string {
	switch provider {
	case ProviderOpenRouter:
		return []string{"OPENROUTER_API_KEY"}
	case ProviderGemini:
		return []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
	default:
		return []string{"OPENAI_API_KEY"}
	}
}

// firstEnv returns the first non-blank value among the named variables.
func firstEnv(names ...string) string {
	for _, name := range names {
		if value, ok := os.LookupEnv(name); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// envOverride prefers the environment, then the file value, then fallback.
func envOverride(name, current, fallback string) string {
	if value := firstEnv(name); value != "" {
		return value
	}
	if current = strings.TrimSpace(current); current != "" {
		return current
	}
	return fallback
}
