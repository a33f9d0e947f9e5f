package config

import (
	"errors"
	"fmt"
	"strings"

	"deckwright/internal/theme"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateGeneration(); err != nil {
		return err
	}
	if err := c.validateImages(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return ensurePositiveMap(map[string]int{
		"generation.timeout_seconds":    c.Generation.TimeoutSeconds,
		"generation.max_attempts":       c.Generation.MaxAttempts,
		"notifications.request_timeout": c.Notifications.RequestTimeout,
	})
}

func (c *Config) validateGeneration() error {
	switch c.Generation.Provider {
	case ProviderOpenAI, ProviderOpenRouter, ProviderGemini:
	default:
		return fmt.Errorf("generation.provider must be one of openai, openrouter, gemini (got %q)", c.Generation.Provider)
	}
	if c.Generation.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		envs := strings.Join(providerKeyEnv(c.Generation.Provider), " or ")
		return fmt.Errorf("generation.api_key is required. Set %s or edit %s (create with 'deckwright config init')", envs, defaultPath)
	}
	if c.Generation.Model == "" {
		return errors.New("generation.model must be set")
	}
	return nil
}

func (c *Config) validateImages() error {
	if !c.Images.Enabled {
		return nil
	}
	if c.Images.UnsplashAccessKey == "" {
		return errors.New("images.unsplash_access_key must be set when images.enabled is true (or set UNSPLASH_ACCESS_KEY)")
	}
	return ensurePositiveMap(map[string]int{
		"images.per_page":               c.Images.PerPage,
		"images.search_timeout_seconds": c.Images.SearchTimeoutSeconds,
		"images.vision_timeout_seconds": c.Images.VisionTimeoutSeconds,
		"images.fetch_timeout_seconds":  c.Images.FetchTimeoutSeconds,
	})
}

func (c *Config) validateOutput() error {
	if !theme.Known(c.Output.DefaultTheme) {
		return fmt.Errorf("output.default_theme %q is not a known theme", c.Output.DefaultTheme)
	}
	switch c.Output.ScriptFormat {
	case "html", "md":
	default:
		return fmt.Errorf("output.script_format must be html or md (got %q)", c.Output.ScriptFormat)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
