package testsupport

import (
	"path/filepath"
	"testing"

	"deckwright/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Images are disabled by default so tests never reach the network.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Generation.APIKey = "test"
	cfgVal.Images.Enabled = false
	cfgVal.Images.UnsplashAccessKey = "test"
	cfgVal.Output.Dir = filepath.Join(base, "decks")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithImages enables image enrichment against the given Unsplash base URL.
func WithImages(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Images.Enabled = true
		b.cfg.Images.UnsplashBaseURL = baseURL
	}
}

// WithWritePlan toggles the YAML plan dump.
func WithWritePlan(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.WritePlan = enabled
	}
}

// WithScriptFormat sets the manuscript document format.
func WithScriptFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.ScriptFormat = format
	}
}

// BaseDir returns the temp directory backing a config built by NewConfig.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
