package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"deckwright/internal/config"
	"deckwright/internal/generation"
	"deckwright/internal/history"
	"deckwright/internal/logging"
)

type generatorFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (generation.Generator, error)

type commandContext struct {
	configPath string
	envFile    string

	// Test hooks. Zero values use the configured backend and log sinks.
	newGenerator generatorFactory
	logWriter    io.Writer

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.configPath))
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if c.logWriter != nil {
		return logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Writer: c.logWriter,
		})
	}
	return logging.NewFromConfig(cfg)
}

func (c *commandContext) generator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (generation.Generator, error) {
	if c.newGenerator != nil {
		return c.newGenerator(ctx, cfg, logger)
	}
	client, err := generation.NewFromConfig(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (c *commandContext) openStore() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		return nil, fmt.Errorf("open run history: %w", err)
	}
	return store, nil
}

func (c *commandContext) withStore(fn func(*history.Store) error) error {
	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
