package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"deckwright/internal/config"
	"deckwright/internal/services"
	"deckwright/internal/services/gemini"
	"deckwright/internal/services/llm"
	"deckwright/internal/services/openai"
)

// Client is a configured Generator bound to one backend.
type Client struct {
	*Structured
	provider string
	health   func(ctx context.Context) error
}

// Provider names the backend in use.
func (c *Client) Provider() string {
	if c == nil {
		return ""
	}
	return c.provider
}

// HealthCheck verifies the backend accepts the configured key and model.
func (c *Client) HealthCheck(ctx context.Context) error {
	if c == nil || c.health == nil {
		return errors.New("generation health: backend not configured")
	}
	return c.health(ctx)
}

type factoryOptions struct {
	maxAttempts int
}

// Option customizes NewFromConfig.
type Option func(*factoryOptions)

// WithMaxAttempts overrides the configured attempt count. Doctor uses a
// single attempt so an unreachable backend fails fast.
func WithMaxAttempts(attempts int) Option {
	return func(o *factoryOptions) {
		o.maxAttempts = attempts
	}
}

// NewFromConfig builds the backend selected by cfg.Generation.Provider.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "generation", "init", "config is nil", nil)
	}
	llmCfg := cfg.GetLLM()
	options := factoryOptions{maxAttempts: llmCfg.MaxAttempts}
	for _, opt := range opts {
		opt(&options)
	}
	if strings.TrimSpace(llmCfg.APIKey) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "generation", "init", "api key missing", nil)
	}

	provider := strings.ToLower(llmCfg.Provider)
	switch provider {
	case config.ProviderOpenAI, "":
		client, err := openai.NewClient(openai.Config{
			APIKey:         llmCfg.APIKey,
			BaseURL:        llmCfg.BaseURL,
			Model:          llmCfg.Model,
			TimeoutSeconds: llmCfg.TimeoutSeconds,
			MaxAttempts:    options.maxAttempts,
		})
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "generation", "init openai", "", err)
		}
		completer := CompleterFunc(func(ctx context.Context, p Prompt) (string, error) {
			return client.Complete(ctx, openai.Request{System: p.System, User: p.User, Model: p.Model, ImageURL: p.ImageURL})
		})
		return &Client{Structured: NewStructured(completer, logger), provider: config.ProviderOpenAI, health: client.HealthCheck}, nil

	case config.ProviderOpenRouter:
		llmOpts := []llm.Option{}
		if options.maxAttempts > 0 {
			llmOpts = append(llmOpts, llm.WithRetryMaxAttempts(options.maxAttempts))
		}
		client := llm.NewClient(llm.Config{
			APIKey:         llmCfg.APIKey,
			BaseURL:        llmCfg.BaseURL,
			Model:          llmCfg.Model,
			Referer:        llmCfg.Referer,
			Title:          llmCfg.Title,
			TimeoutSeconds: llmCfg.TimeoutSeconds,
		}, llmOpts...)
		completer := CompleterFunc(func(ctx context.Context, p Prompt) (string, error) {
			return client.Complete(ctx, llm.Request{System: p.System, User: p.User, Model: p.Model, ImageURL: p.ImageURL})
		})
		return &Client{Structured: NewStructured(completer, logger), provider: config.ProviderOpenRouter, health: client.HealthCheck}, nil

	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:         llmCfg.APIKey,
			BaseURL:        llmCfg.BaseURL,
			Model:          llmCfg.Model,
			TimeoutSeconds: llmCfg.TimeoutSeconds,
		})
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "generation", "init gemini", "", err)
		}
		completer := CompleterFunc(func(ctx context.Context, p Prompt) (string, error) {
			return client.Complete(ctx, gemini.Request{System: p.System, User: p.User, Model: p.Model, ImageURL: p.ImageURL})
		})
		return &Client{Structured: NewStructured(completer, logger), provider: config.ProviderGemini, health: client.HealthCheck}, nil

	default:
		return nil, services.Wrap(services.ErrConfiguration, "generation", "init", fmt.Sprintf("unknown provider %q", llmCfg.Provider), nil)
	}
}
