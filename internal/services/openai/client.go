// Package openai adapts the official openai-go SDK to deckwright's JSON
// completion contract, including vision prompts with an attached image URL.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const defaultTimeout = 120 * time.Second

// Config captures the settings needed to reach an OpenAI-compatible endpoint.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
	MaxAttempts    int
	HTTPClient     *http.Client
}

// Request is a single JSON-mode chat completion.
type Request struct {
	System      string
	User        string
	Model       string
	ImageURL    string
	ImageDetail string
}

// Client issues chat completions through openai-go.
type Client struct {
	sdk   openaisdk.Client
	model string
}

// NewClient validates cfg and constructs the SDK client.
func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("openai api key missing; set generation.api_key or OPENAI_API_KEY")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, errors.New("openai model is required")
	}
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	retries := 2
	if cfg.MaxAttempts > 0 {
		retries = cfg.MaxAttempts - 1
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(retries),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	return &Client{sdk: openaisdk.NewClient(opts...), model: model}, nil
}

// Complete sends the prompt with a json_object response format and returns
// the raw message content.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	user := strings.TrimSpace(req.User)
	if user == "" {
		return "", errors.New("openai complete: user prompt required")
	}
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = c.model
	}

	msgs := make([]openaisdk.ChatCompletionMessageParamUnion, 0, 2)
	if system := strings.TrimSpace(req.System); system != "" {
		msgs = append(msgs, openaisdk.SystemMessage(system))
	}
	if imageURL := strings.TrimSpace(req.ImageURL); imageURL != "" {
		detail := strings.TrimSpace(req.ImageDetail)
		if detail == "" {
			detail = "low"
		}
		msgs = append(msgs, openaisdk.UserMessage([]openaisdk.ChatCompletionContentPartUnionParam{
			openaisdk.TextContentPart(user),
			openaisdk.ImageContentPart(openaisdk.ChatCompletionContentPartImageImageURLParam{
				URL:    imageURL,
				Detail: detail,
			}),
		}))
	} else {
		msgs = append(msgs, openaisdk.UserMessage(user))
	}

	resp, err := c.sdk.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model:    openaisdk.ChatModel(model),
		Messages: msgs,
		ResponseFormat: openaisdk.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		var apiErr *openaisdk.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("openai complete: http %d: %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("openai complete: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai complete: empty choices")
	}
	choice := resp.Choices[0]
	content := strings.TrimSpace(choice.Message.Content)
	if content == "" {
		if refusal := strings.TrimSpace(choice.Message.Refusal); refusal != "" {
			return "", fmt.Errorf("openai complete: refused: %s", refusal)
		}
		return "", fmt.Errorf("openai complete: empty content (finish_reason=%q)", choice.FinishReason)
	}
	return content, nil
}

// HealthCheck verifies the key and default model answer a trivial JSON prompt.
func (c *Client) HealthCheck(ctx context.Context) error {
	content, err := c.Complete(ctx, Request{
		System: "You must respond with JSON only.",
		User:   "Respond with {\"ok\":true}",
	})
	if err != nil {
		return fmt.Errorf("openai health: %w", err)
	}
	if !strings.Contains(content, "true") {
		return fmt.Errorf("openai health: unexpected response %q", content)
	}
	return nil
}
