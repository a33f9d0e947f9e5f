// Package gemini adapts Google's genai SDK to deckwright's JSON completion
// contract. Vision prompts download the image and attach it inline.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	defaultModel     = "gemini-2.5-flash"
	defaultTimeout   = 120 * time.Second
	maxImageBytes    = 8 << 20
	jsonResponseMIME = "application/json"
)

// Config captures the settings needed to reach the Gemini API.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
	HTTPClient     *http.Client
}

// Request is a single JSON completion.
type Request struct {
	System   string
	User     string
	Model    string
	ImageURL string
}

// Client issues GenerateContent calls through genai.
type Client struct {
	genai      *genai.Client
	model      string
	httpClient *http.Client
}

// NewClient validates cfg and constructs the genai client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key missing; set generation.api_key or GEMINI_API_KEY")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := defaultTimeout
		if cfg.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	clientCfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{genai: client, model: model, httpClient: httpClient}, nil
}

// Complete requests a JSON response and returns its text.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	user := strings.TrimSpace(req.User)
	if user == "" {
		return "", errors.New("gemini complete: user prompt required")
	}
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = c.model
	}

	parts := []*genai.Part{genai.NewPartFromText(user)}
	if imageURL := strings.TrimSpace(req.ImageURL); imageURL != "" {
		data, mimeType, err := c.fetchImage(ctx, imageURL)
		if err != nil {
			return "", fmt.Errorf("gemini complete: %w", err)
		}
		parts = append(parts, genai.NewPartFromBytes(data, mimeType))
	}

	genCfg := &genai.GenerateContentConfig{ResponseMIMEType: jsonResponseMIME}
	if system := strings.TrimSpace(req.System); system != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := c.genai.Models.GenerateContent(ctx, model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		genCfg,
	)
	if err != nil {
		return "", fmt.Errorf("gemini complete: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("gemini complete: empty content")
	}
	return text, nil
}

// HealthCheck verifies the key and default model answer a trivial JSON prompt.
func (c *Client) HealthCheck(ctx context.Context) error {
	content, err := c.Complete(ctx, Request{
		System: "You must respond with JSON only.",
		User:   "Respond with {\"ok\":true}",
	})
	if err != nil {
		return fmt.Errorf("gemini health: %w", err)
	}
	if !strings.Contains(content, "true") {
		return fmt.Errorf("gemini health: unexpected response %q", content)
	}
	return nil
}

func (c *Client) fetchImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("image request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch image: http %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	mimeType := "image/jpeg"
	if header := resp.Header.Get("Content-Type"); header != "" {
		if parsed, _, perr := mime.ParseMediaType(header); perr == nil && strings.HasPrefix(parsed, "image/") {
			mimeType = parsed
		}
	}
	return data, mimeType, nil
}
