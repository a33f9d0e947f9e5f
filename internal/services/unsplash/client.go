package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"deckwright/internal/config"
	"deckwright/internal/services"
)

const (
	DefaultBaseURL = "https://api.unsplash.com"

	// OrientationLandscape restricts results to wide photos.
	OrientationLandscape = "landscape"
)

// HTTPDoer describes the HTTP client used by the search client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// URLs holds the size variants returned for a photo.
type URLs struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

// Photo is the subset of an Unsplash search result deckwright uses.
type Photo struct {
	ID             string `json:"id"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Description    string `json:"description"`
	AltDescription string `json:"alt_description"`
	URLs           URLs   `json:"urls"`
}

// URL returns the regular variant, falling back to small.
func (p Photo) URL() string {
	if u := strings.TrimSpace(p.URLs.Regular); u != "" {
		return u
	}
	return strings.TrimSpace(p.URLs.Small)
}

// IsPortrait reports whether both dimensions are known and height exceeds width.
func (p Photo) IsPortrait() bool {
	return p.Width > 0 && p.Height > 0 && p.Width < p.Height
}

type searchResponse struct {
	Total   int     `json:"total"`
	Results []Photo `json:"results"`
}

// Client searches photos with an access key.
type Client struct {
	baseURL   string
	accessKey string
	client    HTTPDoer
}

// NewClient constructs a search client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL, accessKey string, client HTTPDoer) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		baseURL:   baseURL,
		accessKey: strings.TrimSpace(accessKey),
		client:    client,
	}
}

// NewConfiguredClient returns a client built from the images section, or nil
// when images are disabled or no access key is configured.
func NewConfiguredClient(cfg *config.Config) *Client {
	if cfg == nil || !cfg.Images.Enabled {
		return nil
	}
	if strings.TrimSpace(cfg.Images.UnsplashAccessKey) == "" {
		return nil
	}
	return NewClient(cfg.Images.UnsplashBaseURL, cfg.Images.UnsplashAccessKey, http.DefaultClient)
}

// Search queries /search/photos and returns the results in API order.
func (c *Client) Search(ctx context.Context, query string, perPage int, orientation string) ([]Photo, error) {
	if c == nil {
		return nil, errors.New("unsplash client not configured")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("unsplash search: query required")
	}
	if c.accessKey == "" {
		return nil, errors.New("unsplash search: access key required")
	}
	params := url.Values{}
	params.Set("query", query)
	if perPage > 0 {
		params.Set("per_page", strconv.Itoa(perPage))
	}
	if orientation = strings.TrimSpace(orientation); orientation != "" {
		params.Set("orientation", orientation)
	}
	searchURL := fmt.Sprintf("%s/search/photos?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build unsplash search request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, services.Wrap(services.ErrTimeout, "unsplash", "search", "request timed out", err)
		}
		return nil, services.Wrap(services.ErrTransient, "unsplash", "search", "request failed", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read unsplash response: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		detail := fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		return nil, services.Wrap(statusMarker(resp.StatusCode), "unsplash", "search", detail, nil)
	}
	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode unsplash response: %w", err)
	}
	return decoded.Results, nil
}

// statusMarker classifies an error status. Unsplash answers 403 once the
// hourly rate limit is spent.
func statusMarker(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return services.ErrConfiguration
	case status == http.StatusNotFound:
		return services.ErrNotFound
	case status == http.StatusForbidden, status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		return services.ErrTransient
	default:
		return services.ErrExternalTool
	}
}

// Ping verifies the endpoint answers with the configured key.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Search(ctx, "presentation", 1, OrientationLandscape)
	return err
}
