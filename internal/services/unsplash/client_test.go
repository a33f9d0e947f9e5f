package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"deckwright/internal/config"
	"deckwright/internal/services"
)

func TestSearchSendsQueryAndAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/photos" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "solar panels" || q.Get("per_page") != "3" || q.Get("orientation") != "landscape" {
			t.Errorf("unexpected query %v", q)
		}
		if got := r.Header.Get("Authorization"); got != "Client-ID key" {
			t.Errorf("unexpected auth header %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total": 2,
			"results": []any{
				map[string]any{"id": "a", "width": 4000, "height": 3000, "urls": map[string]any{"regular": "https://img/a"}},
				map[string]any{"id": "b", "width": 1000, "height": 2000, "urls": map[string]any{"small": "https://img/b-small"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "key", server.Client())
	photos, err := client.Search(context.Background(), "solar panels", 3, OrientationLandscape)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(photos))
	}
	if photos[0].URL() != "https://img/a" || photos[0].IsPortrait() {
		t.Fatalf("unexpected first photo %+v", photos[0])
	}
	if photos[1].URL() != "https://img/b-small" || !photos[1].IsPortrait() {
		t.Fatalf("unexpected second photo %+v", photos[1])
	}
}

func TestSearchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("Rate Limit Exceeded"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	_, err := client.Search(context.Background(), "q", 3, "")
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient error for 403, got %v", err)
	}
}

func TestSearchClassifiesFailures(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, services.ErrConfiguration},
		{http.StatusNotFound, services.ErrNotFound},
		{http.StatusTooManyRequests, services.ErrTransient},
		{http.StatusBadGateway, services.ErrTransient},
		{http.StatusBadRequest, services.ErrExternalTool},
	}
	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		_, err := NewClient(server.URL, "key", server.Client()).Search(context.Background(), "q", 3, "")
		server.Close()
		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d: expected %v, got %v", tc.status, tc.want, err)
		}
	}

	blocked := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-blocked:
		}
	}))
	defer server.Close()
	defer close(blocked)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := NewClient(server.URL, "key", server.Client()).Search(ctx, "q", 3, "")
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestSearchValidatesInput(t *testing.T) {
	client := NewClient("", "key", nil)
	if _, err := client.Search(context.Background(), "  ", 3, ""); err == nil {
		t.Fatal("expected blank query to fail")
	}
	keyless := NewClient("", "", nil)
	if _, err := keyless.Search(context.Background(), "q", 3, ""); err == nil {
		t.Fatal("expected missing key to fail")
	}
	var nilClient *Client
	if _, err := nilClient.Search(context.Background(), "q", 3, ""); err == nil {
		t.Fatal("expected nil client to fail")
	}
}

func TestPhotoWithoutDimensionsIsNotPortrait(t *testing.T) {
	if (Photo{Width: 0, Height: 500}).IsPortrait() {
		t.Fatal("unknown width should not count as portrait")
	}
}

func TestNewConfiguredClient(t *testing.T) {
	cfg := config.Default()
	cfg.Images.Enabled = false
	if NewConfiguredClient(&cfg) != nil {
		t.Fatal("expected nil client when images are disabled")
	}
	cfg.Images.Enabled = true
	cfg.Images.UnsplashAccessKey = ""
	if NewConfiguredClient(&cfg) != nil {
		t.Fatal("expected nil client without access key")
	}
	cfg.Images.UnsplashAccessKey = "key"
	if NewConfiguredClient(&cfg) == nil {
		t.Fatal("expected configured client")
	}
}
