package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(context.Background(), Config{}); err == nil {
		t.Fatal("expected missing api key to fail")
	}
}

func TestCompleteRequestsJSON(t *testing.T) {
	var body map[string]any
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"role":  "model",
						"parts": []any{map[string]any{"text": `{"ok":true}`}},
					},
				},
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(context.Background(), Config{APIKey: "k", BaseURL: server.URL, Model: "gemini-test"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	content, err := client.Complete(context.Background(), Request{System: "json only", User: "ping"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if content != `{"ok":true}` {
		t.Fatalf("unexpected content %q", content)
	}
	if !strings.Contains(path, "gemini-test:generateContent") {
		t.Fatalf("unexpected request path %q", path)
	}
	genCfg, _ := body["generationConfig"].(map[string]any)
	if genCfg["responseMimeType"] != "application/json" {
		t.Fatalf("expected json response mime type, got %v", body["generationConfig"])
	}
}

func TestCompleteImageFetchFailure(t *testing.T) {
	images := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer images.Close()

	client, err := NewClient(context.Background(), Config{APIKey: "k", BaseURL: images.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := client.Complete(context.Background(), Request{User: "rate", ImageURL: images.URL + "/missing.jpg"}); err == nil {
		t.Fatal("expected image fetch failure")
	}
}
