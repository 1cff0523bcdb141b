package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGemini_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-pro:generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Error("missing key query parameter")
		}

		resp := geminiResponse{
			Candidates: []geminiCandidate{
				{Content: geminiContent{Parts: []geminiPart{{Text: "["}, {Text: "]"}}}},
			},
			UsageMetadata: geminiUsage{TotalTokenCount: 33},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	g := &Gemini{
		apiKey:  "test-key",
		model:   "gemini-pro",
		baseURL: server.URL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}

	resp, err := g.Send(context.Background(), Request{SystemPrompt: "s", UserPrompt: "u"})
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if resp.Content != "[]" {
		t.Errorf("Content = %v, want parts concatenated to %q", resp.Content, "[]")
	}
	if resp.TokensUsed != 33 {
		t.Errorf("TokensUsed = %d, want 33", resp.TokensUsed)
	}
}

func TestGemini_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	g := &Gemini{
		apiKey:  "k",
		model:   "gemini-pro",
		baseURL: server.URL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
	if _, err := g.Send(context.Background(), Request{UserPrompt: "u"}); err == nil {
		t.Error("expected error for empty candidates")
	}
}

func TestNewGemini_KeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "fallback-key")
	g, err := NewGemini("m")
	if err != nil {
		t.Fatalf("NewGemini error: %v", err)
	}
	if g.apiKey != "fallback-key" {
		t.Errorf("apiKey = %q, want GOOGLE_API_KEY fallback", g.apiKey)
	}

	t.Setenv("GOOGLE_API_KEY", "")
	if _, err := NewGemini("m"); err == nil {
		t.Error("expected error with neither key set")
	}
}
