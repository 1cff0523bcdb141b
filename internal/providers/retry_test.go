package providers

import (
	"context"
	"errors"
	"testing"
)

func TestRetryWithBackoff_SucceedsAfterRateLimit(t *testing.T) {
	attempts := 0
	err := retryWithBackoff(context.Background(), 3, func() error {
		attempts++
		if attempts < 2 {
			return &rateLimitError{retryable: true}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("retryWithBackoff error: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestRetryWithBackoff_AuthErrorImmediate(t *testing.T) {
	attempts := 0
	err := retryWithBackoff(context.Background(), 3, func() error {
		attempts++
		return &authError{message: "nope"}
	})
	if !IsAuthError(err) {
		t.Errorf("error = %v, want auth error", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (no retry on auth failure)", attempts)
	}
}

func TestRetryWithBackoff_OtherErrorImmediate(t *testing.T) {
	attempts := 0
	wantErr := errors.New("connection reset")
	err := retryWithBackoff(context.Background(), 3, func() error {
		attempts++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestRetryWithBackoff_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := retryWithBackoff(ctx, 3, func() error {
		return &rateLimitError{retryable: true}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	if _, err := New("frobnicator", "m"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNew_ProviderAliases(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "http://localhost:11434")
	for _, name := range []string{"ollama", "lmstudio"} {
		gw, err := New(name, "m")
		if err != nil {
			t.Fatalf("New(%q) error: %v", name, err)
		}
		if gw.Name() != "ollama" {
			t.Errorf("New(%q).Name() = %q", name, gw.Name())
		}
	}
}
