package llm

import (
	"context"
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		wantErr  bool
	}{
		{"anthropic", "anthropic", false},
		{"openai", "openai", false},
		{"mock", "mock", false},
		{"unknown", "gemini", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.provider, "test-key", "")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for provider %q", tt.provider)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if client == nil {
				t.Fatal("expected a client")
			}
		})
	}
}

func TestProviderError_Unwrap(t *testing.T) {
	cause := errors.New("401 unauthorized")
	err := &ProviderError{Provider: "anthropic", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause through Unwrap")
	}
	if err.Error() == "" {
		t.Error("expected a non-empty error message")
	}
}

func TestMockClient_Queue(t *testing.T) {
	mock := NewMockClient()
	mock.Queue("first")
	mock.Queue("second")

	resp, err := mock.Generate(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if resp.Content != "first" {
		t.Errorf("expected first queued response, got: %q", resp.Content)
	}

	resp, _ = mock.Generate(context.Background(), "sys", "user")
	if resp.Content != "second" {
		t.Errorf("expected second queued response, got: %q", resp.Content)
	}
}

func TestMockClient_QueueErr(t *testing.T) {
	mock := NewMockClient()
	cause := errors.New("boom")
	mock.QueueErr(cause)

	_, err := mock.Generate(context.Background(), "sys", "user")
	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got: %T", err)
	}
	if !errors.Is(err, cause) {
		t.Error("expected the queued cause to be retrievable")
	}
}

func TestMockClient_FallbackByPrompt(t *testing.T) {
	mock := NewMockClient()

	resp, err := mock.Generate(context.Background(), "sys", `Respond with this exact JSON structure including "correct_option".`)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if resp.Content == "" {
		t.Fatal("expected canned quiz content")
	}
}
