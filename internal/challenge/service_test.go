package challenge

import (
	"context"
	"errors"
	"testing"

	"github.com/smart-assistant/backend/internal/llm"
)

const testDoc = `The billing service reconciles invoices nightly. Each invoice is matched
against payment records by account number, and unmatched invoices are flagged
for manual review. Reconciliation runs are idempotent.`

func newTestService(client llm.Client) *Service {
	return NewService(client, "test-model", 10000)
}

func TestGenerateObjective_EndToEnd(t *testing.T) {
	mock := llm.NewMockClient()
	svc := newTestService(mock)

	quiz, err := svc.GenerateObjective(context.Background(), testDoc, 0)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(quiz) != DefaultObjectiveCount {
		t.Errorf("expected %d questions, got %d", DefaultObjectiveCount, len(quiz))
	}

	// Answering every question with its own correct option is a perfect score.
	score := 0
	for _, q := range quiz {
		if ScoreObjective(q.CorrectOption, q.CorrectOption) {
			score++
		}
	}
	if score != len(quiz) {
		t.Errorf("expected perfect score %d, got %d", len(quiz), score)
	}
}

func TestGenerateObjective_MalformedOutput(t *testing.T) {
	mock := llm.NewMockClient()
	mock.Queue("I cannot produce a quiz from this document.")
	svc := newTestService(mock)

	_, err := svc.GenerateObjective(context.Background(), testDoc, 5)
	if err == nil {
		t.Fatal("expected error for non-JSON model output")
	}

	var malformed *MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedOutputError, got: %T", err)
	}
	if malformed.Raw == "" {
		t.Error("expected Raw to carry the model output")
	}
}

func TestGenerateObjective_ProviderError(t *testing.T) {
	cause := errors.New("connection refused")
	mock := llm.NewMockClient()
	mock.QueueErr(cause)
	svc := newTestService(mock)

	_, err := svc.GenerateObjective(context.Background(), testDoc, 5)
	if err == nil {
		t.Fatal("expected provider error")
	}

	var provErr *llm.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got: %T", err)
	}
	if !errors.Is(err, cause) {
		t.Error("expected the underlying cause to be retrievable via errors.Is")
	}
}

func TestGenerateSubjective(t *testing.T) {
	mock := llm.NewMockClient()
	svc := newTestService(mock)

	questions, err := svc.GenerateSubjective(context.Background(), testDoc, 0)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(questions) != DefaultSubjectiveCount {
		t.Errorf("expected %d questions, got %d", DefaultSubjectiveCount, len(questions))
	}
	for i, q := range questions {
		if q == "" {
			t.Errorf("question %d is empty", i+1)
		}
	}
}

func TestGenerateSubjective_ShortList(t *testing.T) {
	mock := llm.NewMockClient()
	mock.Queue("1. Why does reconciliation run nightly?")
	svc := newTestService(mock)

	questions, err := svc.GenerateSubjective(context.Background(), testDoc, 5)
	if err != nil {
		t.Fatalf("expected no error for short list, got: %v", err)
	}

	if len(questions) != 1 {
		t.Errorf("expected 1 question, got %d", len(questions))
	}
}

func TestScoreObjective(t *testing.T) {
	tests := []struct {
		name    string
		chosen  string
		correct string
		want    bool
	}{
		{"exact match", "The extracted plain text", "The extracted plain text", true},
		{"case insensitive", "the EXTRACTED plain TEXT", "The extracted plain text", true},
		{"surrounding whitespace", "  The extracted plain text  ", "The extracted plain text", true},
		{"different option", "A vector embedding", "The extracted plain text", false},
		{"empty chosen", "", "The extracted plain text", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreObjective(tt.chosen, tt.correct); got != tt.want {
				t.Errorf("ScoreObjective(%q, %q) = %v, want %v", tt.chosen, tt.correct, got, tt.want)
			}
		})
	}
}

func TestScoreSubjective(t *testing.T) {
	mock := llm.NewMockClient()
	mock.Queue("  Mostly correct. The answer misses that runs are idempotent.  ")
	svc := newTestService(mock)

	feedback, err := svc.ScoreSubjective(context.Background(), "What happens to unmatched invoices?", "They get flagged.")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if feedback != "Mostly correct. The answer misses that runs are idempotent." {
		t.Errorf("expected trimmed feedback, got: %q", feedback)
	}
}

func TestScoreSubjective_ProviderError(t *testing.T) {
	mock := llm.NewMockClient()
	mock.QueueErr(errors.New("rate limited"))
	svc := newTestService(mock)

	_, err := svc.ScoreSubjective(context.Background(), "Q?", "A.")
	if err == nil {
		t.Fatal("expected provider error")
	}

	var provErr *llm.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got: %T", err)
	}
}
