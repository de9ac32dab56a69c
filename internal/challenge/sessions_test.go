package challenge

import (
	"testing"
	"time"
)

func TestQuizSessions(t *testing.T) {
	qs := NewQuizSessions()

	if _, ok := qs.Get("missing"); ok {
		t.Error("expected no quiz for unknown key")
	}

	quiz := &activeQuiz{
		DocumentID: 42,
		Questions:  []ObjectiveQuestion{{Question: "Q?", Options: []string{"a", "b", "c", "d"}, CorrectOption: "a"}},
		CreatedAt:  time.Now(),
	}
	qs.Put("k1", quiz)

	got, ok := qs.Get("k1")
	if !ok {
		t.Fatal("expected quiz for stored key")
	}
	if got.DocumentID != 42 {
		t.Errorf("expected document 42, got %d", got.DocumentID)
	}

	// Replacing overwrites; a new generation invalidates the old answer key.
	qs.Put("k1", &activeQuiz{DocumentID: 7})
	got, _ = qs.Get("k1")
	if got.DocumentID != 7 {
		t.Errorf("expected replacement quiz, got document %d", got.DocumentID)
	}

	qs.Delete("k1")
	if _, ok := qs.Get("k1"); ok {
		t.Error("expected quiz gone after delete")
	}
}

func TestNewSessionKey(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		key := newSessionKey()
		if len(key) != 16 {
			t.Fatalf("expected 16-character key, got %d", len(key))
		}
		seen[key] = true
	}
	if len(seen) < 45 {
		t.Errorf("expected mostly unique keys, got %d unique of 50", len(seen))
	}
}
