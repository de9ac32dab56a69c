package models

import "time"

// Document is a registered extracted-text document. The server never sees the
// original file — the upload collaborator extracts text before calling us.
type Document struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content,omitempty"`
	CharCount int       `json:"char_count"`
	CreatedAt time.Time `json:"created_at"`
}

// ChallengeAttempt is one recorded grading event against a document. Only the
// outcome is stored — generated quiz content is never persisted.
type ChallengeAttempt struct {
	ID            int64     `json:"id"`
	DocumentID    int64     `json:"document_id"`
	ChallengeType string    `json:"challenge_type"`
	Score         *int      `json:"score,omitempty"`
	Total         *int      `json:"total,omitempty"`
	Feedback      *string   `json:"feedback,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	ChallengeObjective  = "objective"
	ChallengeSubjective = "subjective"
)
