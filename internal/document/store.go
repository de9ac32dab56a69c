package document

import (
	"database/sql"
	"fmt"

	"github.com/smart-assistant/backend/internal/models"
)

// Store persists registered documents and their challenge attempt history.
// Generated quiz content is never written here.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) SaveDocument(name, content string) (*models.Document, error) {
	var doc models.Document
	err := s.db.QueryRow(
		`INSERT INTO documents (name, content, char_count)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, char_count, created_at`,
		name, content, len(content),
	).Scan(&doc.ID, &doc.Name, &doc.CharCount, &doc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	doc.Content = content
	return &doc, nil
}

func (s *Store) GetDocument(id int64) (*models.Document, error) {
	var doc models.Document
	err := s.db.QueryRow(
		`SELECT id, name, content, char_count, created_at FROM documents WHERE id = $1`,
		id,
	).Scan(&doc.ID, &doc.Name, &doc.Content, &doc.CharCount, &doc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &doc, nil
}

func (s *Store) ListDocuments(limit, offset int) ([]models.Document, error) {
	rows, err := s.db.Query(
		`SELECT id, name, char_count, created_at FROM documents
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.CharCount, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// RecordObjectiveAttempt stores the outcome of a scored objective quiz.
func (s *Store) RecordObjectiveAttempt(documentID int64, score, total int) error {
	_, err := s.db.Exec(
		`INSERT INTO challenge_attempts (document_id, challenge_type, score, total)
		 VALUES ($1, $2, $3, $4)`,
		documentID, models.ChallengeObjective, score, total,
	)
	if err != nil {
		return fmt.Errorf("record objective attempt: %w", err)
	}
	return nil
}

// RecordSubjectiveAttempt stores the model's feedback for one graded answer.
func (s *Store) RecordSubjectiveAttempt(documentID int64, feedback string) error {
	_, err := s.db.Exec(
		`INSERT INTO challenge_attempts (document_id, challenge_type, feedback)
		 VALUES ($1, $2, $3)`,
		documentID, models.ChallengeSubjective, feedback,
	)
	if err != nil {
		return fmt.Errorf("record subjective attempt: %w", err)
	}
	return nil
}

func (s *Store) ListAttempts(documentID int64, limit, offset int) ([]models.ChallengeAttempt, error) {
	rows, err := s.db.Query(
		`SELECT id, document_id, challenge_type, score, total, feedback, created_at
		 FROM challenge_attempts
		 WHERE document_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		documentID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.ChallengeAttempt
	for rows.Next() {
		var a models.ChallengeAttempt
		if err := rows.Scan(&a.ID, &a.DocumentID, &a.ChallengeType, &a.Score, &a.Total, &a.Feedback, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// LogLLMCall records token usage and timing for one model invocation.
// Failures here never block the calling operation.
func (s *Store) LogLLMCall(operation, model string, promptTokens, outputTokens int, durationMs int64, callErr error) error {
	var errMsg *string
	if callErr != nil {
		msg := callErr.Error()
		errMsg = &msg
	}
	_, err := s.db.Exec(
		`INSERT INTO llm_call_logs (operation, model_used, prompt_tokens, output_tokens, duration_ms, error_message)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		operation, model, promptTokens, outputTokens, durationMs, errMsg,
	)
	if err != nil {
		return fmt.Errorf("log llm call: %w", err)
	}
	return nil
}
