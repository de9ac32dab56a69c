package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "assistant_user")
	password := getEnv("DB_PASSWORD", "assistant_password")
	dbname := getEnv("DB_NAME", "smart_assistant")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS documents (
		id          BIGSERIAL PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		content     TEXT NOT NULL,
		char_count  INT NOT NULL DEFAULT 0,
		created_at  TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_documents_created ON documents(created_at DESC);

	CREATE TABLE IF NOT EXISTS challenge_attempts (
		id             BIGSERIAL PRIMARY KEY,
		document_id    BIGINT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		challenge_type VARCHAR(20) NOT NULL,
		score          INT,
		total          INT,
		feedback       TEXT,
		created_at     TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_attempts_document ON challenge_attempts(document_id, created_at DESC);

	CREATE TABLE IF NOT EXISTS llm_call_logs (
		id            BIGSERIAL PRIMARY KEY,
		operation     VARCHAR(50) NOT NULL,
		model_used    VARCHAR(100),
		prompt_tokens INT,
		output_tokens INT,
		duration_ms   INT,
		error_message TEXT,
		created_at    TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_llm_logs_operation ON llm_call_logs(operation, created_at DESC);
	`

	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
