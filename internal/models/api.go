package models

// ErrorResponse is the JSON error envelope for every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ── Documents ───────────────────────────────────────────

type RegisterDocumentRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type DocumentListResponse struct {
	Documents []Document `json:"documents"`
	Total     int        `json:"total"`
}

// ── Study (summary / Q&A) ───────────────────────────────

type SummaryResponse struct {
	DocumentID int64  `json:"document_id"`
	Summary    string `json:"summary"`
}

type AskRequest struct {
	Question string `json:"question"`
}

type QAResponse struct {
	DocumentID    int64  `json:"document_id"`
	Answer        string `json:"answer"`
	Justification string `json:"justification,omitempty"`
}

// ── Challenge ───────────────────────────────────────────

type GenerateChallengeRequest struct {
	Count int `json:"count"`
}

// ChallengeQuestion is an objective question as served to the client. The
// correct option is withheld — grading happens server-side against the
// session-held quiz.
type ChallengeQuestion struct {
	Index    int      `json:"index"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type ObjectiveChallengeResponse struct {
	DocumentID int64               `json:"document_id"`
	Questions  []ChallengeQuestion `json:"questions"`
}

type SubjectiveChallengeResponse struct {
	DocumentID int64    `json:"document_id"`
	Questions  []string `json:"questions"`
}

type ScoreObjectiveRequest struct {
	// Answers maps question index to the chosen option text, in serve order.
	Answers []string `json:"answers"`
}

type QuestionResult struct {
	Index         int    `json:"index"`
	Chosen        string `json:"chosen"`
	Correct       bool   `json:"correct"`
	CorrectOption string `json:"correct_option"`
}

type ScoreObjectiveResponse struct {
	DocumentID int64            `json:"document_id"`
	Score      int              `json:"score"`
	Total      int              `json:"total"`
	Results    []QuestionResult `json:"results"`
}

type GradeSubjectiveRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type GradeSubjectiveResponse struct {
	DocumentID int64  `json:"document_id"`
	Question   string `json:"question"`
	Feedback   string `json:"feedback"`
}

type AttemptListResponse struct {
	Attempts []ChallengeAttempt `json:"attempts"`
	Total    int                `json:"total"`
}
