package challenge

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/samber/lo"
	"github.com/smart-assistant/backend/internal/document"
	"github.com/smart-assistant/backend/internal/llm"
	"github.com/smart-assistant/backend/internal/models"
)

const sessionName = "challenge-session"

type Handler struct {
	service *Service
	docs    *document.Store
	cookies *sessions.CookieStore
	active  *QuizSessions
}

func NewHandler(service *Service, docs *document.Store, sessionKey string) *Handler {
	return &Handler{
		service: service,
		docs:    docs,
		cookies: sessions.NewCookieStore([]byte(sessionKey)),
		active:  NewQuizSessions(),
	}
}

// GenerateObjective builds a fresh MCQ quiz for the document and parks it in
// the caller's session. The response withholds the answer key.
func (h *Handler) GenerateObjective(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.loadDocument(w, r)
	if !ok {
		return
	}

	req, ok := decodeChallengeRequest(w, r)
	if !ok {
		return
	}

	quiz, err := h.service.GenerateObjective(r.Context(), doc.Content, req.Count)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	key, err := h.sessionQuizKey(w, r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to persist session"})
		return
	}
	h.active.Put(key, &activeQuiz{
		DocumentID: doc.ID,
		Questions:  quiz,
		CreatedAt:  time.Now(),
	})

	questions := lo.Map(quiz, func(q ObjectiveQuestion, i int) models.ChallengeQuestion {
		return models.ChallengeQuestion{
			Index:    i,
			Question: q.Question,
			Options:  q.Options,
		}
	})

	writeJSON(w, http.StatusCreated, models.ObjectiveChallengeResponse{
		DocumentID: doc.ID,
		Questions:  questions,
	})
}

// ScoreObjective grades the caller's answers against the session-held quiz.
func (h *Handler) ScoreObjective(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.loadDocument(w, r)
	if !ok {
		return
	}

	var req models.ScoreObjectiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	key, err := h.sessionQuizKey(w, r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to read session"})
		return
	}

	quiz, found := h.active.Get(key)
	if !found || quiz.DocumentID != doc.ID {
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "No active quiz for this document — generate one first"})
		return
	}

	if len(req.Answers) != len(quiz.Questions) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error: "Expected " + strconv.Itoa(len(quiz.Questions)) + " answers, got " + strconv.Itoa(len(req.Answers)),
		})
		return
	}

	score := 0
	results := make([]models.QuestionResult, len(quiz.Questions))
	for i, q := range quiz.Questions {
		correct := ScoreObjective(req.Answers[i], q.CorrectOption)
		if correct {
			score++
		}
		results[i] = models.QuestionResult{
			Index:         i,
			Chosen:        req.Answers[i],
			Correct:       correct,
			CorrectOption: q.CorrectOption,
		}
	}

	if err := h.docs.RecordObjectiveAttempt(doc.ID, score, len(quiz.Questions)); err != nil {
		log.Printf("WARN: failed to record objective attempt: %v", err)
	}

	writeJSON(w, http.StatusOK, models.ScoreObjectiveResponse{
		DocumentID: doc.ID,
		Score:      score,
		Total:      len(quiz.Questions),
		Results:    results,
	})
}

// GenerateSubjective returns descriptive questions. No answer key exists, so
// nothing is parked in the session — grading takes the literal question back.
func (h *Handler) GenerateSubjective(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.loadDocument(w, r)
	if !ok {
		return
	}

	req, ok := decodeChallengeRequest(w, r)
	if !ok {
		return
	}

	questions, err := h.service.GenerateSubjective(r.Context(), doc.Content, req.Count)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, models.SubjectiveChallengeResponse{
		DocumentID: doc.ID,
		Questions:  questions,
	})
}

// GradeSubjective has the model grade one free-text answer. An empty answer is
// allowed — the prompt labels it as not provided.
func (h *Handler) GradeSubjective(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.loadDocument(w, r)
	if !ok {
		return
	}

	var req models.GradeSubjectiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "question is required"})
		return
	}

	feedback, err := h.service.ScoreSubjective(r.Context(), req.Question, req.Answer)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.docs.RecordSubjectiveAttempt(doc.ID, feedback); err != nil {
		log.Printf("WARN: failed to record subjective attempt: %v", err)
	}

	writeJSON(w, http.StatusOK, models.GradeSubjectiveResponse{
		DocumentID: doc.ID,
		Question:   req.Question,
		Feedback:   feedback,
	})
}

// ── helpers ─────────────────────────────────────────────

func (h *Handler) loadDocument(w http.ResponseWriter, r *http.Request) (*models.Document, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid document ID"})
		return nil, false
	}

	doc, err := h.docs.GetDocument(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Document not found"})
		return nil, false
	}
	return doc, true
}

// sessionQuizKey returns the caller's stable quiz key, minting one on first
// use and saving it in the session cookie.
func (h *Handler) sessionQuizKey(w http.ResponseWriter, r *http.Request) (string, error) {
	session, err := h.cookies.Get(r, sessionName)
	if err != nil {
		// A stale or tampered cookie decodes to a fresh session.
		session, _ = h.cookies.New(r, sessionName)
	}

	if key, ok := session.Values["quiz_key"].(string); ok && key != "" {
		return key, nil
	}

	key := newSessionKey()
	session.Values["quiz_key"] = key
	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return key, nil
}

// decodeChallengeRequest tolerates an empty body — count falls back to the
// task default.
func decodeChallengeRequest(w http.ResponseWriter, r *http.Request) (models.GenerateChallengeRequest, bool) {
	var req models.GenerateChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return req, false
	}
	if req.Count < 0 || req.Count > 20 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "count must be between 0 and 20"})
		return req, false
	}
	return req, true
}

// writeServiceError maps engine errors onto HTTP statuses. Provider failures
// and malformed model output are distinct, user-visible conditions.
func writeServiceError(w http.ResponseWriter, err error) {
	var provErr *llm.ProviderError
	if errors.As(err, &provErr) {
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Model provider error: " + provErr.Err.Error()})
		return
	}

	var malformed *MalformedOutputError
	if errors.As(err, &malformed) {
		writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{Error: "Model returned unusable output — retry the request"})
		return
	}

	var invalid *ValidationError
	if errors.As(err, &invalid) {
		writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{Error: "Generated quiz failed validation: " + invalid.Error()})
		return
	}

	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
