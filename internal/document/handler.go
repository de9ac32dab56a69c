package document

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/smart-assistant/backend/internal/models"
)

// ErrNotFound is returned when a document ID does not exist.
var ErrNotFound = errors.New("document not found")

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Register accepts extracted plain text from the upload collaborator. PDF/TXT
// parsing happens upstream — this endpoint only sees text.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 20<<20) // 20MB limit

	var req models.RegisterDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		req.Name = "untitled"
	}
	if strings.TrimSpace(req.Content) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "content must not be empty"})
		return
	}

	doc, err := h.store.SaveDocument(req.Name, req.Content)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save document"})
		return
	}

	// Don't echo the full text back.
	doc.Content = ""
	writeJSON(w, http.StatusCreated, doc)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := documentID(w, r)
	if !ok {
		return
	}

	doc, err := h.store.GetDocument(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Document not found"})
		return
	}

	doc.Content = ""
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := intQueryParam(query, "limit", 20)
	offset := intQueryParam(query, "offset", 0)

	docs, err := h.store.ListDocuments(limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list documents"})
		return
	}

	if docs == nil {
		docs = []models.Document{}
	}
	writeJSON(w, http.StatusOK, models.DocumentListResponse{Documents: docs, Total: len(docs)})
}

func (h *Handler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	id, ok := documentID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	limit := intQueryParam(query, "limit", 20)
	offset := intQueryParam(query, "offset", 0)

	attempts, err := h.store.ListAttempts(id, limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list attempts"})
		return
	}

	if attempts == nil {
		attempts = []models.ChallengeAttempt{}
	}
	writeJSON(w, http.StatusOK, models.AttemptListResponse{Attempts: attempts, Total: len(attempts)})
}

func documentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid document ID"})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func intQueryParam(query url.Values, key string, defaultVal int) int {
	s := query.Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}
