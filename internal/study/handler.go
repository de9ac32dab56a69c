package study

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/smart-assistant/backend/internal/document"
	"github.com/smart-assistant/backend/internal/llm"
	"github.com/smart-assistant/backend/internal/models"
)

type Handler struct {
	service *Service
	docs    *document.Store
}

func NewHandler(service *Service, docs *document.Store) *Handler {
	return &Handler{service: service, docs: docs}
}

func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.loadDocument(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Summarize(r.Context(), doc.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SummaryResponse{
		DocumentID: doc.ID,
		Summary:    summary,
	})
}

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.loadDocument(w, r)
	if !ok {
		return
	}

	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "question is required"})
		return
	}

	result, err := h.service.Answer(r.Context(), doc.Content, req.Question)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.QAResponse{
		DocumentID:    doc.ID,
		Answer:        result.Answer,
		Justification: result.Justification,
	})
}

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

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrEmptyDocument) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Document has no text content"})
		return
	}

	var provErr *llm.ProviderError
	if errors.As(err, &provErr) {
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Model provider error: " + provErr.Err.Error()})
		return
	}

	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
