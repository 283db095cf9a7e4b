package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"labsite/internal/model"
	"labsite/internal/repository"
	"labsite/internal/service"
)

// SessionHandler handles the PRG session endpoints.
type SessionHandler struct {
	sessionSvc *service.SessionService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessionSvc *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// List handles GET /api/prg-sessions. The response maps academic years
// to date-ordered session summaries; an academicYear query param
// pre-filters the store but keeps the grouped shape.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	academicYear := r.URL.Query().Get("academicYear")

	grouped, err := h.sessionSvc.GroupedByYear(r.Context(), academicYear)
	if err != nil {
		log.Printf("error fetching prg sessions: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch PRG sessions")
		return
	}

	writeJSON(w, http.StatusOK, grouped)
}

// Get handles GET /api/prg-sessions/{id}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	session, err := h.sessionSvc.GetByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err, "Failed to fetch PRG session")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Create handles POST /api/prg-sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.SessionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionSvc.Create(r.Context(), &input)
	if err != nil {
		h.writeStoreError(w, err, "Failed to create PRG session")
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// Update handles PUT /api/prg-sessions/{id}. The body replaces every
// mutable field and is re-validated with the same rules as Create.
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var input model.SessionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionSvc.Update(r.Context(), id, &input)
	if err != nil {
		h.writeStoreError(w, err, "Failed to update PRG session")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Delete handles DELETE /api/prg-sessions/{id}. Hard delete.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.sessionSvc.Delete(r.Context(), id); err != nil {
		h.writeStoreError(w, err, "Failed to delete PRG session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "PRG session deleted successfully"})
}

// writeStoreError maps store failures onto the HTTP error taxonomy.
// Anything unclassified becomes an opaque 500 with the cause logged.
func (h *SessionHandler) writeStoreError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "Validation failed",
			"details": strings.Join(validationErr.Details, "; "),
		})
	case errors.Is(err, repository.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "Invalid session ID")
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "PRG session not found")
	default:
		log.Printf("prg session store error: %v", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
