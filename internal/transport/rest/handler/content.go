package handler

import (
	"net/http"

	"labsite/internal/content"
)

// ContentHandler serves the read-only public site data.
type ContentHandler struct {
	library *content.Library
}

// NewContentHandler creates a new content handler.
func NewContentHandler(library *content.Library) *ContentHandler {
	return &ContentHandler{library: library}
}

// Videos handles GET /api/videos.
func (h *ContentHandler) Videos(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"videos": h.library.Videos})
}

// Publications handles GET /api/publications.
func (h *ContentHandler) Publications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"publications": h.library.Publications})
}

// Students handles GET /api/students.
func (h *ContentHandler) Students(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"students": h.library.Students})
}
