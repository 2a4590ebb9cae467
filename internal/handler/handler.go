package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"hanzimap/internal/service"
	"hanzimap/internal/visibility"
)

// GraphHandler handles graph API requests
type GraphHandler struct {
	svc *service.GraphService
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(svc *service.GraphService) *GraphHandler {
	return &GraphHandler{svc: svc}
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// GetGraph returns the loaded document in its data file shape.
// The fingerprint doubles as an ETag.
func (h *GraphHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	snap := h.svc.Snapshot()
	if snap == nil {
		h.writeError(w, "Graph data unavailable", service.ErrNoDocument.Error(), http.StatusServiceUnavailable)
		return
	}

	etag := `"` + snap.Fingerprint + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if etagMatch(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	h.writeJSON(w, snap.Document, http.StatusOK)
}

// etagMatch reports whether an If-None-Match header matches etag. Comparison
// is weak: a W/ prefix on either side is ignored.
func etagMatch(header, etag string) bool {
	header = strings.TrimSpace(header)
	if header == "" {
		return false
	}
	if header == "*" {
		return true
	}
	etag = strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		if strings.TrimPrefix(strings.TrimSpace(candidate), "W/") == etag {
			return true
		}
	}
	return false
}

// GetRoots returns the options of the root selection dropdown
func (h *GraphHandler) GetRoots(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Roots(), http.StatusOK)
}

// GetVisible computes the visible set for ?root=ID&expand=ID&expand=ID...
func (h *GraphHandler) GetVisible(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	visible, err := h.svc.Visible(query.Get("root"), query["expand"])
	switch {
	case errors.Is(err, visibility.ErrEmptyRoot):
		h.writeError(w, "Root required", err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, service.ErrNoDocument):
		h.writeError(w, "Graph data unavailable", err.Error(), http.StatusServiceUnavailable)
		return
	case err != nil:
		log.Printf("Failed to compute visible set: %v", err)
		h.writeError(w, "Failed to compute visible set", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, visible, http.StatusOK)
}

// Reload re-reads the data source
func (h *GraphHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reload(r.Context()); err != nil {
		log.Printf("Failed to reload: %v", err)
		h.writeError(w, "Failed to reload graph data", err.Error(), http.StatusBadGateway)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GraphHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func (h *GraphHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	h.writeJSON(w, ErrorResponse{
		Error:   error,
		Details: details,
	}, statusCode)
}
