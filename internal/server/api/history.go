package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ayusman/mudra/internal/store"
)

// History limits.
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// HistoryHandler serves the persisted input event history.
type HistoryHandler struct {
	events *store.EventRepository
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(events *store.EventRepository) *HistoryHandler {
	return &HistoryHandler{events: events}
}

type historyResponse struct {
	Events []store.EventRecord `json:"events"`
}

type pruneResponse struct {
	Deleted int64 `json:"deleted"`
}

// ServeHTTP handles GET and DELETE /api/events/history.
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodDelete:
		h.prune(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// list returns the newest events, limited by ?limit=N.
func (h *HistoryHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := DefaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, MaxHistoryLimit)
	}

	events, err := h.events.Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load event history")
		return
	}
	if events == nil {
		events = []store.EventRecord{}
	}
	writeJSON(w, http.StatusOK, historyResponse{Events: events})
}

// prune deletes events older than ?before=<RFC3339>.
func (h *HistoryHandler) prune(w http.ResponseWriter, r *http.Request) {
	before, err := time.Parse(time.RFC3339, r.URL.Query().Get("before"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "before must be an RFC3339 timestamp")
		return
	}

	n, err := h.events.DeleteBefore(before)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to prune event history")
		return
	}
	writeJSON(w, http.StatusOK, pruneResponse{Deleted: n})
}
