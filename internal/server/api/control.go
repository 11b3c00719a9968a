package api

import (
	"errors"
	"net/http"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/control"
)

// Controls is the engine surface the API drives.
type Controls interface {
	Status() app.Status
	SetMode(m control.Mode) error
	SetColor(name string) error
	ClearOverlay()
	SetEnabled(enabled bool)
	Settings() map[string]string
	UpdateSettings(values map[string]string) (map[string]string, error)
}

// ControlHandler serves the status and control routes.
type ControlHandler struct {
	controls Controls
}

// NewControlHandler creates a ControlHandler.
func NewControlHandler(c Controls) *ControlHandler {
	return &ControlHandler{controls: c}
}

// Register mounts the control routes on mux.
func (h *ControlHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/status", h.status)
	mux.HandleFunc("/api/mode", h.mode)
	mux.HandleFunc("/api/color", h.color)
	mux.HandleFunc("/api/enabled", h.enabled)
	mux.HandleFunc("/api/overlay/clear", h.clearOverlay)
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type modeResponse struct {
	Mode control.Mode `json:"mode"`
}

type colorRequest struct {
	Color string `json:"color"`
}

type colorResponse struct {
	Color string `json:"color"`
}

type enabledRequest struct {
	Enabled *bool `json:"enabled"`
}

type enabledResponse struct {
	Enabled bool `json:"enabled"`
}

// status handles GET /api/status.
func (h *ControlHandler) status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, h.controls.Status())
}

// mode handles GET and PUT /api/mode.
func (h *ControlHandler) mode(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, modeResponse{Mode: h.controls.Status().Mode})
	case http.MethodPut:
		var req modeRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		m, err := control.ParseMode(req.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := h.controls.SetMode(m); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to set mode")
			return
		}
		writeJSON(w, http.StatusOK, modeResponse{Mode: m})
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// color handles GET and PUT /api/color.
func (h *ControlHandler) color(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, colorResponse{Color: h.controls.Status().Color})
	case http.MethodPut:
		var req colorRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if err := h.controls.SetColor(req.Color); err != nil {
			if errors.Is(err, control.ErrUnknownColor) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to set color")
			return
		}
		writeJSON(w, http.StatusOK, colorResponse{Color: req.Color})
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// enabled handles GET and PUT /api/enabled.
func (h *ControlHandler) enabled(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, enabledResponse{Enabled: h.controls.Status().Enabled})
	case http.MethodPut:
		var req enabledRequest
		if err := decodeJSON(r, &req); err != nil || req.Enabled == nil {
			writeError(w, http.StatusBadRequest, "Body must be {\"enabled\": bool}")
			return
		}
		h.controls.SetEnabled(*req.Enabled)
		writeJSON(w, http.StatusOK, enabledResponse{Enabled: *req.Enabled})
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// clearOverlay handles POST /api/overlay/clear.
func (h *ControlHandler) clearOverlay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	h.controls.ClearOverlay()
	w.WriteHeader(http.StatusNoContent)
}
