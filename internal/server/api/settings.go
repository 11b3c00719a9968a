package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/mudra/internal/config"
)

// SettingsHandler serves the engine settings.
type SettingsHandler struct {
	controls Controls
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(c Controls) *SettingsHandler {
	return &SettingsHandler{controls: c}
}

type settingsResponse struct {
	Settings map[string]string `json:"settings"`
}

type settingResponse struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Tunable bool   `json:"tunable"`
}

// ServeHTTP routes /api/settings and /api/settings/{key}.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/api/settings")
	key = strings.TrimPrefix(key, "/")

	if key == "" {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, settingsResponse{Settings: h.controls.Settings()})
		case http.MethodPut, http.MethodPatch:
			h.update(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	h.get(w, key)
}

// get handles GET /api/settings/{key}.
func (h *SettingsHandler) get(w http.ResponseWriter, key string) {
	value, ok := h.controls.Settings()[key]
	if !ok {
		writeError(w, http.StatusNotFound, "Setting not found")
		return
	}
	writeJSON(w, http.StatusOK, settingResponse{Key: key, Value: value, Tunable: config.Tunable(key)})
}

// update handles PUT /api/settings with a flat key/value object.
func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := decodeJSON(r, &values); err != nil {
		writeError(w, http.StatusBadRequest, "Body must be an object of string values")
		return
	}
	if len(values) == 0 {
		writeError(w, http.StatusBadRequest, "No settings given")
		return
	}

	updated, err := h.controls.UpdateSettings(values)
	if err != nil {
		if errors.Is(err, config.ErrInvalid) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}
	writeJSON(w, http.StatusOK, settingsResponse{Settings: updated})
}
