// Package http exposes the settings and shipping endpoints.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/settings/service"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/httputil"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/validator"
)

// SettingsHandler handles HTTP requests for settings endpoints.
type SettingsHandler struct {
	service *service.SettingsService
	logger  *slog.Logger
}

// NewSettingsHandler creates a new settings HTTP handler.
func NewSettingsHandler(svc *service.SettingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{service: svc, logger: logger}
}

// RegisterRoutes mounts the settings endpoints on the given router.
func (h *SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.ListSettings)
		r.Get("/{key}", h.GetSetting)
		r.Put("/{key}", h.UpsertSetting)
	})
}

// UpsertSettingRequest is the JSON request body for writing a setting. The
// value must match the declared type tag.
type UpsertSettingRequest struct {
	Type  string          `json:"type" validate:"required,oneof=text image json_array json_object"`
	Value json.RawMessage `json:"value" validate:"required"`
}

// ListSettings handles GET /api/v1/settings
func (h *SettingsHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.ListSettings(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: settings})
}

// GetSetting handles GET /api/v1/settings/{key}
func (h *SettingsHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	setting, err := h.service.GetSetting(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: setting})
}

// UpsertSetting handles PUT /api/v1/settings/{key}
func (h *SettingsHandler) UpsertSetting(w http.ResponseWriter, r *http.Request) {
	var req UpsertSettingRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	setting, err := h.service.UpsertSetting(r.Context(), chi.URLParam(r, "key"), req.Type, req.Value)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: setting})
}
