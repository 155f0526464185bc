package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/settings/service"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/apperrors"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/httputil"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/validator"
)

// ShippingHandler handles HTTP requests for shipping city endpoints.
type ShippingHandler struct {
	service *service.ShippingService
	logger  *slog.Logger
}

// NewShippingHandler creates a new shipping HTTP handler.
func NewShippingHandler(svc *service.ShippingService, logger *slog.Logger) *ShippingHandler {
	return &ShippingHandler{service: svc, logger: logger}
}

// RegisterRoutes mounts the shipping city endpoints on the given router.
func (h *ShippingHandler) RegisterRoutes(r chi.Router) {
	r.Route("/shipping/cities", func(r chi.Router) {
		r.Get("/", h.ListCities)
		r.Post("/", h.CreateCity)
		r.Put("/{id}", h.UpdateCity)
		r.Delete("/{id}", h.DeleteCity)
	})
}

// ShippingCityRequest is the JSON request body for creating or updating a
// shipping city.
type ShippingCityRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Cost     int64  `json:"cost" validate:"gte=0"`
	IsActive bool   `json:"is_active"`
}

// ListCities handles GET /api/v1/shipping/cities. The storefront sees active
// cities only; pass all=true for the admin view.
func (h *ShippingHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") != "true"

	cities, err := h.service.ListCities(r.Context(), activeOnly)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cities})
}

// CreateCity handles POST /api/v1/shipping/cities
func (h *ShippingHandler) CreateCity(w http.ResponseWriter, r *http.Request) {
	var req ShippingCityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	c, err := h.service.CreateCity(r.Context(), service.ShippingCityInput{
		Name:     req.Name,
		Cost:     req.Cost,
		IsActive: req.IsActive,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: c})
}

// UpdateCity handles PUT /api/v1/shipping/cities/{id}
func (h *ShippingHandler) UpdateCity(w http.ResponseWriter, r *http.Request) {
	id, err := parseCityID(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	var req ShippingCityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	c, err := h.service.UpdateCity(r.Context(), id, service.ShippingCityInput{
		Name:     req.Name,
		Cost:     req.Cost,
		IsActive: req.IsActive,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: c})
}

// DeleteCity handles DELETE /api/v1/shipping/cities/{id}
func (h *ShippingHandler) DeleteCity(w http.ResponseWriter, r *http.Request) {
	id, err := parseCityID(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := h.service.DeleteCity(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

func parseCityID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInput("id must be a positive integer")
	}
	return id, nil
}
