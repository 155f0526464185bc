// Package http exposes the catalog endpoints mounted under /api/v1.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/catalog/repository"
	"github.com/abedalshalabi/abo-zaina-sub001/internal/catalog/service"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/apperrors"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/httputil"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/pagination"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/validator"
)

// ProductHandler handles HTTP requests for product endpoints.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{service: svc, logger: logger}
}

// RegisterRoutes mounts the product endpoints on the given router.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.CreateProduct)

		r.Get("/{id}", h.GetProduct)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})
}

// ProductRequest is the JSON request body for creating or updating a product.
type ProductRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=500"`
	Slug        string `json:"slug" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Price       int64  `json:"price" validate:"gte=0"`
	OldPrice    *int64 `json:"old_price" validate:"omitempty,gte=0"`
	Image       string `json:"image" validate:"max=1000"`
	BrandID     *int64 `json:"brand_id" validate:"omitempty,gt=0"`
	CategoryID  *int64 `json:"category_id" validate:"omitempty,gt=0"`
	Stock       int    `json:"stock" validate:"gte=0"`
	IsActive    bool   `json:"is_active"`
	IsFeatured  bool   `json:"is_featured"`
}

func (req ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		OldPrice:    req.OldPrice,
		Image:       req.Image,
		BrandID:     req.BrandID,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
		IsFeatured:  req.IsFeatured,
	}
}

// ListProducts handles GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	filter := repository.ProductFilter{
		ActiveOnly: true,
		Sort:       r.URL.Query().Get("sort"),
		Page:       params.Page,
		PerPage:    params.PerPage,
	}

	if search := r.URL.Query().Get("search"); search != "" {
		filter.Search = &search
	}
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			httputil.WriteError(w, r, apperrors.InvalidInput("category_id must be a positive integer"), h.logger)
			return
		}
		filter.CategoryID = &id
	}
	if raw := r.URL.Query().Get("brand_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			httputil.WriteError(w, r, apperrors.InvalidInput("brand_id must be a positive integer"), h.logger)
			return
		}
		filter.BrandID = &id
	}
	if raw := r.URL.Query().Get("featured"); raw != "" {
		featured := raw == "true"
		filter.Featured = &featured
	}

	products, total, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pagination.NewResult(products, total, params)})
}

// GetProduct handles GET /api/v1/products/{id}; the path segment may be a
// numeric ID or a slug.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: p})
}

// CreateProduct handles POST /api/v1/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	p, err := h.service.CreateProduct(r.Context(), req.toInput())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: p})
}

// UpdateProduct handles PUT /api/v1/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	var req ProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	p, err := h.service.UpdateProduct(r.Context(), id, req.toInput())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: p})
}

// DeleteProduct handles DELETE /api/v1/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

func parseID(r *http.Request, param string) (int64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInput(param + " must be a positive integer")
	}
	return id, nil
}
