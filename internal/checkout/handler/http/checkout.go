// Package http exposes the checkout endpoints mounted under /api/v1/checkout.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	carthttp "github.com/abedalshalabi/abo-zaina-sub001/internal/cart/handler/http"
	"github.com/abedalshalabi/abo-zaina-sub001/internal/checkout/service"
	orderdomain "github.com/abedalshalabi/abo-zaina-sub001/internal/order/domain"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/httputil"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/validator"
)

// CheckoutHandler handles HTTP requests for checkout endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// RegisterRoutes mounts the checkout endpoints on the given router.
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Route("/checkout", func(r chi.Router) {
		r.Use(carthttp.SessionIDFromHeader)

		r.Get("/quote", h.Quote)
		r.Post("/", h.Submit)
	})
}

// --- Request DTOs ---

// SubmitRequest is the JSON request body for checkout submission.
type SubmitRequest struct {
	CustomerName  string `json:"customer_name" validate:"required,min=2,max=200"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"required,min=7,max=20"`
	City          string `json:"city" validate:"required"`
	District      string `json:"district" validate:"required"`
	Street        string `json:"street" validate:"required"`
	Building      string `json:"building" validate:"required"`
	Notes         string `json:"notes" validate:"max=1000"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cod card"`
}

// --- Handlers ---

// Quote handles GET /api/v1/checkout/quote?city=
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	sid, _ := carthttp.SessionIDFromContext(r.Context())
	city := r.URL.Query().Get("city")

	quote, err := h.service.Quote(r.Context(), sid, city)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: quote})
}

// Submit handles POST /api/v1/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sid, _ := carthttp.SessionIDFromContext(r.Context())

	var req SubmitRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := service.SubmitInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Address: orderdomain.Address{
			City:     req.City,
			District: req.District,
			Street:   req.Street,
			Building: req.Building,
			Notes:    req.Notes,
		},
		PaymentMethod: req.PaymentMethod,
	}

	order, err := h.service.Submit(r.Context(), sid, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}
