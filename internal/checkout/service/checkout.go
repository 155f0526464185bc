package service

import (
	"context"
	"fmt"
	"log/slog"

	cartdomain "github.com/abedalshalabi/abo-zaina-sub001/internal/cart/domain"
	"github.com/abedalshalabi/abo-zaina-sub001/internal/checkout/domain"
	orderdomain "github.com/abedalshalabi/abo-zaina-sub001/internal/order/domain"
	orderservice "github.com/abedalshalabi/abo-zaina-sub001/internal/order/service"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/apperrors"
)

// CartAccess is the slice of the cart service checkout needs.
type CartAccess interface {
	GetCart(ctx context.Context, sessionID string) (*cartdomain.Cart, error)
	ClearCart(ctx context.Context, sessionID string) error
}

// OrderCreator persists priced orders.
type OrderCreator interface {
	CreateOrder(ctx context.Context, input orderservice.CreateOrderInput) (*orderdomain.Order, error)
}

// CityCostLookup resolves the configured shipping cost for a delivery city.
// The bool reports whether the city has an active configured cost.
type CityCostLookup interface {
	ActiveCityCost(ctx context.Context, name string) (int64, bool, error)
}

// SubmitInput is the checkout submission: customer identity, delivery
// address, and payment method. Items come from the server-side cart, never
// the client.
type SubmitInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Address       orderdomain.Address
	PaymentMethod string
}

// CheckoutService prices carts and turns them into orders.
type CheckoutService struct {
	cart   CartAccess
	orders OrderCreator
	cities CityCostLookup
	rule   domain.ShippingRule
	logger *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(cart CartAccess, orders OrderCreator, cities CityCostLookup, rule domain.ShippingRule, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		cart:   cart,
		orders: orders,
		cities: cities,
		rule:   rule,
		logger: logger,
	}
}

// Quote prices the session's cart for the given delivery city. An empty city
// falls back to the flat rule.
func (s *CheckoutService) Quote(ctx context.Context, sessionID, city string) (*domain.Quote, error) {
	cart, err := s.cart.GetCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart for quote: %w", err)
	}

	cityCost, err := s.cityCost(ctx, city)
	if err != nil {
		return nil, err
	}

	quote := domain.NewQuote(cart.Subtotal(), cityCost, s.rule)
	return &quote, nil
}

// Submit prices the cart, creates the order, and clears the cart. The cart is
// left intact if anything fails before the order is persisted.
func (s *CheckoutService) Submit(ctx context.Context, sessionID string, input SubmitInput) (*orderdomain.Order, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.cart.GetCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart for checkout: %w", err)
	}

	if cart.IsEmpty() {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	cityCost, err := s.cityCost(ctx, input.Address.City)
	if err != nil {
		return nil, err
	}

	quote := domain.NewQuote(cart.Subtotal(), cityCost, s.rule)

	items := make([]orderservice.CreateOrderItem, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = orderservice.CreateOrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	order, err := s.orders.CreateOrder(ctx, orderservice.CreateOrderInput{
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		Address:       input.Address,
		PaymentMethod: input.PaymentMethod,
		Subtotal:      quote.Subtotal,
		ShippingCost:  quote.ShippingCost,
		Total:         quote.Total,
		Items:         items,
	})
	if err != nil {
		return nil, err
	}

	// The order exists; a failed clear must not undo the submission.
	if err := s.cart.ClearCart(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart after checkout",
			slog.String("session_id", sessionID),
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "checkout completed",
		slog.String("session_id", sessionID),
		slog.String("order_number", order.OrderNumber),
		slog.Int64("total", order.Total),
	)

	return order, nil
}

func (s *CheckoutService) cityCost(ctx context.Context, city string) (*int64, error) {
	if city == "" {
		return nil, nil
	}

	cost, ok, err := s.cities.ActiveCityCost(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("lookup city shipping cost: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &cost, nil
}
