package repository

import (
	"context"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/order/domain"
)

// OrderFilter narrows the admin order listing.
type OrderFilter struct {
	Status  *string
	Phone   *string
	Page    int
	PerPage int
}

// OrderRepository defines the persistence operations for orders.
type OrderRepository interface {
	// Create inserts the order and its items atomically.
	Create(ctx context.Context, o *domain.Order) error

	// GetByID retrieves an order with its items.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// GetByOrderNumber retrieves an order with its items by order number.
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)

	// List returns orders matching the filter with the total count.
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, int, error)

	// UpdateStatus changes the order status.
	UpdateStatus(ctx context.Context, id, status string) error

	// UpdatePaymentStatus changes the payment status.
	UpdatePaymentStatus(ctx context.Context, id, status string) error
}
