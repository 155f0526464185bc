package repository

import (
	"context"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/cart/domain"
)

// CartRepository defines the persistence operations for shopper carts.
type CartRepository interface {
	// Get retrieves the cart for a session.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists the cart, overwriting any existing cart for the session.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the cart for a session.
	Delete(ctx context.Context, sessionID string) error
}
