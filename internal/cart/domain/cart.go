// Package domain holds the cart model: the list of items a shopper intends
// to buy and the derived totals the checkout flow consumes.
package domain

import "time"

// Cart is the authoritative in-memory selection for one shopper session.
// Items are unique by ProductID; the total is never stored, always derived.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// CartItem is one product line. Price is the unit price captured at the time
// the item was added, in whole SAR.
type CartItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image,omitempty"`
	Brand     string `json:"brand,omitempty"`
}

// LineTotal returns price * quantity for this line.
func (i *CartItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Subtotal is the sum of price * quantity over all items.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

// ItemCount returns the total unit count across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart holds no items. An empty cart blocks
// checkout.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItemIndex returns the index of the line with the given product ID, or
// -1 if the product is not in the cart.
func (c *Cart) FindItemIndex(productID int64) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
