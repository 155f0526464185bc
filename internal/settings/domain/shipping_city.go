package domain

import "time"

// ShippingCity is one row of the per-city shipping cost table. Cost is in
// whole SAR and overrides the flat shipping rule at checkout when the city is
// active.
type ShippingCity struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Cost      int64     `json:"cost"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
