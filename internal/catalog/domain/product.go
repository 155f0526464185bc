// Package domain holds the catalog models: products, categories, brands and
// reviews the storefront pages render.
package domain

import "time"

// Product sort keys accepted by the listing endpoint.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// Product represents a purchasable item. Prices are whole SAR. IDs are
// database-assigned serials.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	OldPrice    *int64    `json:"old_price,omitempty"`
	Image       string    `json:"image"`
	BrandID     *int64    `json:"brand_id,omitempty"`
	CategoryID  *int64    `json:"category_id,omitempty"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"is_active"`
	IsFeatured  bool      `json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidSortKeys returns the accepted product sort keys.
func ValidSortKeys() []string {
	return []string{SortNewest, SortPriceAsc, SortPriceDesc}
}

// IsValidSortKey checks whether the given sort key is accepted.
func IsValidSortKey(key string) bool {
	for _, k := range ValidSortKeys() {
		if k == key {
			return true
		}
	}
	return false
}
