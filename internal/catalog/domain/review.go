package domain

import "time"

// Review is a customer review of a product. Only approved reviews are shown
// on the storefront.
type Review struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	IsApproved   bool      `json:"is_approved"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReviewSummary aggregates the approved reviews of a product.
type ReviewSummary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}
