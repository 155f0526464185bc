// Package domain holds the order model shared by checkout and the admin
// back-office.
package domain

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Order status constants.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCanceled   = "canceled"
)

// Payment status constants.
const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// Payment method constants.
const (
	PaymentMethodCOD  = "cod"
	PaymentMethodCard = "card"
)

// Order represents a customer order. Amounts are whole SAR.
type Order struct {
	ID            string      `json:"id"`
	OrderNumber   string      `json:"order_number"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	CustomerPhone string      `json:"customer_phone"`
	Address       Address     `json:"address"`
	PaymentMethod string      `json:"payment_method"`
	Subtotal      int64       `json:"subtotal"`
	ShippingCost  int64       `json:"shipping_cost"`
	Total         int64       `json:"total"`
	OrderStatus   string      `json:"order_status"`
	PaymentStatus string      `json:"payment_status"`
	Items         []OrderItem `json:"items"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Address is the delivery address captured at checkout.
type Address struct {
	City     string `json:"city"`
	District string `json:"district"`
	Street   string `json:"street"`
	Building string `json:"building"`
	Notes    string `json:"notes,omitempty"`
}

// OrderItem is one purchased line, snapshotted from the cart at submission.
type OrderItem struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

// NewOrderNumber builds a unique human-readable order number of the form
// ORD-<yyyymmdd>-<6 hex>.
func NewOrderNumber(now time.Time) string {
	suffix := make([]byte, 3)
	_, _ = rand.Read(suffix)
	return "ORD-" + now.UTC().Format("20060102") + "-" + hex.EncodeToString(suffix)
}

// ValidStatuses returns all valid order statuses.
func ValidStatuses() []string {
	return []string{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCanceled,
	}
}

// IsValidStatus checks if a status string is valid.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// AllowedTransitions defines which order status transitions are valid.
func AllowedTransitions() map[string][]string {
	return map[string][]string{
		OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCanceled},
		OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCanceled},
		OrderStatusProcessing: {OrderStatusShipped, OrderStatusCanceled},
		OrderStatusShipped:    {OrderStatusDelivered},
		OrderStatusDelivered:  {},
		OrderStatusCanceled:   {},
	}
}

// CanTransitionTo checks if the order can transition to the target status.
func (o *Order) CanTransitionTo(target string) bool {
	allowed, ok := AllowedTransitions()[o.OrderStatus]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}

// ValidPaymentStatuses returns all valid payment statuses.
func ValidPaymentStatuses() []string {
	return []string{PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusRefunded}
}

// IsValidPaymentStatus checks if a payment status string is valid.
func IsValidPaymentStatus(status string) bool {
	for _, s := range ValidPaymentStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// AllowedPaymentTransitions defines which payment status transitions are valid.
func AllowedPaymentTransitions() map[string][]string {
	return map[string][]string{
		PaymentStatusUnpaid:   {PaymentStatusPaid},
		PaymentStatusPaid:     {PaymentStatusRefunded},
		PaymentStatusRefunded: {},
	}
}

// CanTransitionPaymentTo checks if the payment status can move to target.
func (o *Order) CanTransitionPaymentTo(target string) bool {
	allowed, ok := AllowedPaymentTransitions()[o.PaymentStatus]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}

// IsValidPaymentMethod checks if a payment method string is valid.
func IsValidPaymentMethod(method string) bool {
	return method == PaymentMethodCOD || method == PaymentMethodCard
}
