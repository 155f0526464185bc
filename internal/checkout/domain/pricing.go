// Package domain holds the checkout pricing rules: how a cart subtotal and a
// delivery city turn into a shipping cost and final total.
package domain

// Shipping source values reported in quotes.
const (
	ShippingSourceCity = "city"
	ShippingSourceFlat = "flat"
)

// ShippingRule is the flat fallback applied when the delivery city has no
// configured cost: orders above the threshold ship free, the rest pay the
// flat fee. Amounts are whole SAR.
type ShippingRule struct {
	FreeThreshold int64
	FlatFee       int64
}

// Quote is the priced view of a cart before submission.
type Quote struct {
	Subtotal       int64  `json:"subtotal"`
	ShippingCost   int64  `json:"shipping_cost"`
	Total          int64  `json:"total"`
	ShippingSource string `json:"shipping_source"`
}

// FlatShippingCost applies the threshold rule to a subtotal.
func (r ShippingRule) FlatShippingCost(subtotal int64) int64 {
	if subtotal > r.FreeThreshold {
		return 0
	}
	return r.FlatFee
}

// NewQuote prices a subtotal. A configured per-city cost is authoritative;
// the flat rule applies only when cityCost is nil.
func NewQuote(subtotal int64, cityCost *int64, rule ShippingRule) Quote {
	if cityCost != nil {
		return Quote{
			Subtotal:       subtotal,
			ShippingCost:   *cityCost,
			Total:          subtotal + *cityCost,
			ShippingSource: ShippingSourceCity,
		}
	}

	cost := rule.FlatShippingCost(subtotal)
	return Quote{
		Subtotal:       subtotal,
		ShippingCost:   cost,
		Total:          subtotal + cost,
		ShippingSource: ShippingSourceFlat,
	}
}
