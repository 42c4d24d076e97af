package domain

import "github.com/shopspring/decimal"

// CartLine is one product entry in a shopper's in-progress cart. The unit
// price is captured when the line is created and is not refreshed on later
// catalog changes.
type CartLine struct {
	ProductID    string          `json:"productId"`
	Title        string          `json:"title"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	CategoryName string          `json:"categoryName,omitempty"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Quantity     int             `json:"quantity"`
}

// Subtotal is unit price times quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartSummary is derived from the current cart contents on every read; it is
// never stored.
type CartSummary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}
