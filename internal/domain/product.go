package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	CategoryID    *string         `json:"categoryId,omitempty"`
	CategoryName  string          `json:"categoryName,omitempty"`
	StockQuantity int             `json:"stockQuantity"`
	IsActive      bool            `json:"isActive"`
	IsFeatured    bool            `json:"isFeatured"`
	CreatedAt     time.Time       `json:"createdAt"`
}
