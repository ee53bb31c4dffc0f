package domain

import "github.com/shopspring/decimal"

// Product represents a product in the catalog
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Features    []string        `json:"features"`
	Stock       int             `json:"stock"`
}

// ShippingOption represents a selectable delivery method
type ShippingOption struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}
