package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderData is the delivery form filled in at checkout. It is never persisted.
type OrderData struct {
	FullName       string `json:"full_name"`
	PhoneNumber    string `json:"phone_number"`
	City           string `json:"city"`
	Address        string `json:"address"`
	Notes          string `json:"notes,omitempty"`
	ShippingOption string `json:"shipping_option"`
}

// OrderItem is the per-line record of a placed order
type OrderItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Order is the confirmation of a successful checkout
type Order struct {
	ID string `json:"id"`
	OrderData
	Items        []OrderItem     `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
}
