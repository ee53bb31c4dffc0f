package repository

import (
	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

// DefaultProducts returns the storefront's static catalog
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID:    "1",
			Name:  "Premium Wireless Headphones",
			Price: decimal.RequireFromString("299.99"),
			Image: "/premium-wireless-headphones-black-modern.jpg",
			Description: "Experience crystal-clear audio with our premium wireless headphones featuring " +
				"active noise cancellation and 30-hour battery life.",
			Features: []string{
				"Active Noise Cancellation",
				"30-hour battery life",
				"Premium leather comfort",
				"Hi-Res Audio certified",
				"Quick charge: 5 min = 2 hours playback",
			},
			Stock: 5,
		},
		{
			ID:          "2",
			Name:        "Smart Fitness Watch",
			Price:       decimal.RequireFromString("199.99"),
			Image:       "/smart-fitness-watch-black-sleek-modern.jpg",
			Description: "Track your fitness goals with advanced health monitoring, GPS, and 7-day battery life.",
			Features: []string{
				"Heart rate monitoring",
				"Built-in GPS",
				"7-day battery life",
				"Water resistant to 50m",
				"Sleep tracking",
			},
			Stock: 5,
		},
		{
			ID:          "3",
			Name:        "Portable Bluetooth Speaker",
			Price:       decimal.RequireFromString("89.99"),
			Image:       "/portable-bluetooth-speaker-compact-modern.jpg",
			Description: "Powerful sound in a compact design. Perfect for outdoor adventures with 12-hour battery life.",
			Features: []string{
				"360-degree sound",
				"12-hour battery life",
				"IPX7 waterproof",
				"Voice assistant compatible",
				"Compact portable design",
			},
			Stock: 5,
		},
	}
}

// DefaultShippingOptions returns the selectable delivery methods
func DefaultShippingOptions() []domain.ShippingOption {
	return []domain.ShippingOption{
		{
			ID:          "standard",
			Name:        "Standard Shipping",
			Price:       decimal.RequireFromString("5.99"),
			Description: "5-7 business days",
		},
		{
			ID:          "express",
			Name:        "Express Shipping",
			Price:       decimal.RequireFromString("12.99"),
			Description: "2-3 business days",
		},
	}
}
