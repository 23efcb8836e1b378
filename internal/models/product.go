package models

import "time"

// Product represents a tracked product candidate scraped from a listing.
// RealPrice and Score are derived fields: they are recomputed whenever
// price, shipping cost, rating or orders change and are never accepted
// from the outside.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	ShippingCost float64   `json:"shippingCost"`
	Rating       float64   `json:"rating"`
	Orders       int       `json:"orders"`
	DeliveryDays *int      `json:"deliveryDays,omitempty"`
	Category     string    `json:"category,omitempty"`
	ShippingFrom string    `json:"shippingFrom,omitempty"`
	Link         string    `json:"link,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	RealPrice    float64   `json:"realPrice"`
	Score        int       `json:"score"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProductPatch carries a partial update. Nil fields are left untouched.
type ProductPatch struct {
	Name         *string  `json:"name,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	ShippingCost *float64 `json:"shippingCost,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	Orders       *int     `json:"orders,omitempty"`
	DeliveryDays *int     `json:"deliveryDays,omitempty"`
	Category     *string  `json:"category,omitempty"`
	ShippingFrom *string  `json:"shippingFrom,omitempty"`
	Link         *string  `json:"link,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}
