package models

import "time"

// Priority enumerates favorite priorities.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PricePoint is a single observation in a favorite's price history.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// Favorite is a product the user watches for price drops. PriceHistory is
// append-only: one entry is added whenever CurrentPrice changes.
type Favorite struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	CurrentPrice float64      `json:"currentPrice"`
	TargetPrice  *float64     `json:"targetPrice,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
	Priority     Priority     `json:"priority"`
	Category     string       `json:"category,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	Link         string       `json:"link,omitempty"`
	PriceHistory []PricePoint `json:"priceHistory"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// FavoritePatch carries a partial update for a favorite.
type FavoritePatch struct {
	Name         *string   `json:"name,omitempty"`
	CurrentPrice *float64  `json:"currentPrice,omitempty"`
	TargetPrice  *float64  `json:"targetPrice,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
	Priority     *Priority `json:"priority,omitempty"`
	Category     *string   `json:"category,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	Link         *string   `json:"link,omitempty"`
}
