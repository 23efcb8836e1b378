package models

import "time"

// Criteria is a set of independent, AND-combined product predicates.
// A nil field means "no constraint". Price bounds apply to the real price
// (price plus shipping).
type Criteria struct {
	MinPrice        *float64 `json:"minPrice,omitempty"`
	MaxPrice        *float64 `json:"maxPrice,omitempty"`
	MinRating       *float64 `json:"minRating,omitempty"`
	MinOrders       *int     `json:"minOrders,omitempty"`
	Category        *string  `json:"category,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	FreeShipping    *bool    `json:"freeShipping,omitempty"`
	MaxDeliveryDays *int     `json:"maxDeliveryDays,omitempty"`
	ShippingFrom    *string  `json:"shippingFrom,omitempty"`
	MinScore        *int     `json:"minScore,omitempty"`
	TopSeller       *bool    `json:"topSeller,omitempty"`
	ChoiceProduct   *bool    `json:"choiceProduct,omitempty"`
}

// Profile is a saved set of filter criteria representing a recurring
// search intent.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Criteria  Criteria  `json:"criteria"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProfilePatch carries a partial update for a profile.
type ProfilePatch struct {
	Name     *string   `json:"name,omitempty"`
	Criteria *Criteria `json:"criteria,omitempty"`
	Notes    *string   `json:"notes,omitempty"`
}
