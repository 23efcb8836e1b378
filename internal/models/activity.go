package models

import "time"

// Activity is a recent-events feed entry. Only the latest few are kept.
type Activity struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
