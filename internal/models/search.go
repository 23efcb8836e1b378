package models

import "time"

// SearchHistoryEntry records one distinct query the user has searched.
// Entries are kept in most-recently-used order.
type SearchHistoryEntry struct {
	Query        string    `json:"query"`
	Count        int       `json:"count"`
	ResultsCount int       `json:"resultsCount"`
	LastSearched time.Time `json:"lastSearched"`
}

// SavedSearch is a named query plus criteria the user can re-run.
type SavedSearch struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Query      string     `json:"query"`
	Criteria   Criteria   `json:"criteria"`
	UsageCount int        `json:"usageCount"`
	LastUsed   *time.Time `json:"lastUsed,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}
