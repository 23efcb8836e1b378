package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned when a collection key has never been written.
var ErrKeyNotFound = errors.New("store: key not found")

// Store is a key-value document store. Each collection is persisted as a
// single JSON document under its own key; every mutating repository
// operation writes the full document back.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Collection keys used by the repositories.
const (
	KeyProducts      = "tracker:products"
	KeyFavorites     = "tracker:favorites"
	KeyProfiles      = "tracker:profiles"
	KeySettings      = "tracker:settings"
	KeyActivities    = "tracker:activities"
	KeyReminders     = "tracker:reminders"
	KeySearchHistory = "tracker:search_history"
	KeySavedSearches = "tracker:saved_searches"
)
