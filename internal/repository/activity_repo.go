package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/store"
)

// Only the latest activities are kept.
const activityCap = 10

// ActivityRepository keeps the recent-events feed, newest first.
type ActivityRepository struct {
	mu         sync.RWMutex
	store      store.Store
	activities []models.Activity
}

// NewActivityRepository creates an ActivityRepository.
func NewActivityRepository(s store.Store) *ActivityRepository {
	return &ActivityRepository{store: s}
}

// Load reads the persisted feed.
func (r *ActivityRepository) Load(ctx context.Context) error {
	raw, err := r.store.Get(ctx, store.KeyActivities)
	if err == store.ErrKeyNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	var activities []models.Activity
	if err := json.Unmarshal(raw, &activities); err != nil {
		return fmt.Errorf("corrupt activities document: %w", err)
	}

	r.mu.Lock()
	r.activities = activities
	r.mu.Unlock()
	return nil
}

// Add prepends an event and trims the feed. Persistence failures are
// logged, not retried: the feed is advisory.
func (r *ActivityRepository) Add(activityType, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.activities = append([]models.Activity{{
		ID:        uuid.New().String(),
		Type:      activityType,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}}, r.activities...)
	if len(r.activities) > activityCap {
		r.activities = r.activities[:activityCap]
	}

	raw, err := json.Marshal(r.activities)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal activities")
		return
	}
	if err := r.store.Put(context.Background(), store.KeyActivities, raw); err != nil {
		log.Error().Err(err).Msg("Failed to persist activities")
	}
}

// GetAll returns a copy of the feed, newest first.
func (r *ActivityRepository) GetAll() []models.Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Activity, len(r.activities))
	copy(out, r.activities)
	return out
}

// Clear empties the feed.
func (r *ActivityRepository) Clear(ctx context.Context) error {
	return r.ReplaceAll(ctx, nil)
}

// ReplaceAll swaps the whole feed and persists it. Used by import.
func (r *ActivityRepository) ReplaceAll(ctx context.Context, activities []models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activities = activities
	raw, err := json.Marshal(r.activities)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, store.KeyActivities, raw)
}
