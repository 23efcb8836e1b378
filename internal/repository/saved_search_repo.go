package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/store"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

// SavedSearchRepository holds named searches the user can re-run.
type SavedSearchRepository struct {
	mu       sync.RWMutex
	store    store.Store
	searches []models.SavedSearch
}

// NewSavedSearchRepository creates a SavedSearchRepository.
func NewSavedSearchRepository(s store.Store) *SavedSearchRepository {
	return &SavedSearchRepository{store: s}
}

// Load reads the persisted collection into memory.
func (r *SavedSearchRepository) Load(ctx context.Context) error {
	raw, err := r.store.Get(ctx, store.KeySavedSearches)
	if err == store.ErrKeyNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	var searches []models.SavedSearch
	if err := json.Unmarshal(raw, &searches); err != nil {
		return fmt.Errorf("corrupt saved searches document: %w", err)
	}

	r.mu.Lock()
	r.searches = searches
	r.mu.Unlock()
	return nil
}

// Add assigns an identifier and creation timestamp and persists.
func (r *SavedSearchRepository) Add(ctx context.Context, s models.SavedSearch) (models.SavedSearch, error) {
	s.ID = uuid.New().String()
	s.CreatedAt = time.Now().UTC()
	s.UsageCount = 0

	r.mu.Lock()
	defer r.mu.Unlock()
	r.searches = append(r.searches, s)
	if err := r.commit(ctx); err != nil {
		return models.SavedSearch{}, err
	}
	return s, nil
}

// Use marks one saved search as used, bumping its counter, and returns it.
func (r *SavedSearchRepository) Use(ctx context.Context, id string) (models.SavedSearch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return models.SavedSearch{}, utils.ErrNotFound
	}

	now := time.Now().UTC()
	r.searches[idx].UsageCount++
	r.searches[idx].LastUsed = &now
	if err := r.commit(ctx); err != nil {
		return models.SavedSearch{}, err
	}
	return r.searches[idx], nil
}

// Delete removes a saved search by id.
func (r *SavedSearchRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return utils.ErrNotFound
	}
	r.searches = append(r.searches[:idx], r.searches[idx+1:]...)
	return r.commit(ctx)
}

// GetAll returns a copy of the collection in insertion order.
func (r *SavedSearchRepository) GetAll() []models.SavedSearch {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.SavedSearch, len(r.searches))
	copy(out, r.searches)
	return out
}

func (r *SavedSearchRepository) commit(ctx context.Context) error {
	raw, err := json.Marshal(r.searches)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, store.KeySavedSearches, raw)
}

func (r *SavedSearchRepository) indexOf(id string) int {
	for i := range r.searches {
		if r.searches[i].ID == id {
			return i
		}
	}
	return -1
}
