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

// FavoriteRepository holds the favorites collection. The price history of
// each favorite is append-only: exactly one entry is added when and only
// when the current price changes.
type FavoriteRepository struct {
	mu        sync.RWMutex
	store     store.Store
	favorites []models.Favorite
}

// NewFavoriteRepository creates a FavoriteRepository over the given store.
func NewFavoriteRepository(s store.Store) *FavoriteRepository {
	return &FavoriteRepository{store: s}
}

// Load reads the persisted collection into memory.
func (r *FavoriteRepository) Load(ctx context.Context) error {
	raw, err := r.store.Get(ctx, store.KeyFavorites)
	if err == store.ErrKeyNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	var favorites []models.Favorite
	if err := json.Unmarshal(raw, &favorites); err != nil {
		return fmt.Errorf("corrupt favorites document: %w", err)
	}

	r.mu.Lock()
	r.favorites = favorites
	r.mu.Unlock()
	return nil
}

// Add assigns an identifier and creation timestamp and seeds the price
// history with the current price.
func (r *FavoriteRepository) Add(ctx context.Context, f models.Favorite) (models.Favorite, error) {
	now := time.Now().UTC()
	f.ID = uuid.New().String()
	f.CreatedAt = now
	if f.Priority == "" {
		f.Priority = models.PriorityMedium
	}
	f.PriceHistory = []models.PricePoint{{Date: now, Price: f.CurrentPrice}}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.favorites = append(r.favorites, f)
	if err := r.commit(ctx); err != nil {
		return models.Favorite{}, err
	}
	return f, nil
}

// Update merges the non-nil patch fields. A changed current price appends
// one price history entry; an unchanged price appends nothing.
func (r *FavoriteRepository) Update(ctx context.Context, id string, patch models.FavoritePatch) (models.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return models.Favorite{}, utils.ErrNotFound
	}

	f := r.favorites[idx]
	if patch.Name != nil {
		f.Name = *patch.Name
	}
	if patch.CurrentPrice != nil && *patch.CurrentPrice != f.CurrentPrice {
		f.CurrentPrice = *patch.CurrentPrice
		f.PriceHistory = append(f.PriceHistory, models.PricePoint{
			Date:  time.Now().UTC(),
			Price: f.CurrentPrice,
		})
	}
	if patch.TargetPrice != nil {
		f.TargetPrice = patch.TargetPrice
	}
	if patch.Tags != nil {
		f.Tags = *patch.Tags
	}
	if patch.Priority != nil {
		f.Priority = *patch.Priority
	}
	if patch.Category != nil {
		f.Category = *patch.Category
	}
	if patch.Notes != nil {
		f.Notes = *patch.Notes
	}
	if patch.Link != nil {
		f.Link = *patch.Link
	}

	r.favorites[idx] = f
	if err := r.commit(ctx); err != nil {
		return models.Favorite{}, err
	}
	return f, nil
}

// Delete removes a favorite by id.
func (r *FavoriteRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return utils.ErrNotFound
	}
	r.favorites = append(r.favorites[:idx], r.favorites[idx+1:]...)
	return r.commit(ctx)
}

// Get returns a favorite by id.
func (r *FavoriteRepository) Get(id string) (models.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if idx := r.indexOf(id); idx >= 0 {
		return r.favorites[idx], nil
	}
	return models.Favorite{}, utils.ErrNotFound
}

// GetAll returns a copy of the collection in insertion order.
func (r *FavoriteRepository) GetAll() []models.Favorite {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Favorite, len(r.favorites))
	copy(out, r.favorites)
	return out
}

// ReplaceAll swaps the whole collection and persists it. Used by import.
func (r *FavoriteRepository) ReplaceAll(ctx context.Context, favorites []models.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.favorites = favorites
	return r.commit(ctx)
}

// Commit persists the current in-memory collection.
func (r *FavoriteRepository) Commit(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.commit(ctx)
}

func (r *FavoriteRepository) commit(ctx context.Context) error {
	raw, err := json.Marshal(r.favorites)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, store.KeyFavorites, raw)
}

func (r *FavoriteRepository) indexOf(id string) int {
	for i := range r.favorites {
		if r.favorites[i].ID == id {
			return i
		}
	}
	return -1
}
