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

// ProfileRepository holds the saved filter profiles.
type ProfileRepository struct {
	mu       sync.RWMutex
	store    store.Store
	profiles []models.Profile
}

// NewProfileRepository creates a ProfileRepository over the given store.
func NewProfileRepository(s store.Store) *ProfileRepository {
	return &ProfileRepository{store: s}
}

// Load reads the persisted collection into memory.
func (r *ProfileRepository) Load(ctx context.Context) error {
	raw, err := r.store.Get(ctx, store.KeyProfiles)
	if err == store.ErrKeyNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	var profiles []models.Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return fmt.Errorf("corrupt profiles document: %w", err)
	}

	r.mu.Lock()
	r.profiles = profiles
	r.mu.Unlock()
	return nil
}

// Add assigns an identifier and creation timestamp and persists.
func (r *ProfileRepository) Add(ctx context.Context, p models.Profile) (models.Profile, error) {
	p.ID = uuid.New().String()
	p.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = append(r.profiles, p)
	if err := r.commit(ctx); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// Update merges the non-nil patch fields into the profile.
func (r *ProfileRepository) Update(ctx context.Context, id string, patch models.ProfilePatch) (models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return models.Profile{}, utils.ErrNotFound
	}

	p := r.profiles[idx]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Criteria != nil {
		p.Criteria = *patch.Criteria
	}
	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}

	r.profiles[idx] = p
	if err := r.commit(ctx); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// Delete removes a profile by id.
func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return utils.ErrNotFound
	}
	r.profiles = append(r.profiles[:idx], r.profiles[idx+1:]...)
	return r.commit(ctx)
}

// Get returns a profile by id.
func (r *ProfileRepository) Get(id string) (models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if idx := r.indexOf(id); idx >= 0 {
		return r.profiles[idx], nil
	}
	return models.Profile{}, utils.ErrNotFound
}

// GetAll returns a copy of the collection in insertion order.
func (r *ProfileRepository) GetAll() []models.Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Profile, len(r.profiles))
	copy(out, r.profiles)
	return out
}

// ReplaceAll swaps the whole collection and persists it. Used by import.
func (r *ProfileRepository) ReplaceAll(ctx context.Context, profiles []models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = profiles
	return r.commit(ctx)
}

func (r *ProfileRepository) commit(ctx context.Context) error {
	raw, err := json.Marshal(r.profiles)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, store.KeyProfiles, raw)
}

func (r *ProfileRepository) indexOf(id string) int {
	for i := range r.profiles {
		if r.profiles[i].ID == id {
			return i
		}
	}
	return -1
}
