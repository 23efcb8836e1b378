package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/store"
)

// SettingsRepository holds the single settings record. Reads before any
// save return the documented defaults.
type SettingsRepository struct {
	mu       sync.RWMutex
	store    store.Store
	settings models.Settings
	loaded   bool
}

// NewSettingsRepository creates a SettingsRepository over the given store.
func NewSettingsRepository(s store.Store) *SettingsRepository {
	return &SettingsRepository{store: s, settings: models.DefaultSettings()}
}

// Load reads the persisted settings record; a missing key keeps defaults.
func (r *SettingsRepository) Load(ctx context.Context) error {
	raw, err := r.store.Get(ctx, store.KeySettings)
	if err == store.ErrKeyNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	settings := models.DefaultSettings()
	if err := json.Unmarshal(raw, &settings); err != nil {
		return fmt.Errorf("corrupt settings document: %w", err)
	}

	r.mu.Lock()
	r.settings = settings
	r.loaded = true
	r.mu.Unlock()
	return nil
}

// Get returns a consistent snapshot of the settings.
func (r *SettingsRepository) Get() models.Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings
}

// Save replaces and persists the settings record.
func (r *SettingsRepository) Save(ctx context.Context, s models.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, store.KeySettings, raw); err != nil {
		return err
	}
	r.settings = s
	r.loaded = true
	return nil
}
