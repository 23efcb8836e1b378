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

// ReminderRepository holds the scheduled reminders.
type ReminderRepository struct {
	mu        sync.RWMutex
	store     store.Store
	reminders []models.Reminder
}

// NewReminderRepository creates a ReminderRepository over the given store.
func NewReminderRepository(s store.Store) *ReminderRepository {
	return &ReminderRepository{store: s}
}

// Load reads the persisted collection into memory.
func (r *ReminderRepository) Load(ctx context.Context) error {
	raw, err := r.store.Get(ctx, store.KeyReminders)
	if err == store.ErrKeyNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	var reminders []models.Reminder
	if err := json.Unmarshal(raw, &reminders); err != nil {
		return fmt.Errorf("corrupt reminders document: %w", err)
	}

	r.mu.Lock()
	r.reminders = reminders
	r.mu.Unlock()
	return nil
}

// Add assigns an identifier and creation timestamp and persists.
func (r *ReminderRepository) Add(ctx context.Context, rem models.Reminder) (models.Reminder, error) {
	rem.ID = uuid.New().String()
	rem.CreatedAt = time.Now().UTC()
	rem.Active = true
	if rem.Repeat == "" {
		rem.Repeat = models.RepeatOnce
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.reminders = append(r.reminders, rem)
	if err := r.commit(ctx); err != nil {
		return models.Reminder{}, err
	}
	return rem, nil
}

// Update merges the non-nil patch fields into the reminder.
func (r *ReminderRepository) Update(ctx context.Context, id string, patch models.ReminderPatch) (models.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return models.Reminder{}, utils.ErrNotFound
	}

	rem := r.reminders[idx]
	if patch.Title != nil {
		rem.Title = *patch.Title
	}
	if patch.Message != nil {
		rem.Message = *patch.Message
	}
	if patch.Repeat != nil {
		rem.Repeat = *patch.Repeat
	}
	if patch.TriggerAt != nil {
		rem.TriggerAt = *patch.TriggerAt
	}
	if patch.Active != nil {
		rem.Active = *patch.Active
	}

	r.reminders[idx] = rem
	if err := r.commit(ctx); err != nil {
		return models.Reminder{}, err
	}
	return rem, nil
}

// Replace overwrites a reminder wholesale, keyed by its own id. Used by the
// due-check to persist rescheduling and snooze expiry.
func (r *ReminderRepository) Replace(ctx context.Context, rem models.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(rem.ID)
	if idx < 0 {
		return utils.ErrNotFound
	}
	r.reminders[idx] = rem
	return r.commit(ctx)
}

// Delete removes a reminder by id.
func (r *ReminderRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return utils.ErrNotFound
	}
	r.reminders = append(r.reminders[:idx], r.reminders[idx+1:]...)
	return r.commit(ctx)
}

// Get returns a reminder by id.
func (r *ReminderRepository) Get(id string) (models.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if idx := r.indexOf(id); idx >= 0 {
		return r.reminders[idx], nil
	}
	return models.Reminder{}, utils.ErrNotFound
}

// GetAll returns a copy of the collection in insertion order.
func (r *ReminderRepository) GetAll() []models.Reminder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Reminder, len(r.reminders))
	copy(out, r.reminders)
	return out
}

func (r *ReminderRepository) commit(ctx context.Context) error {
	raw, err := json.Marshal(r.reminders)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, store.KeyReminders, raw)
}

func (r *ReminderRepository) indexOf(id string) int {
	for i := range r.reminders {
		if r.reminders[i].ID == id {
			return i
		}
	}
	return -1
}
