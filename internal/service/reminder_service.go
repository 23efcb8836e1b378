package service

import (
	"context"
	"fmt"
	"time"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/repository"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

// ReminderService manages scheduled reminders and decides which are due.
type ReminderService struct {
	reminderRepo *repository.ReminderRepository
}

// NewReminderService constructs a ReminderService.
func NewReminderService(reminderRepo *repository.ReminderRepository) *ReminderService {
	return &ReminderService{reminderRepo: reminderRepo}
}

// ReminderInput is the accepted payload for creating a reminder.
type ReminderInput struct {
	ProductID string                `json:"productId,omitempty"`
	Title     string                `json:"title" binding:"required"`
	Message   string                `json:"message,omitempty"`
	Repeat    models.ReminderRepeat `json:"repeat,omitempty"`
	TriggerAt time.Time             `json:"triggerAt" binding:"required"`
}

// Add validates and stores a new reminder.
func (s *ReminderService) Add(ctx context.Context, in ReminderInput) (models.Reminder, error) {
	switch in.Repeat {
	case "", models.RepeatOnce, models.RepeatDaily, models.RepeatWeekly:
	default:
		return models.Reminder{}, fmt.Errorf("%w: repeat must be once, daily or weekly", utils.ErrValidation)
	}
	return s.reminderRepo.Add(ctx, models.Reminder{
		ProductID: in.ProductID,
		Title:     in.Title,
		Message:   in.Message,
		Repeat:    in.Repeat,
		TriggerAt: in.TriggerAt,
	})
}

// Update applies a partial update.
func (s *ReminderService) Update(ctx context.Context, id string, patch models.ReminderPatch) (models.Reminder, error) {
	return s.reminderRepo.Update(ctx, id, patch)
}

// Delete removes a reminder.
func (s *ReminderService) Delete(ctx context.Context, id string) error {
	return s.reminderRepo.Delete(ctx, id)
}

// GetAll returns all reminders.
func (s *ReminderService) GetAll() []models.Reminder {
	return s.reminderRepo.GetAll()
}

// Snooze postpones a reminder by the given number of minutes.
func (s *ReminderService) Snooze(ctx context.Context, id string, minutes int) (models.Reminder, error) {
	if minutes <= 0 {
		minutes = 60
	}
	rem, err := s.reminderRepo.Get(id)
	if err != nil {
		return models.Reminder{}, err
	}
	until := time.Now().UTC().Add(time.Duration(minutes) * time.Minute)
	rem.Snoozed = true
	rem.SnoozeUntil = &until
	if err := s.reminderRepo.Replace(ctx, rem); err != nil {
		return models.Reminder{}, err
	}
	return rem, nil
}

// CheckDue returns the reminders due at now and reschedules or deactivates
// them: repeating reminders advance to their next trigger, one-shot
// reminders become inactive. Expired snoozes are cleared.
func (s *ReminderService) CheckDue(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	var due []models.Reminder

	for _, rem := range s.reminderRepo.GetAll() {
		if !rem.Active {
			continue
		}
		snoozeCleared := false
		if rem.Snoozed {
			if rem.SnoozeUntil != nil && rem.SnoozeUntil.After(now) {
				continue
			}
			rem.Snoozed = false
			rem.SnoozeUntil = nil
			snoozeCleared = true
		}
		if rem.TriggerAt.After(now) {
			if snoozeCleared {
				if err := s.reminderRepo.Replace(ctx, rem); err != nil {
					return due, err
				}
			}
			continue
		}

		due = append(due, rem)

		switch rem.Repeat {
		case models.RepeatDaily:
			rem.TriggerAt = rem.TriggerAt.Add(24 * time.Hour)
		case models.RepeatWeekly:
			rem.TriggerAt = rem.TriggerAt.Add(7 * 24 * time.Hour)
		default:
			rem.Active = false
		}
		if err := s.reminderRepo.Replace(ctx, rem); err != nil {
			return due, err
		}
	}

	return due, nil
}
