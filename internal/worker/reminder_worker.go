package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/matan1995el-lgtm/aliexpres/internal/service"
)

// ReminderWorker periodically checks for due reminders and reschedules or
// deactivates them. Due reminders are surfaced through the log; clients poll
// GET /v1/reminders for current state.
type ReminderWorker struct {
	reminderSvc *service.ReminderService
	interval    time.Duration
}

// NewReminderWorker constructs a ReminderWorker.
func NewReminderWorker(reminderSvc *service.ReminderService, interval time.Duration) *ReminderWorker {
	return &ReminderWorker{reminderSvc: reminderSvc, interval: interval}
}

// Start begins the periodic reminder check loop until context is canceled.
func (w *ReminderWorker) Start(ctx context.Context) {
	log.Info().
		Dur("interval", w.interval).
		Msg("Starting reminder worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Reminder worker stopped")
			return
		}
	}
}

func (w *ReminderWorker) run(ctx context.Context) {
	due, err := w.reminderSvc.CheckDue(ctx, time.Now().UTC())
	if err != nil {
		log.Error().Err(err).Msg("Failed to check due reminders")
		return
	}
	for _, rem := range due {
		log.Info().
			Str("reminder_id", rem.ID).
			Str("title", rem.Title).
			Str("product_id", rem.ProductID).
			Msg("Reminder due")
	}
}
