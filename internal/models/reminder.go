package models

import "time"

// ReminderRepeat enumerates reminder repetition modes.
type ReminderRepeat string

const (
	RepeatOnce   ReminderRepeat = "once"
	RepeatDaily  ReminderRepeat = "daily"
	RepeatWeekly ReminderRepeat = "weekly"
)

// Reminder is a scheduled alert, optionally tied to a product.
type Reminder struct {
	ID          string         `json:"id"`
	ProductID   string         `json:"productId,omitempty"`
	Title       string         `json:"title"`
	Message     string         `json:"message,omitempty"`
	Repeat      ReminderRepeat `json:"repeat"`
	TriggerAt   time.Time      `json:"triggerAt"`
	Snoozed     bool           `json:"snoozed"`
	SnoozeUntil *time.Time     `json:"snoozeUntil,omitempty"`
	Active      bool           `json:"active"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// ReminderPatch carries a partial update for a reminder.
type ReminderPatch struct {
	Title     *string         `json:"title,omitempty"`
	Message   *string         `json:"message,omitempty"`
	Repeat    *ReminderRepeat `json:"repeat,omitempty"`
	TriggerAt *time.Time      `json:"triggerAt,omitempty"`
	Active    *bool           `json:"active,omitempty"`
}
