package domain

import (
	"context"
)

//go:generate mockgen -source=reminder_gateway.go -destination=reminder_gateway_mock.go -package=domain

// ReminderGateway is the remote backing store of reminders. All operations
// require a bearer credential; implementations return ErrNoCredential when
// none is available so callers can degrade instead of failing hard.
type ReminderGateway interface {
	// FetchReminders returns the full reminder list for the current user.
	// The returned order is authoritative for cache iteration.
	FetchReminders(ctx context.Context) ([]*Reminder, error)
	// CompleteReminder transitions the reminder to completed. Idempotent
	// on the remote side.
	CompleteReminder(ctx context.Context, id ReminderID) error
	// DeleteReminder permanently removes the reminder.
	DeleteReminder(ctx context.Context, id ReminderID) error
}
