package domain

import (
	"time"
)

// Reminder is a read-mostly snapshot of a reminder owned by the backing
// store. The notification service never creates reminders; it reconstitutes
// them from fetch responses.
type Reminder struct {
	id          ReminderID
	dueAt       time.Time
	description string
	contact     *ContactRef
	recurring   bool
	completed   bool
}

func Reconstitute(
	id ReminderID,
	dueAt time.Time,
	description string,
	contact *ContactRef,
	recurring bool,
	completed bool,
) (*Reminder, error) {
	if id.IsZero() {
		return nil, ErrInvalidReminderID
	}

	if dueAt.IsZero() {
		return nil, ErrInvalidDueTime
	}

	return &Reminder{
		id:          id,
		dueAt:       dueAt,
		description: description,
		contact:     contact,
		recurring:   recurring,
		completed:   completed,
	}, nil
}

// IsDueAt reports whether the reminder's scheduled time has been reached.
// Completed reminders are never due.
func (r *Reminder) IsDueAt(now time.Time) bool {
	if r.completed {
		return false
	}

	return !r.dueAt.After(now)
}

// MarkCompleted transitions the local snapshot after the remote mutation
// succeeded. Completion is absorbing.
func (r *Reminder) MarkCompleted() error {
	if r.completed {
		return ErrAlreadyCompleted
	}

	r.completed = true

	return nil
}

func (r *Reminder) ID() ReminderID {
	return r.id
}

func (r *Reminder) DueAt() time.Time {
	return r.dueAt
}

func (r *Reminder) Description() string {
	return r.description
}

func (r *Reminder) Contact() *ContactRef {
	return r.contact
}

func (r *Reminder) IsRecurring() bool {
	return r.recurring
}

func (r *Reminder) IsCompleted() bool {
	return r.completed
}
