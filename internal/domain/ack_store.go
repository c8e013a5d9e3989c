package domain

import "context"

// AckStore persists the set of reminder IDs that have already produced a
// due notification. The copy survives process restarts within the same
// profile; it is not shared across devices.
type AckStore interface {
	// Load returns the persisted set. A missing or unparseable payload
	// degrades to an empty set rather than an error.
	Load(ctx context.Context) (map[ReminderID]struct{}, error)
	// Save replaces the persisted set.
	Save(ctx context.Context, ids map[ReminderID]struct{}) error
	// Clear removes the persisted set entirely.
	Clear(ctx context.Context) error
}
