package domain

import "errors"

var (
	ErrInvalidReminderID = errors.New("invalid reminder ID")
	ErrInvalidDueTime    = errors.New("reminder time must be set")
	ErrInvalidContactRef = errors.New("contact reference requires a first name")

	ErrAlreadyCompleted = errors.New("reminder is already completed")
	ErrReminderNotFound = errors.New("reminder not found")

	// ErrNoCredential is returned by gateway operations when no bearer
	// credential is available or the stored one has expired.
	ErrNoCredential = errors.New("no valid credential available")
)
