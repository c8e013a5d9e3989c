package handler

import (
	"time"

	"github.com/ksaxena149/personal-relationship-manager/internal/domain"
)

type ReminderResponse struct {
	ID           int64            `json:"id"`
	ReminderDate time.Time        `json:"reminder_date"`
	Description  string           `json:"description"`
	Contact      *ContactResponse `json:"contact,omitempty"`
	IsRecurring  bool             `json:"is_recurring"`
	IsCompleted  bool             `json:"is_completed"`
	Acknowledged bool             `json:"acknowledged"`
}

type ContactResponse struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name,omitempty"`
	DisplayName string `json:"display_name"`
}

type RemindersResponse struct {
	Reminders []ReminderResponse `json:"reminders"`
	Count     int                `json:"count"`
}

type StatusResponse struct {
	Running       bool       `json:"running"`
	ReminderCount int        `json:"reminder_count"`
	DueCount      int        `json:"due_count"`
	LastFetchedAt *time.Time `json:"last_fetched_at,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func fromEntity(r *domain.Reminder, acknowledged bool) ReminderResponse {
	resp := ReminderResponse{
		ID:           r.ID().Int64(),
		ReminderDate: r.DueAt(),
		Description:  r.Description(),
		IsRecurring:  r.IsRecurring(),
		IsCompleted:  r.IsCompleted(),
		Acknowledged: acknowledged,
	}

	if c := r.Contact(); c != nil {
		resp.Contact = &ContactResponse{
			FirstName:   c.FirstName(),
			LastName:    c.LastName(),
			DisplayName: c.DisplayName(),
		}
	}

	return resp
}
