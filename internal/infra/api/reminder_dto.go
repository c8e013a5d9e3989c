package api

import (
	"time"

	"github.com/ksaxena149/personal-relationship-manager/internal/domain"
)

type listResponse struct {
	Success bool          `json:"success"`
	Data    []reminderDTO `json:"data"`
}

type reminderDTO struct {
	ID           int64       `json:"id"`
	ReminderDate time.Time   `json:"reminderDate"`
	Description  string      `json:"description"`
	ContactID    *int64      `json:"contactId"`
	IsRecurring  bool        `json:"isRecurring"`
	IsCompleted  bool        `json:"isCompleted"`
	Contact      *contactDTO `json:"contact,omitempty"`
}

type contactDTO struct {
	FirstName string  `json:"firstName"`
	LastName  *string `json:"lastName"`
}

type completeRequest struct {
	IsCompleted bool `json:"isCompleted"`
}

func (d reminderDTO) ToEntity() (*domain.Reminder, error) {
	var contact *domain.ContactRef

	if d.Contact != nil {
		lastName := ""
		if d.Contact.LastName != nil {
			lastName = *d.Contact.LastName
		}

		ref, err := domain.NewContactRef(d.Contact.FirstName, lastName)
		if err != nil {
			return nil, err
		}

		contact = &ref
	}

	return domain.Reconstitute(
		domain.ReminderID(d.ID),
		d.ReminderDate,
		d.Description,
		contact,
		d.IsRecurring,
		d.IsCompleted,
	)
}
