package domain

import "strconv"

// ReminderID is the server-assigned identifier of a reminder. It is stable
// for the reminder's lifetime.
type ReminderID int64

func ReminderIDFromString(s string) (ReminderID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, ErrInvalidReminderID
	}

	return ReminderID(v), nil
}

func (r ReminderID) Int64() int64 {
	return int64(r)
}

func (r ReminderID) String() string {
	return strconv.FormatInt(int64(r), 10)
}

func (r ReminderID) IsZero() bool {
	return r == 0
}
