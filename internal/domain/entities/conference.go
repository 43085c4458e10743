package entities

import "time"

type Conference struct {
	ID          string
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	CreatedBy   string
	CreatedAt   time.Time
}

// ConferenceAttendee is binary membership: the row exists or it does not.
type ConferenceAttendee struct {
	ID           string
	ConferenceID string
	UserID       string
	CreatedAt    time.Time
}
