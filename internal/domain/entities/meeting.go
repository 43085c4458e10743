package entities

import (
	"time"

	"openconference/internal/domain"
)

type Meeting struct {
	ID           string
	ConferenceID string
	Title        string
	Description  string
	StartTime    time.Time
	EndTime      time.Time
	IsPublic     bool
	CreatedBy    string
	CreatedAt    time.Time
}

// MeetingAttendee is an invitation or membership row carrying its status.
type MeetingAttendee struct {
	ID        string
	MeetingID string
	UserID    string
	Status    domain.AttendeeStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *MeetingAttendee) IsOwner() bool {
	return a.Status == domain.StatusOwner
}
