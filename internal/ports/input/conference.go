package input

import (
	"context"
	"time"

	"openconference/internal/domain/entities"
)

type CreateConferenceInput struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
}

// ConferenceView is a conference with its creator's display name attached.
type ConferenceView struct {
	entities.Conference
	CreatorName string
}

// AttendeeView is one conference roster entry.
type AttendeeView struct {
	AttendeeID string
	UserID     string
	Name       string
	Bio        string
}

type ConferenceUseCase interface {
	Create(ctx context.Context, in CreateConferenceInput) (string, error)
	Join(ctx context.Context, conferenceID string) error
	Leave(ctx context.Context, conferenceID string) error
	IsAttending(ctx context.Context, conferenceID string) (bool, error)
	Get(ctx context.Context, conferenceID string) (*ConferenceView, error)
	List(ctx context.Context) ([]ConferenceView, error)
	ListAttendees(ctx context.Context, conferenceID string) ([]AttendeeView, error)
}
