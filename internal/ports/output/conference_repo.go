package output

import (
	"context"

	"openconference/internal/domain/entities"
)

type ConferenceRepository interface {
	Create(ctx context.Context, conference *entities.Conference) error
	FindByID(ctx context.Context, id string) (*entities.Conference, error)
	// ListByStartDesc returns every conference, latest start first.
	ListByStartDesc(ctx context.Context) ([]entities.Conference, error)
}

type ConferenceAttendeeRepository interface {
	// Create fails with ErrDuplicate when (conference, user) already has a row.
	Create(ctx context.Context, attendee *entities.ConferenceAttendee) error
	FindByConferenceAndUser(ctx context.Context, conferenceID, userID string) (*entities.ConferenceAttendee, error)
	ListByConference(ctx context.Context, conferenceID string) ([]entities.ConferenceAttendee, error)
	ListByUser(ctx context.Context, userID string) ([]entities.ConferenceAttendee, error)
	Delete(ctx context.Context, id string) error
}
