package output

import (
	"context"
	"time"

	"openconference/internal/domain"
	"openconference/internal/domain/entities"
)

type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	FindByID(ctx context.Context, id string) (*entities.Meeting, error)
	// ListByConference returns the conference's meetings ordered by start time.
	ListByConference(ctx context.Context, conferenceID string) ([]entities.Meeting, error)
}

type MeetingAttendeeRepository interface {
	// Create fails with ErrDuplicate when (meeting, user) already has a row or
	// when a second owner row is attempted for the meeting.
	Create(ctx context.Context, attendee *entities.MeetingAttendee) error
	FindByMeetingAndUser(ctx context.Context, meetingID, userID string) (*entities.MeetingAttendee, error)
	ListByMeeting(ctx context.Context, meetingID string) ([]entities.MeetingAttendee, error)
	ListByUser(ctx context.Context, userID string) ([]entities.MeetingAttendee, error)
	CountByMeeting(ctx context.Context, meetingID string) (int64, error)
	// UpdateStatus sets the row's status and stamps UpdatedAt with at.
	UpdateStatus(ctx context.Context, id string, status domain.AttendeeStatus, at time.Time) error
	Delete(ctx context.Context, id string) error
}
