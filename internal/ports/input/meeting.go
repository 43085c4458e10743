package input

import (
	"context"
	"time"

	"openconference/internal/domain"
	"openconference/internal/domain/entities"
)

type CreateMeetingInput struct {
	ConferenceID   string
	Title          string
	Description    string
	StartTime      time.Time
	EndTime        time.Time
	IsPublic       bool
	InviteeUserIDs []string
}

// MeetingSummary is a meeting row as listed: creator name and a head count
// derived at read time.
type MeetingSummary struct {
	entities.Meeting
	CreatorName   string
	AttendeeCount int
}

// MyMeeting adds the caller's own invitation status.
type MyMeeting struct {
	MeetingSummary
	MyStatus domain.AttendeeStatus
}

type MeetingAttendeeView struct {
	UserID string
	Status domain.AttendeeStatus
	Name   string
}

type MeetingDetail struct {
	entities.Meeting
	CreatorName string
	Attendees   []MeetingAttendeeView
}

type MeetingUseCase interface {
	Create(ctx context.Context, in CreateMeetingInput) (string, error)
	Respond(ctx context.Context, meetingID string, status domain.AttendeeStatus) error
	JoinPublic(ctx context.Context, meetingID string) error
	Leave(ctx context.Context, meetingID string) error
	Get(ctx context.Context, meetingID string) (*MeetingDetail, error)
	PublicMeetings(ctx context.Context, conferenceID string) ([]MeetingSummary, error)
	MyMeetings(ctx context.Context, conferenceID string) ([]MyMeeting, error)
}
