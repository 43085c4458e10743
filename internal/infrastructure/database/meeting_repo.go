package database

import (
	"context"
	"time"

	"openconference/internal/domain"
	"openconference/internal/domain/entities"
)

const (
	meetingColumns         = `id, conference_id, title, description, start_time, end_time, is_public, created_by, created_at`
	meetingAttendeeColumns = `id, meeting_id, user_id, status, created_at, updated_at`
)

type meetingRepo struct{ q querier }

func (r meetingRepo) Create(ctx context.Context, m *entities.Meeting) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO meetings (id, conference_id, title, description, start_time, end_time, is_public, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.ConferenceID, m.Title, m.Description, timeToTimestamptz(m.StartTime), timeToTimestamptz(m.EndTime),
		m.IsPublic, m.CreatedBy, timeToTimestamptz(m.CreatedAt))
	if err != nil {
		return mapError("create meeting", err)
	}
	return nil
}

func (r meetingRepo) FindByID(ctx context.Context, id string) (*entities.Meeting, error) {
	return queryOne(ctx, r.q, "get meeting", meetingToDomain,
		`SELECT `+meetingColumns+` FROM meetings WHERE id = $1`, id)
}

func (r meetingRepo) ListByConference(ctx context.Context, conferenceID string) ([]entities.Meeting, error) {
	return queryAll(ctx, r.q, "list meetings", meetingToDomain,
		`SELECT `+meetingColumns+` FROM meetings WHERE conference_id = $1 ORDER BY start_time, seq`,
		conferenceID)
}

type meetingAttendeeRepo struct{ q querier }

func (r meetingAttendeeRepo) Create(ctx context.Context, a *entities.MeetingAttendee) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO meeting_attendees (id, meeting_id, user_id, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.MeetingID, a.UserID, string(a.Status), timeToTimestamptz(a.CreatedAt), timeToTimestamptz(a.UpdatedAt))
	if err != nil {
		return mapError("create meeting attendee", err)
	}
	return nil
}

func (r meetingAttendeeRepo) FindByMeetingAndUser(ctx context.Context, meetingID, userID string) (*entities.MeetingAttendee, error) {
	return queryOne(ctx, r.q, "get meeting attendee", meetingAttendeeToDomain,
		`SELECT `+meetingAttendeeColumns+` FROM meeting_attendees WHERE meeting_id = $1 AND user_id = $2`,
		meetingID, userID)
}

func (r meetingAttendeeRepo) ListByMeeting(ctx context.Context, meetingID string) ([]entities.MeetingAttendee, error) {
	return queryAll(ctx, r.q, "list meeting attendees", meetingAttendeeToDomain,
		`SELECT `+meetingAttendeeColumns+` FROM meeting_attendees WHERE meeting_id = $1 ORDER BY seq`,
		meetingID)
}

func (r meetingAttendeeRepo) ListByUser(ctx context.Context, userID string) ([]entities.MeetingAttendee, error) {
	return queryAll(ctx, r.q, "list meetings of user", meetingAttendeeToDomain,
		`SELECT `+meetingAttendeeColumns+` FROM meeting_attendees WHERE user_id = $1 ORDER BY seq`,
		userID)
}

func (r meetingAttendeeRepo) CountByMeeting(ctx context.Context, meetingID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM meeting_attendees WHERE meeting_id = $1`, meetingID).Scan(&n)
	if err != nil {
		return 0, mapError("count meeting attendees", err)
	}
	return n, nil
}

func (r meetingAttendeeRepo) UpdateStatus(ctx context.Context, id string, status domain.AttendeeStatus, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE meeting_attendees SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), timeToTimestamptz(at))
	return affectedOne("update meeting attendee", tag, err)
}

func (r meetingAttendeeRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM meeting_attendees WHERE id = $1`, id)
	return affectedOne("delete meeting attendee", tag, err)
}
