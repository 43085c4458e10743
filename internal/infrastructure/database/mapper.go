package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"openconference/internal/domain"
	"openconference/internal/domain/entities"
)

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func timeToTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// textOrNull stores the empty string as NULL ("not set").
func textOrNull(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

type userRow struct {
	ID        string             `db:"id"`
	Subject   string             `db:"external_subject"`
	Name      pgtype.Text        `db:"name"`
	Bio       pgtype.Text        `db:"bio"`
	CreatedAt pgtype.Timestamptz `db:"created_at"`
	UpdatedAt pgtype.Timestamptz `db:"updated_at"`
}

func userToDomain(r userRow) entities.User {
	return entities.User{
		ID:        r.ID,
		Subject:   r.Subject,
		Name:      r.Name.String,
		Bio:       r.Bio.String,
		CreatedAt: pgtypeTimestamptzToTime(r.CreatedAt),
		UpdatedAt: pgtypeTimestamptzToTime(r.UpdatedAt),
	}
}

type conferenceRow struct {
	ID          string             `db:"id"`
	Name        string             `db:"name"`
	Description string             `db:"description"`
	StartDate   pgtype.Timestamptz `db:"start_date"`
	EndDate     pgtype.Timestamptz `db:"end_date"`
	CreatedBy   string             `db:"created_by"`
	CreatedAt   pgtype.Timestamptz `db:"created_at"`
}

func conferenceToDomain(r conferenceRow) entities.Conference {
	return entities.Conference{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		StartDate:   pgtypeTimestamptzToTime(r.StartDate),
		EndDate:     pgtypeTimestamptzToTime(r.EndDate),
		CreatedBy:   r.CreatedBy,
		CreatedAt:   pgtypeTimestamptzToTime(r.CreatedAt),
	}
}

type conferenceAttendeeRow struct {
	ID           string             `db:"id"`
	ConferenceID string             `db:"conference_id"`
	UserID       string             `db:"user_id"`
	CreatedAt    pgtype.Timestamptz `db:"created_at"`
}

func conferenceAttendeeToDomain(r conferenceAttendeeRow) entities.ConferenceAttendee {
	return entities.ConferenceAttendee{
		ID:           r.ID,
		ConferenceID: r.ConferenceID,
		UserID:       r.UserID,
		CreatedAt:    pgtypeTimestamptzToTime(r.CreatedAt),
	}
}

type meetingRow struct {
	ID           string             `db:"id"`
	ConferenceID string             `db:"conference_id"`
	Title        string             `db:"title"`
	Description  string             `db:"description"`
	StartTime    pgtype.Timestamptz `db:"start_time"`
	EndTime      pgtype.Timestamptz `db:"end_time"`
	IsPublic     bool               `db:"is_public"`
	CreatedBy    string             `db:"created_by"`
	CreatedAt    pgtype.Timestamptz `db:"created_at"`
}

func meetingToDomain(r meetingRow) entities.Meeting {
	return entities.Meeting{
		ID:           r.ID,
		ConferenceID: r.ConferenceID,
		Title:        r.Title,
		Description:  r.Description,
		StartTime:    pgtypeTimestamptzToTime(r.StartTime),
		EndTime:      pgtypeTimestamptzToTime(r.EndTime),
		IsPublic:     r.IsPublic,
		CreatedBy:    r.CreatedBy,
		CreatedAt:    pgtypeTimestamptzToTime(r.CreatedAt),
	}
}

type meetingAttendeeRow struct {
	ID        string             `db:"id"`
	MeetingID string             `db:"meeting_id"`
	UserID    string             `db:"user_id"`
	Status    string             `db:"status"`
	CreatedAt pgtype.Timestamptz `db:"created_at"`
	UpdatedAt pgtype.Timestamptz `db:"updated_at"`
}

func meetingAttendeeToDomain(r meetingAttendeeRow) entities.MeetingAttendee {
	return entities.MeetingAttendee{
		ID:        r.ID,
		MeetingID: r.MeetingID,
		UserID:    r.UserID,
		Status:    domain.AttendeeStatus(r.Status),
		CreatedAt: pgtypeTimestamptzToTime(r.CreatedAt),
		UpdatedAt: pgtypeTimestamptzToTime(r.UpdatedAt),
	}
}

// queryOne runs sql and maps its single row, or returns ErrNotFound.
func queryOne[R, E any](ctx context.Context, q querier, op string, toDomain func(R) E, sql string, args ...any) (*E, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	r, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[R])
	if err != nil {
		return nil, mapError(op, err)
	}
	e := toDomain(r)
	return &e, nil
}

func queryAll[R, E any](ctx context.Context, q querier, op string, toDomain func(R) E, sql string, args ...any) ([]E, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[R])
	if err != nil {
		return nil, mapError(op, err)
	}
	out := make([]E, len(collected))
	for i := range collected {
		out[i] = toDomain(collected[i])
	}
	return out, nil
}
