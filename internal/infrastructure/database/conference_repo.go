package database

import (
	"context"

	"openconference/internal/domain/entities"
)

const (
	conferenceColumns         = `id, name, description, start_date, end_date, created_by, created_at`
	conferenceAttendeeColumns = `id, conference_id, user_id, created_at`
)

type conferenceRepo struct{ q querier }

func (r conferenceRepo) Create(ctx context.Context, c *entities.Conference) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO conferences (id, name, description, start_date, end_date, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.Description, timeToTimestamptz(c.StartDate), timeToTimestamptz(c.EndDate),
		c.CreatedBy, timeToTimestamptz(c.CreatedAt))
	if err != nil {
		return mapError("create conference", err)
	}
	return nil
}

func (r conferenceRepo) FindByID(ctx context.Context, id string) (*entities.Conference, error) {
	return queryOne(ctx, r.q, "get conference", conferenceToDomain,
		`SELECT `+conferenceColumns+` FROM conferences WHERE id = $1`, id)
}

func (r conferenceRepo) ListByStartDesc(ctx context.Context) ([]entities.Conference, error) {
	return queryAll(ctx, r.q, "list conferences", conferenceToDomain,
		`SELECT `+conferenceColumns+` FROM conferences ORDER BY start_date DESC, seq`)
}

type conferenceAttendeeRepo struct{ q querier }

func (r conferenceAttendeeRepo) Create(ctx context.Context, a *entities.ConferenceAttendee) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO conference_attendees (id, conference_id, user_id, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID, a.ConferenceID, a.UserID, timeToTimestamptz(a.CreatedAt))
	if err != nil {
		return mapError("create conference attendee", err)
	}
	return nil
}

func (r conferenceAttendeeRepo) FindByConferenceAndUser(ctx context.Context, conferenceID, userID string) (*entities.ConferenceAttendee, error) {
	return queryOne(ctx, r.q, "get conference attendee", conferenceAttendeeToDomain,
		`SELECT `+conferenceAttendeeColumns+` FROM conference_attendees WHERE conference_id = $1 AND user_id = $2`,
		conferenceID, userID)
}

func (r conferenceAttendeeRepo) ListByConference(ctx context.Context, conferenceID string) ([]entities.ConferenceAttendee, error) {
	return queryAll(ctx, r.q, "list conference attendees", conferenceAttendeeToDomain,
		`SELECT `+conferenceAttendeeColumns+` FROM conference_attendees WHERE conference_id = $1 ORDER BY seq`,
		conferenceID)
}

func (r conferenceAttendeeRepo) ListByUser(ctx context.Context, userID string) ([]entities.ConferenceAttendee, error) {
	return queryAll(ctx, r.q, "list conferences of user", conferenceAttendeeToDomain,
		`SELECT `+conferenceAttendeeColumns+` FROM conference_attendees WHERE user_id = $1 ORDER BY seq`,
		userID)
}

func (r conferenceAttendeeRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM conference_attendees WHERE id = $1`, id)
	return affectedOne("delete conference attendee", tag, err)
}
