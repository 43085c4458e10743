package memory

import (
	"context"
	"sort"

	"openconference/internal/domain/entities"
	"openconference/internal/ports/output"
)

type conferenceRepo struct{ v *view }

func (r conferenceRepo) Create(_ context.Context, conference *entities.Conference) error {
	return r.v.write(func(t *tables) error {
		if _, ok := t.conferences[conference.ID]; ok {
			return output.ErrDuplicate
		}
		t.conferences[conference.ID] = row[entities.Conference]{value: *conference, seq: t.next()}
		return nil
	})
}

func (r conferenceRepo) FindByID(_ context.Context, id string) (*entities.Conference, error) {
	var out *entities.Conference
	err := r.v.read(func(t *tables) error {
		c, ok := t.conferences[id]
		if !ok {
			return output.ErrNotFound
		}
		value := c.value
		out = &value
		return nil
	})
	return out, err
}

func (r conferenceRepo) ListByStartDesc(_ context.Context) ([]entities.Conference, error) {
	var out []entities.Conference
	err := r.v.read(func(t *tables) error {
		out = sortedRows(t.conferences)
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, err
}

type conferenceAttendeeRepo struct{ v *view }

func (r conferenceAttendeeRepo) Create(_ context.Context, attendee *entities.ConferenceAttendee) error {
	return r.v.write(func(t *tables) error {
		if _, ok := t.conferences[attendee.ConferenceID]; !ok {
			return output.ErrForeignKey
		}
		if _, ok := t.confAttendees[attendee.ID]; ok {
			return output.ErrDuplicate
		}
		for _, existing := range t.confAttendees {
			if existing.value.ConferenceID == attendee.ConferenceID && existing.value.UserID == attendee.UserID {
				return output.ErrDuplicate
			}
		}
		t.confAttendees[attendee.ID] = row[entities.ConferenceAttendee]{value: *attendee, seq: t.next()}
		return nil
	})
}

func (r conferenceAttendeeRepo) FindByConferenceAndUser(_ context.Context, conferenceID, userID string) (*entities.ConferenceAttendee, error) {
	var out *entities.ConferenceAttendee
	err := r.v.read(func(t *tables) error {
		for _, a := range t.confAttendees {
			if a.value.ConferenceID == conferenceID && a.value.UserID == userID {
				value := a.value
				out = &value
				return nil
			}
		}
		return output.ErrNotFound
	})
	return out, err
}

func (r conferenceAttendeeRepo) ListByConference(_ context.Context, conferenceID string) ([]entities.ConferenceAttendee, error) {
	var out []entities.ConferenceAttendee
	err := r.v.read(func(t *tables) error {
		out = filterRows(t.confAttendees, func(a entities.ConferenceAttendee) bool { return a.ConferenceID == conferenceID })
		return nil
	})
	return out, err
}

func (r conferenceAttendeeRepo) ListByUser(_ context.Context, userID string) ([]entities.ConferenceAttendee, error) {
	var out []entities.ConferenceAttendee
	err := r.v.read(func(t *tables) error {
		out = filterRows(t.confAttendees, func(a entities.ConferenceAttendee) bool { return a.UserID == userID })
		return nil
	})
	return out, err
}

func (r conferenceAttendeeRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(t *tables) error {
		if _, ok := t.confAttendees[id]; !ok {
			return output.ErrNotFound
		}
		delete(t.confAttendees, id)
		return nil
	})
}
