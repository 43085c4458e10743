package memory

import (
	"context"
	"sort"
	"time"

	"openconference/internal/domain"
	"openconference/internal/domain/entities"
	"openconference/internal/ports/output"
)

type meetingRepo struct{ v *view }

func (r meetingRepo) Create(_ context.Context, meeting *entities.Meeting) error {
	return r.v.write(func(t *tables) error {
		if _, ok := t.conferences[meeting.ConferenceID]; !ok {
			return output.ErrForeignKey
		}
		if _, ok := t.meetings[meeting.ID]; ok {
			return output.ErrDuplicate
		}
		t.meetings[meeting.ID] = row[entities.Meeting]{value: *meeting, seq: t.next()}
		return nil
	})
}

func (r meetingRepo) FindByID(_ context.Context, id string) (*entities.Meeting, error) {
	var out *entities.Meeting
	err := r.v.read(func(t *tables) error {
		m, ok := t.meetings[id]
		if !ok {
			return output.ErrNotFound
		}
		value := m.value
		out = &value
		return nil
	})
	return out, err
}

func (r meetingRepo) ListByConference(_ context.Context, conferenceID string) ([]entities.Meeting, error) {
	var out []entities.Meeting
	err := r.v.read(func(t *tables) error {
		out = filterRows(t.meetings, func(m entities.Meeting) bool { return m.ConferenceID == conferenceID })
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, err
}

type meetingAttendeeRepo struct{ v *view }

func (r meetingAttendeeRepo) Create(_ context.Context, attendee *entities.MeetingAttendee) error {
	return r.v.write(func(t *tables) error {
		if _, ok := t.meetings[attendee.MeetingID]; !ok {
			return output.ErrForeignKey
		}
		if _, ok := t.meetingAttendees[attendee.ID]; ok {
			return output.ErrDuplicate
		}
		for _, existing := range t.meetingAttendees {
			if existing.value.MeetingID != attendee.MeetingID {
				continue
			}
			if existing.value.UserID == attendee.UserID {
				return output.ErrDuplicate
			}
			if attendee.Status == domain.StatusOwner && existing.value.Status == domain.StatusOwner {
				return output.ErrDuplicate
			}
		}
		t.meetingAttendees[attendee.ID] = row[entities.MeetingAttendee]{value: *attendee, seq: t.next()}
		return nil
	})
}

func (r meetingAttendeeRepo) FindByMeetingAndUser(_ context.Context, meetingID, userID string) (*entities.MeetingAttendee, error) {
	var out *entities.MeetingAttendee
	err := r.v.read(func(t *tables) error {
		for _, a := range t.meetingAttendees {
			if a.value.MeetingID == meetingID && a.value.UserID == userID {
				value := a.value
				out = &value
				return nil
			}
		}
		return output.ErrNotFound
	})
	return out, err
}

func (r meetingAttendeeRepo) ListByMeeting(_ context.Context, meetingID string) ([]entities.MeetingAttendee, error) {
	var out []entities.MeetingAttendee
	err := r.v.read(func(t *tables) error {
		out = filterRows(t.meetingAttendees, func(a entities.MeetingAttendee) bool { return a.MeetingID == meetingID })
		return nil
	})
	return out, err
}

func (r meetingAttendeeRepo) ListByUser(_ context.Context, userID string) ([]entities.MeetingAttendee, error) {
	var out []entities.MeetingAttendee
	err := r.v.read(func(t *tables) error {
		out = filterRows(t.meetingAttendees, func(a entities.MeetingAttendee) bool { return a.UserID == userID })
		return nil
	})
	return out, err
}

func (r meetingAttendeeRepo) CountByMeeting(_ context.Context, meetingID string) (int64, error) {
	var n int64
	err := r.v.read(func(t *tables) error {
		for _, a := range t.meetingAttendees {
			if a.value.MeetingID == meetingID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r meetingAttendeeRepo) UpdateStatus(_ context.Context, id string, status domain.AttendeeStatus, at time.Time) error {
	return r.v.write(func(t *tables) error {
		existing, ok := t.meetingAttendees[id]
		if !ok {
			return output.ErrNotFound
		}
		existing.value.Status = status
		existing.value.UpdatedAt = at
		t.meetingAttendees[id] = existing
		return nil
	})
}

func (r meetingAttendeeRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(t *tables) error {
		if _, ok := t.meetingAttendees[id]; !ok {
			return output.ErrNotFound
		}
		delete(t.meetingAttendees, id)
		return nil
	})
}
