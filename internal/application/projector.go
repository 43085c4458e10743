package application

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"openconference/internal/domain"
	"openconference/internal/domain/entities"
	"openconference/internal/ports/input"
	"openconference/internal/ports/output"
)

// UnknownName replaces the display name of a missing or unnamed user.
const UnknownName = "Unknown"

// Projector assembles read models. It never writes, and counts are always
// recomputed from the attendee tables.
type Projector struct {
	store    output.Store
	identity *IdentityService
	fanout   int
}

func NewProjector(store output.Store, identity *IdentityService, opts ...Option) *Projector {
	o := buildOptions(opts)
	return &Projector{store: store, identity: identity, fanout: o.fanout}
}

// Conferences lists every conference, latest start first.
func (p *Projector) Conferences(ctx context.Context) ([]input.ConferenceView, error) {
	conferences, err := p.store.Conferences().ListByStartDesc(ctx)
	if err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}
	out := make([]input.ConferenceView, len(conferences))
	err = p.each(ctx, len(conferences), func(ctx context.Context, i int) error {
		name, _, err := p.userName(ctx, conferences[i].CreatedBy)
		if err != nil {
			return err
		}
		out[i] = input.ConferenceView{Conference: conferences[i], CreatorName: name}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Projector) Conference(ctx context.Context, conferenceID string) (*input.ConferenceView, error) {
	conference, err := p.store.Conferences().FindByID(ctx, conferenceID)
	if errors.Is(err, output.ErrNotFound) {
		return nil, domain.ErrConferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get conference: %w", err)
	}
	name, _, err := p.userName(ctx, conference.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &input.ConferenceView{Conference: *conference, CreatorName: name}, nil
}

// ConferenceAttendees returns the roster in join order.
func (p *Projector) ConferenceAttendees(ctx context.Context, conferenceID string) ([]input.AttendeeView, error) {
	attendees, err := p.store.ConferenceAttendees().ListByConference(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("list conference attendees: %w", err)
	}
	out := make([]input.AttendeeView, len(attendees))
	err = p.each(ctx, len(attendees), func(ctx context.Context, i int) error {
		name, bio, err := p.userName(ctx, attendees[i].UserID)
		if err != nil {
			return err
		}
		out[i] = input.AttendeeView{
			AttendeeID: attendees[i].ID,
			UserID:     attendees[i].UserID,
			Name:       name,
			Bio:        bio,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Projector) Meeting(ctx context.Context, meetingID string) (*input.MeetingDetail, error) {
	meeting, err := p.store.Meetings().FindByID(ctx, meetingID)
	if errors.Is(err, output.ErrNotFound) {
		return nil, domain.ErrMeetingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get meeting: %w", err)
	}
	creatorName, _, err := p.userName(ctx, meeting.CreatedBy)
	if err != nil {
		return nil, err
	}
	attendees, err := p.store.MeetingAttendees().ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("list meeting attendees: %w", err)
	}
	views := make([]input.MeetingAttendeeView, len(attendees))
	err = p.each(ctx, len(attendees), func(ctx context.Context, i int) error {
		name, _, err := p.userName(ctx, attendees[i].UserID)
		if err != nil {
			return err
		}
		views[i] = input.MeetingAttendeeView{
			UserID: attendees[i].UserID,
			Status: attendees[i].Status,
			Name:   name,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &input.MeetingDetail{Meeting: *meeting, CreatorName: creatorName, Attendees: views}, nil
}

// PublicMeetings lists the public meetings of a conference by start time.
func (p *Projector) PublicMeetings(ctx context.Context, conferenceID string) ([]input.MeetingSummary, error) {
	meetings, err := p.store.Meetings().ListByConference(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	public := make([]entities.Meeting, 0, len(meetings))
	for _, m := range meetings {
		if m.IsPublic {
			public = append(public, m)
		}
	}
	out := make([]input.MeetingSummary, len(public))
	err = p.each(ctx, len(public), func(ctx context.Context, i int) error {
		summary, err := p.summarize(ctx, public[i])
		if err != nil {
			return err
		}
		out[i] = summary
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MyMeetings lists every meeting of the conference the caller has a row in,
// whatever its status. An unknown subject simply has none.
func (p *Projector) MyMeetings(ctx context.Context, conferenceID string) ([]input.MyMeeting, error) {
	user, err := p.identity.Lookup(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []input.MyMeeting{}, nil
	}

	rows, err := p.store.MeetingAttendees().ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	found := make([]*input.MyMeeting, len(rows))
	err = p.each(ctx, len(rows), func(ctx context.Context, i int) error {
		meeting, err := p.store.Meetings().FindByID(ctx, rows[i].MeetingID)
		if errors.Is(err, output.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get meeting: %w", err)
		}
		if meeting.ConferenceID != conferenceID {
			return nil
		}
		summary, err := p.summarize(ctx, *meeting)
		if err != nil {
			return err
		}
		found[i] = &input.MyMeeting{MeetingSummary: summary, MyStatus: rows[i].Status}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]input.MyMeeting, 0, len(found))
	for _, m := range found {
		if m != nil {
			out = append(out, *m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (p *Projector) summarize(ctx context.Context, meeting entities.Meeting) (input.MeetingSummary, error) {
	name, _, err := p.userName(ctx, meeting.CreatedBy)
	if err != nil {
		return input.MeetingSummary{}, err
	}
	count, err := p.store.MeetingAttendees().CountByMeeting(ctx, meeting.ID)
	if err != nil {
		return input.MeetingSummary{}, fmt.Errorf("count meeting attendees: %w", err)
	}
	return input.MeetingSummary{Meeting: meeting, CreatorName: name, AttendeeCount: int(count)}, nil
}

// userName resolves a referenced user's display name and bio. A missing or
// unnamed user is secondary data and renders as UnknownName.
func (p *Projector) userName(ctx context.Context, userID string) (string, string, error) {
	user, err := p.store.Users().FindByID(ctx, userID)
	if errors.Is(err, output.ErrNotFound) {
		return UnknownName, "", nil
	}
	if err != nil {
		return "", "", fmt.Errorf("get user: %w", err)
	}
	if user.Name == "" {
		return UnknownName, user.Bio, nil
	}
	return user.Name, user.Bio, nil
}

// each runs fn for every index with at most p.fanout calls in flight. Results
// are written by index, so callers keep row order.
func (p *Projector) each(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.fanout)
	for i := 0; i < n; i++ {
		g.Go(func() error { return fn(gctx, i) })
	}
	return g.Wait()
}
