package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"openconference/internal/domain"
	"openconference/internal/domain/entities"
	"openconference/internal/ports/input"
	"openconference/internal/ports/output"
)

var _ input.MeetingUseCase = (*MeetingService)(nil)

// MeetingService owns meetings and the invitation state machine:
//
//	(create)  -> owner    (never changes, never leaves)
//	(invite)  -> pending  -> accepted | rejected  (Respond)
//	(join)    -> accepted                          (JoinPublic, public only)
//	non-owner -> deleted                           (Leave)
type MeetingService struct {
	store       output.Store
	identity    *IdentityService
	projector   *Projector
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

func NewMeetingService(store output.Store, identity *IdentityService, projector *Projector, opts ...Option) *MeetingService {
	o := buildOptions(opts)
	return &MeetingService{
		store:       store,
		identity:    identity,
		projector:   projector,
		idGenerator: o.idGenerator,
		now:         o.now,
		logger:      o.logger,
	}
}

// Create inserts the meeting, the caller's owner row and one pending row per
// distinct invitee, all in one transaction. The caller must attend the
// conference.
func (s *MeetingService) Create(ctx context.Context, in input.CreateMeetingInput) (id string, err error) {
	logger := serviceLogger(ctx, s.logger, "MeetingService", "Create", "conference_id", in.ConferenceID)
	defer func() { logOutcome(ctx, logger.With("meeting_id", id), err, "meeting created") }()

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	vErr := &domain.ValidationError{}
	if strings.TrimSpace(in.ConferenceID) == "" {
		vErr.Add("conference_id", "conference is required")
	}
	if title == "" {
		vErr.Add("title", "title is required")
	} else {
		checkLength(vErr, "title", title, maxTitleLength)
	}
	checkLength(vErr, "description", description, maxDescriptionLength)
	if vErr.HasErrors() {
		return "", vErr
	}

	err = s.store.WithinTx(ctx, func(tx output.Store) error {
		user, err := s.identity.Resolve(ctx, tx)
		if err != nil {
			return err
		}
		if err := requireConferenceMember(ctx, tx, in.ConferenceID, user.ID); err != nil {
			return err
		}

		invitees, err := distinctInvitees(ctx, tx, in.InviteeUserIDs, user.ID)
		if err != nil {
			return err
		}

		now := s.now()
		meeting := &entities.Meeting{
			ID:           s.idGenerator(),
			ConferenceID: in.ConferenceID,
			Title:        title,
			Description:  description,
			StartTime:    in.StartTime,
			EndTime:      in.EndTime,
			IsPublic:     in.IsPublic,
			CreatedBy:    user.ID,
			CreatedAt:    now,
		}
		if err := tx.Meetings().Create(ctx, meeting); err != nil {
			return fmt.Errorf("create meeting: %w", err)
		}

		if err := s.insertAttendee(ctx, tx, meeting.ID, user.ID, domain.StatusOwner, now); err != nil {
			return fmt.Errorf("create owner: %w", err)
		}
		for _, inviteeID := range invitees {
			if err := s.insertAttendee(ctx, tx, meeting.ID, inviteeID, domain.StatusPending, now); err != nil {
				return fmt.Errorf("invite %s: %w", inviteeID, err)
			}
		}
		id = meeting.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Respond answers an invitation with accepted or rejected.
func (s *MeetingService) Respond(ctx context.Context, meetingID string, status domain.AttendeeStatus) (err error) {
	logger := serviceLogger(ctx, s.logger, "MeetingService", "Respond", "meeting_id", meetingID, "status", string(status))
	defer func() { logOutcome(ctx, logger, err, "invitation answered") }()

	if status != domain.StatusAccepted && status != domain.StatusRejected {
		return domain.ErrInvalidStatus
	}

	return s.store.WithinTx(ctx, func(tx output.Store) error {
		user, err := s.identity.Resolve(ctx, tx)
		if err != nil {
			return err
		}
		row, err := tx.MeetingAttendees().FindByMeetingAndUser(ctx, meetingID, user.ID)
		if errors.Is(err, output.ErrNotFound) {
			return domain.ErrNotInvited
		}
		if err != nil {
			return fmt.Errorf("get meeting attendee: %w", err)
		}
		if row.IsOwner() {
			return domain.ErrOwnerImmutable
		}
		if err := tx.MeetingAttendees().UpdateStatus(ctx, row.ID, status, s.now()); err != nil {
			if errors.Is(err, output.ErrNotFound) {
				return domain.ErrNotInvited
			}
			return fmt.Errorf("update meeting attendee: %w", err)
		}
		return nil
	})
}

// JoinPublic lets a conference attendee join a public meeting directly as
// accepted, skipping the pending stage.
func (s *MeetingService) JoinPublic(ctx context.Context, meetingID string) (err error) {
	logger := serviceLogger(ctx, s.logger, "MeetingService", "JoinPublic", "meeting_id", meetingID)
	defer func() { logOutcome(ctx, logger, err, "meeting joined") }()

	return s.store.WithinTx(ctx, func(tx output.Store) error {
		user, err := s.identity.Resolve(ctx, tx)
		if err != nil {
			return err
		}
		meeting, err := tx.Meetings().FindByID(ctx, meetingID)
		if errors.Is(err, output.ErrNotFound) {
			return domain.ErrMeetingNotFound
		}
		if err != nil {
			return fmt.Errorf("get meeting: %w", err)
		}
		if !meeting.IsPublic {
			return domain.ErrMeetingNotPublic
		}
		if err := requireConferenceMember(ctx, tx, meeting.ConferenceID, user.ID); err != nil {
			return err
		}

		existing, err := tx.MeetingAttendees().FindByMeetingAndUser(ctx, meetingID, user.ID)
		if err != nil && !errors.Is(err, output.ErrNotFound) {
			return fmt.Errorf("get meeting attendee: %w", err)
		}
		if existing != nil {
			return domain.ErrAlreadyJoined
		}

		if err := s.insertAttendee(ctx, tx, meetingID, user.ID, domain.StatusAccepted, s.now()); err != nil {
			if errors.Is(err, output.ErrDuplicate) {
				return domain.ErrAlreadyJoined
			}
			return fmt.Errorf("create meeting attendee: %w", err)
		}
		return nil
	})
}

// Leave deletes the caller's row. The owner can never leave.
func (s *MeetingService) Leave(ctx context.Context, meetingID string) (err error) {
	logger := serviceLogger(ctx, s.logger, "MeetingService", "Leave", "meeting_id", meetingID)
	defer func() { logOutcome(ctx, logger, err, "meeting left") }()

	return s.store.WithinTx(ctx, func(tx output.Store) error {
		user, err := s.identity.Resolve(ctx, tx)
		if err != nil {
			return err
		}
		row, err := tx.MeetingAttendees().FindByMeetingAndUser(ctx, meetingID, user.ID)
		if errors.Is(err, output.ErrNotFound) {
			return domain.ErrNotInMeeting
		}
		if err != nil {
			return fmt.Errorf("get meeting attendee: %w", err)
		}
		if row.IsOwner() {
			return domain.ErrOwnerCannotLeave
		}
		if err := tx.MeetingAttendees().Delete(ctx, row.ID); err != nil {
			if errors.Is(err, output.ErrNotFound) {
				return domain.ErrNotInMeeting
			}
			return fmt.Errorf("delete meeting attendee: %w", err)
		}
		return nil
	})
}

func (s *MeetingService) Get(ctx context.Context, meetingID string) (*input.MeetingDetail, error) {
	return s.projector.Meeting(ctx, meetingID)
}

func (s *MeetingService) PublicMeetings(ctx context.Context, conferenceID string) ([]input.MeetingSummary, error) {
	return s.projector.PublicMeetings(ctx, conferenceID)
}

func (s *MeetingService) MyMeetings(ctx context.Context, conferenceID string) ([]input.MyMeeting, error) {
	return s.projector.MyMeetings(ctx, conferenceID)
}

func (s *MeetingService) insertAttendee(ctx context.Context, tx output.Store, meetingID, userID string, status domain.AttendeeStatus, at time.Time) error {
	return tx.MeetingAttendees().Create(ctx, &entities.MeetingAttendee{
		ID:        s.idGenerator(),
		MeetingID: meetingID,
		UserID:    userID,
		Status:    status,
		CreatedAt: at,
		UpdatedAt: at,
	})
}

func requireConferenceMember(ctx context.Context, tx output.Store, conferenceID, userID string) error {
	_, err := tx.ConferenceAttendees().FindByConferenceAndUser(ctx, conferenceID, userID)
	if errors.Is(err, output.ErrNotFound) {
		return domain.ErrNotConferenceMember
	}
	if err != nil {
		return fmt.Errorf("get conference attendee: %w", err)
	}
	return nil
}

// distinctInvitees drops blanks, repeats and the creator (already the owner),
// and checks that every remaining id names an existing user.
func distinctInvitees(ctx context.Context, tx output.Store, ids []string, creatorID string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || id == creatorID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if _, err := tx.Users().FindByID(ctx, id); err != nil {
			if errors.Is(err, output.ErrNotFound) {
				return nil, domain.ErrUserNotFound
			}
			return nil, fmt.Errorf("get invitee: %w", err)
		}
		out = append(out, id)
	}
	return out, nil
}
