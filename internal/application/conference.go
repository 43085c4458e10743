package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"openconference/internal/auth"
	"openconference/internal/domain"
	"openconference/internal/domain/entities"
	"openconference/internal/ports/input"
	"openconference/internal/ports/output"
)

var _ input.ConferenceUseCase = (*ConferenceService)(nil)

// ConferenceService owns conferences and their attendee roster.
type ConferenceService struct {
	store       output.Store
	identity    *IdentityService
	projector   *Projector
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

func NewConferenceService(store output.Store, identity *IdentityService, projector *Projector, opts ...Option) *ConferenceService {
	o := buildOptions(opts)
	return &ConferenceService{
		store:       store,
		identity:    identity,
		projector:   projector,
		idGenerator: o.idGenerator,
		now:         o.now,
		logger:      o.logger,
	}
}

// Create inserts the conference and enrolls its creator in one transaction.
// Start and end are stored as given; no ordering between them is enforced.
func (s *ConferenceService) Create(ctx context.Context, in input.CreateConferenceInput) (id string, err error) {
	logger := serviceLogger(ctx, s.logger, "ConferenceService", "Create")
	defer func() { logOutcome(ctx, logger.With("conference_id", id), err, "conference created") }()

	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	vErr := &domain.ValidationError{}
	if name == "" {
		vErr.Add("name", "name is required")
	} else {
		checkLength(vErr, "name", name, maxTitleLength)
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
		now := s.now()
		conference := &entities.Conference{
			ID:          s.idGenerator(),
			Name:        name,
			Description: description,
			StartDate:   in.StartDate,
			EndDate:     in.EndDate,
			CreatedBy:   user.ID,
			CreatedAt:   now,
		}
		if err := tx.Conferences().Create(ctx, conference); err != nil {
			return fmt.Errorf("create conference: %w", err)
		}
		attendee := &entities.ConferenceAttendee{
			ID:           s.idGenerator(),
			ConferenceID: conference.ID,
			UserID:       user.ID,
			CreatedAt:    now,
		}
		if err := tx.ConferenceAttendees().Create(ctx, attendee); err != nil {
			return fmt.Errorf("enroll creator: %w", err)
		}
		id = conference.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Join adds the caller to the conference roster.
func (s *ConferenceService) Join(ctx context.Context, conferenceID string) (err error) {
	logger := serviceLogger(ctx, s.logger, "ConferenceService", "Join", "conference_id", conferenceID)
	defer func() { logOutcome(ctx, logger, err, "conference joined") }()

	return s.store.WithinTx(ctx, func(tx output.Store) error {
		user, err := s.identity.Resolve(ctx, tx)
		if err != nil {
			return err
		}
		if _, err := tx.Conferences().FindByID(ctx, conferenceID); err != nil {
			if errors.Is(err, output.ErrNotFound) {
				return domain.ErrConferenceNotFound
			}
			return fmt.Errorf("get conference: %w", err)
		}

		existing, err := tx.ConferenceAttendees().FindByConferenceAndUser(ctx, conferenceID, user.ID)
		if err != nil && !errors.Is(err, output.ErrNotFound) {
			return fmt.Errorf("get conference attendee: %w", err)
		}
		if existing != nil {
			return domain.ErrAlreadyMember
		}

		attendee := &entities.ConferenceAttendee{
			ID:           s.idGenerator(),
			ConferenceID: conferenceID,
			UserID:       user.ID,
			CreatedAt:    s.now(),
		}
		if err := tx.ConferenceAttendees().Create(ctx, attendee); err != nil {
			// A concurrent join won the race between our check and insert.
			if errors.Is(err, output.ErrDuplicate) {
				return domain.ErrAlreadyMember
			}
			return fmt.Errorf("create conference attendee: %w", err)
		}
		return nil
	})
}

// Leave removes the caller from the roster. The creator is not special-cased.
func (s *ConferenceService) Leave(ctx context.Context, conferenceID string) (err error) {
	logger := serviceLogger(ctx, s.logger, "ConferenceService", "Leave", "conference_id", conferenceID)
	defer func() { logOutcome(ctx, logger, err, "conference left") }()

	return s.store.WithinTx(ctx, func(tx output.Store) error {
		user, err := s.identity.Resolve(ctx, tx)
		if err != nil {
			return err
		}
		attendee, err := tx.ConferenceAttendees().FindByConferenceAndUser(ctx, conferenceID, user.ID)
		if errors.Is(err, output.ErrNotFound) {
			return domain.ErrNotMember
		}
		if err != nil {
			return fmt.Errorf("get conference attendee: %w", err)
		}
		if err := tx.ConferenceAttendees().Delete(ctx, attendee.ID); err != nil {
			if errors.Is(err, output.ErrNotFound) {
				return domain.ErrNotMember
			}
			return fmt.Errorf("delete conference attendee: %w", err)
		}
		return nil
	})
}

// IsAttending reports whether the caller holds a roster row. Anonymous and
// never-seen callers are simply not attending.
func (s *ConferenceService) IsAttending(ctx context.Context, conferenceID string) (bool, error) {
	if _, ok := auth.SubjectFromContext(ctx); !ok {
		return false, nil
	}
	user, err := s.identity.Lookup(ctx)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	_, err = s.store.ConferenceAttendees().FindByConferenceAndUser(ctx, conferenceID, user.ID)
	if errors.Is(err, output.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get conference attendee: %w", err)
	}
	return true, nil
}

func (s *ConferenceService) Get(ctx context.Context, conferenceID string) (*input.ConferenceView, error) {
	return s.projector.Conference(ctx, conferenceID)
}

func (s *ConferenceService) List(ctx context.Context) ([]input.ConferenceView, error) {
	return s.projector.Conferences(ctx)
}

func (s *ConferenceService) ListAttendees(ctx context.Context, conferenceID string) ([]input.AttendeeView, error) {
	return s.projector.ConferenceAttendees(ctx, conferenceID)
}
