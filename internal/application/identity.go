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

const (
	maxNameLength        = 100
	maxBioLength         = 2000
	maxTitleLength       = 200
	maxDescriptionLength = 4000
)

// checkLength records a field error when value is longer than max runes.
func checkLength(vErr *domain.ValidationError, field, value string, max int) {
	if len([]rune(value)) > max {
		vErr.Add(field, fmt.Sprintf("%s must be at most %d characters", field, max))
	}
}

var _ input.IdentityUseCase = (*IdentityService)(nil)

// IdentityService maps the verified subject of a call to an internal user.
// It is the single trust boundary: every mutation starts with Resolve.
type IdentityService struct {
	store          output.Store
	idGenerator    func() string
	now            func() time.Time
	logger         *slog.Logger
	testingEnabled bool
}

func NewIdentityService(store output.Store, opts ...Option) *IdentityService {
	o := buildOptions(opts)
	return &IdentityService{
		store:          store,
		idGenerator:    o.idGenerator,
		now:            o.now,
		logger:         o.logger,
		testingEnabled: o.testingEnabled,
	}
}

// Resolve returns the user for the subject in ctx, creating a minimal record
// on first sight. tx must be the transaction of the calling mutation.
func (s *IdentityService) Resolve(ctx context.Context, tx output.Store) (*entities.User, error) {
	subject, ok := auth.SubjectFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	user, err := tx.Users().FindBySubject(ctx, subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, output.ErrNotFound) {
		return nil, fmt.Errorf("find user by subject: %w", err)
	}

	now := s.now()
	user = &entities.User{
		ID:        s.idGenerator(),
		Subject:   subject,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.Users().CreateIfAbsent(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Lookup is the read-only counterpart of Resolve for query paths. It returns
// a nil user and nil error for a verified subject that was never seen.
func (s *IdentityService) Lookup(ctx context.Context) (*entities.User, error) {
	subject, ok := auth.SubjectFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	user, err := s.store.Users().FindBySubject(ctx, subject)
	if errors.Is(err, output.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by subject: %w", err)
	}
	return user, nil
}

// CurrentUser resolves the caller, creating the record if needed.
func (s *IdentityService) CurrentUser(ctx context.Context) (user *entities.User, err error) {
	err = s.store.WithinTx(ctx, func(tx output.Store) error {
		user, err = s.Resolve(ctx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile completes or edits the caller's display name and bio.
func (s *IdentityService) UpdateProfile(ctx context.Context, name, bio string) (user *entities.User, err error) {
	logger := serviceLogger(ctx, s.logger, "IdentityService", "UpdateProfile")
	defer func() { logOutcome(ctx, logger, err, "profile updated") }()

	name = strings.TrimSpace(name)
	bio = strings.TrimSpace(bio)
	vErr := &domain.ValidationError{}
	if name == "" {
		vErr.Add("name", "name is required")
	} else {
		checkLength(vErr, "name", name, maxNameLength)
	}
	checkLength(vErr, "bio", bio, maxBioLength)
	if vErr.HasErrors() {
		return nil, vErr
	}

	err = s.store.WithinTx(ctx, func(tx output.Store) error {
		u, err := s.Resolve(ctx, tx)
		if err != nil {
			return err
		}
		u.Name = name
		u.Bio = bio
		u.UpdatedAt = s.now()
		if err := tx.Users().Update(ctx, u); err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteTestUser removes the user with the given display name. It only works
// when test support is enabled and is a no-op when no such user exists.
func (s *IdentityService) DeleteTestUser(ctx context.Context, name string) (err error) {
	if !s.testingEnabled {
		return domain.ErrTestingDisabled
	}
	logger := serviceLogger(ctx, s.logger, "IdentityService", "DeleteTestUser", "name", name)
	defer func() { logOutcome(ctx, logger, err, "test user deleted") }()

	return s.store.WithinTx(ctx, func(tx output.Store) error {
		user, err := tx.Users().FindByName(ctx, name)
		if errors.Is(err, output.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("find user by name: %w", err)
		}
		if err := tx.Users().Delete(ctx, user.ID); err != nil && !errors.Is(err, output.ErrNotFound) {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}
