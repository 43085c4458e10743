package database

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"openconference/internal/domain"
	"openconference/internal/domain/entities"
	"openconference/internal/ports/output"
)

// setupStore connects to TEST_DATABASE_URL, migrates and empties the schema.
// The tests are skipped when the variable is not set.
func setupStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := RunMigrations(dsn, logger); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, dsn, logger)
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	t.Cleanup(pool.Close)
	truncate(t, pool)
	return NewStore(pool)
}

func truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`TRUNCATE meeting_attendees, meetings, conference_attendees, conferences, users`)
	if err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
}

func TestStore_UserCreateIfAbsent(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	first := &entities.User{ID: uuid.NewString(), Subject: "discord:42", CreatedAt: now, UpdatedAt: now}
	if err := s.Users().CreateIfAbsent(ctx, first); err != nil {
		t.Fatalf("CreateIfAbsent failed: %v", err)
	}
	again := &entities.User{ID: uuid.NewString(), Subject: "discord:42", CreatedAt: now, UpdatedAt: now}
	if err := s.Users().CreateIfAbsent(ctx, again); err != nil {
		t.Fatalf("CreateIfAbsent failed: %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("Expected existing id %s, got %s", first.ID, again.ID)
	}
	if again.Name != "" {
		t.Errorf("Expected unset name, got %q", again.Name)
	}
}

func TestStore_ConstraintsMapToSentinels(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	now := time.Now()

	conf := &entities.Conference{ID: uuid.NewString(), Name: "GopherCon", StartDate: now, EndDate: now, CreatedBy: "u1", CreatedAt: now}
	if err := s.Conferences().Create(ctx, conf); err != nil {
		t.Fatalf("Create conference failed: %v", err)
	}
	attendee := &entities.ConferenceAttendee{ID: uuid.NewString(), ConferenceID: conf.ID, UserID: "u1", CreatedAt: now}
	if err := s.ConferenceAttendees().Create(ctx, attendee); err != nil {
		t.Fatalf("Create attendee failed: %v", err)
	}
	dup := &entities.ConferenceAttendee{ID: uuid.NewString(), ConferenceID: conf.ID, UserID: "u1", CreatedAt: now}
	if err := s.ConferenceAttendees().Create(ctx, dup); !errors.Is(err, output.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate, got %v", err)
	}
	orphan := &entities.ConferenceAttendee{ID: uuid.NewString(), ConferenceID: uuid.NewString(), UserID: "u1", CreatedAt: now}
	if err := s.ConferenceAttendees().Create(ctx, orphan); !errors.Is(err, output.ErrForeignKey) {
		t.Errorf("Expected ErrForeignKey, got %v", err)
	}

	meeting := &entities.Meeting{ID: uuid.NewString(), ConferenceID: conf.ID, Title: "Sync", StartTime: now, EndTime: now, CreatedBy: "u1", CreatedAt: now}
	if err := s.Meetings().Create(ctx, meeting); err != nil {
		t.Fatalf("Create meeting failed: %v", err)
	}
	owner := &entities.MeetingAttendee{ID: uuid.NewString(), MeetingID: meeting.ID, UserID: "u1", Status: domain.StatusOwner, CreatedAt: now, UpdatedAt: now}
	if err := s.MeetingAttendees().Create(ctx, owner); err != nil {
		t.Fatalf("Create owner failed: %v", err)
	}
	second := &entities.MeetingAttendee{ID: uuid.NewString(), MeetingID: meeting.ID, UserID: "u2", Status: domain.StatusOwner, CreatedAt: now, UpdatedAt: now}
	if err := s.MeetingAttendees().Create(ctx, second); !errors.Is(err, output.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate for second owner, got %v", err)
	}
	if _, err := s.Meetings().FindByID(ctx, uuid.NewString()); !errors.Is(err, output.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMeetingAttendeeRepo_UpdateStatusStampsTime(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	created := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	answered := created.Add(time.Hour)

	conf := &entities.Conference{ID: uuid.NewString(), Name: "GopherCon", StartDate: created, EndDate: created, CreatedBy: "u1", CreatedAt: created}
	if err := s.Conferences().Create(ctx, conf); err != nil {
		t.Fatalf("Create conference failed: %v", err)
	}
	meeting := &entities.Meeting{ID: uuid.NewString(), ConferenceID: conf.ID, Title: "Sync", StartTime: created, EndTime: created, CreatedBy: "u1", CreatedAt: created}
	if err := s.Meetings().Create(ctx, meeting); err != nil {
		t.Fatalf("Create meeting failed: %v", err)
	}
	row := &entities.MeetingAttendee{ID: uuid.NewString(), MeetingID: meeting.ID, UserID: "u2", Status: domain.StatusPending, CreatedAt: created, UpdatedAt: created}
	if err := s.MeetingAttendees().Create(ctx, row); err != nil {
		t.Fatalf("Create attendee failed: %v", err)
	}

	if err := s.MeetingAttendees().UpdateStatus(ctx, row.ID, domain.StatusAccepted, answered); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	got, err := s.MeetingAttendees().FindByMeetingAndUser(ctx, meeting.ID, "u2")
	if err != nil {
		t.Fatalf("FindByMeetingAndUser failed: %v", err)
	}
	if got.Status != domain.StatusAccepted || !got.UpdatedAt.Equal(answered) || !got.CreatedAt.Equal(created) {
		t.Errorf("Unexpected row after update: %+v", got)
	}
	if err := s.MeetingAttendees().UpdateStatus(ctx, uuid.NewString(), domain.StatusAccepted, answered); !errors.Is(err, output.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestStore_WithinTxRollsBack(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	now := time.Now()
	id := uuid.NewString()
	boom := errors.New("boom")

	err := s.WithinTx(ctx, func(tx output.Store) error {
		conf := &entities.Conference{ID: id, Name: "Rolled back", StartDate: now, EndDate: now, CreatedBy: "u1", CreatedAt: now}
		if err := tx.Conferences().Create(ctx, conf); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}
	if _, err := s.Conferences().FindByID(ctx, id); !errors.Is(err, output.ErrNotFound) {
		t.Errorf("Expected conference to be rolled back, got %v", err)
	}
}
