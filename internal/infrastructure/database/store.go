// Package database implements the storage contract on PostgreSQL with pgx.
package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"openconference/internal/ports/output"
)

var _ output.Store = (*Store)(nil)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool *pgxpool.Pool
	q    querier
	inTx bool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, q: pool}
}

// WithinTx runs fn in one database transaction. Calls nested inside fn reuse
// the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(tx output.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&Store{pool: s.pool, q: tx, inTx: true})
	})
}

func (s *Store) Users() output.UserRepository { return userRepo{s.q} }

func (s *Store) Conferences() output.ConferenceRepository { return conferenceRepo{s.q} }

func (s *Store) ConferenceAttendees() output.ConferenceAttendeeRepository {
	return conferenceAttendeeRepo{s.q}
}

func (s *Store) Meetings() output.MeetingRepository { return meetingRepo{s.q} }

func (s *Store) MeetingAttendees() output.MeetingAttendeeRepository {
	return meetingAttendeeRepo{s.q}
}
