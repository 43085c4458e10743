// Package memory is an in-process implementation of the storage contract.
// It enforces the same uniqueness and reference rules as the PostgreSQL
// schema and runs each transaction against a private copy that is published
// only on success.
package memory

import (
	"context"
	"sync"

	"openconference/internal/domain/entities"
	"openconference/internal/ports/output"
)

var _ output.Store = (*Store)(nil)

type row[T any] struct {
	value T
	seq   int64
}

type tables struct {
	seq              int64
	users            map[string]row[entities.User]
	conferences      map[string]row[entities.Conference]
	confAttendees    map[string]row[entities.ConferenceAttendee]
	meetings         map[string]row[entities.Meeting]
	meetingAttendees map[string]row[entities.MeetingAttendee]
}

func newTables() *tables {
	return &tables{
		users:            make(map[string]row[entities.User]),
		conferences:      make(map[string]row[entities.Conference]),
		confAttendees:    make(map[string]row[entities.ConferenceAttendee]),
		meetings:         make(map[string]row[entities.Meeting]),
		meetingAttendees: make(map[string]row[entities.MeetingAttendee]),
	}
}

func (t *tables) next() int64 {
	t.seq++
	return t.seq
}

// clone copies every table. Rows are plain values so a map copy is deep.
func (t *tables) clone() *tables {
	return &tables{
		seq:              t.seq,
		users:            cloneMap(t.users),
		conferences:      cloneMap(t.conferences),
		confAttendees:    cloneMap(t.confAttendees),
		meetings:         cloneMap(t.meetings),
		meetingAttendees: cloneMap(t.meetingAttendees),
	}
}

func cloneMap[T any](m map[string]row[T]) map[string]row[T] {
	out := make(map[string]row[T], len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type state struct {
	mu   sync.RWMutex
	data *tables
}

// view is either the committed store (tx == nil) or one open transaction.
type view struct {
	state *state
	tx    *tables
}

// Store is safe for concurrent use. Transactions are serialized.
type Store struct {
	*view
}

func New() *Store {
	return &Store{view: &view{state: &state{data: newTables()}}}
}

func (v *view) read(fn func(t *tables) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.state.mu.RLock()
	defer v.state.mu.RUnlock()
	return fn(v.state.data)
}

func (v *view) write(fn func(t *tables) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.state.mu.Lock()
	defer v.state.mu.Unlock()
	// Single statements are atomic too: apply to a copy, publish on success.
	work := v.state.data.clone()
	if err := fn(work); err != nil {
		return err
	}
	v.state.data = work
	return nil
}

func (v *view) WithinTx(ctx context.Context, fn func(tx output.Store) error) error {
	if v.tx != nil {
		return fn(v)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	v.state.mu.Lock()
	defer v.state.mu.Unlock()

	work := v.state.data.clone()
	if err := fn(&view{state: v.state, tx: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	v.state.data = work
	return nil
}

func (v *view) Users() output.UserRepository { return userRepo{v} }

func (v *view) Conferences() output.ConferenceRepository { return conferenceRepo{v} }

func (v *view) ConferenceAttendees() output.ConferenceAttendeeRepository {
	return conferenceAttendeeRepo{v}
}

func (v *view) Meetings() output.MeetingRepository { return meetingRepo{v} }

func (v *view) MeetingAttendees() output.MeetingAttendeeRepository { return meetingAttendeeRepo{v} }
