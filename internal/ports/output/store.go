package output

import "context"

// Store is the storage collaborator. Every repository obtained from a Store
// handed to a WithinTx callback participates in that transaction.
type Store interface {
	Users() UserRepository
	Conferences() ConferenceRepository
	ConferenceAttendees() ConferenceAttendeeRepository
	Meetings() MeetingRepository
	MeetingAttendees() MeetingAttendeeRepository

	// WithinTx runs fn atomically: either every write fn performs becomes
	// visible together, or none does. A non-nil error from fn rolls back.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}
