package domain

// AttendeeStatus is the invitation state of a meeting attendee row.
type AttendeeStatus string

const (
	StatusOwner    AttendeeStatus = "owner"
	StatusAccepted AttendeeStatus = "accepted"
	StatusPending  AttendeeStatus = "pending"
	StatusRejected AttendeeStatus = "rejected"
)

// Valid reports whether s is one of the four known states.
func (s AttendeeStatus) Valid() bool {
	switch s {
	case StatusOwner, StatusAccepted, StatusPending, StatusRejected:
		return true
	}
	return false
}

// ParseResponseStatus accepts only the states an invitee may answer with.
func ParseResponseStatus(raw string) (AttendeeStatus, error) {
	switch s := AttendeeStatus(raw); s {
	case StatusAccepted, StatusRejected:
		return s, nil
	}
	return "", ErrInvalidStatus
}
