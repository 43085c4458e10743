package domain

import (
	"errors"
	"sort"
	"strings"
)

// Error is a caller-visible failure with a stable machine code.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Domain errors.
var (
	ErrUnauthenticated     = newError("unauthenticated", "not authenticated")
	ErrAlreadyMember       = newError("already_member", "already joined this conference")
	ErrAlreadyJoined       = newError("already_joined", "already joined this meeting")
	ErrNotMember           = newError("not_member", "not a member of this conference")
	ErrNotInMeeting        = newError("not_in_meeting", "not part of this meeting")
	ErrNotInvited          = newError("not_invited", "not invited to this meeting")
	ErrNotConferenceMember = newError("not_conference_member", "must be a conference attendee")
	ErrOwnerImmutable      = newError("owner_immutable", "cannot change owner status")
	ErrOwnerCannotLeave    = newError("owner_cannot_leave", "meeting owner cannot leave the meeting")
	ErrMeetingNotFound     = newError("meeting_not_found", "meeting not found")
	ErrMeetingNotPublic    = newError("meeting_not_public", "meeting is not public")
	ErrConferenceNotFound  = newError("conference_not_found", "conference not found")
	ErrUserNotFound        = newError("user_not_found", "user not found")
	ErrInvalidStatus       = newError("invalid_status", "status must be accepted or rejected")
	ErrTestingDisabled     = newError("testing_disabled", "test-only operation in non-test environment")
)

// CodeValidation is reported for field level input problems.
const CodeValidation = "validation"

// Code returns the machine code of a domain error anywhere in err's chain,
// or "" when err carries none.
func Code(err error) string {
	if err == nil {
		return ""
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return CodeValidation
	}
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ""
}

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// Add records a field level validation error.
func (v *ValidationError) Add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
