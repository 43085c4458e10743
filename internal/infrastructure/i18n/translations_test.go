package i18n

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"openconference/internal/domain"
)

func newTestTranslator() *Translator {
	return NewTranslator("en", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestTranslator_T(t *testing.T) {
	tr := newTestTranslator()

	tests := []struct {
		name   string
		locale string
		key    string
		data   map[string]any
		want   string
	}{
		{"english", "en", "meeting.joined", nil, "You joined the meeting."},
		{"french", "fr", "meeting.joined", nil, "Vous avez rejoint la réunion."},
		{"regional variant", "fr-CA", "button.leave", nil, "Quitter"},
		{"unknown locale falls back", "de", "button.leave", nil, "Leave"},
		{"template data", "en", "conference.joined", map[string]any{"Name": "GopherCon"}, "You joined GopherCon."},
		{"missing key", "en", "nope", nil, "nope"},
		{"empty key", "en", "", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.T(tt.locale, tt.key, tt.data); got != tt.want {
				t.Errorf("T(%q, %q) = %q, want %q", tt.locale, tt.key, got, tt.want)
			}
		})
	}
}

func TestTranslator_ErrorMessage(t *testing.T) {
	tr := newTestTranslator()

	if got := tr.ErrorMessage("en", fmt.Errorf("wrapped: %w", domain.ErrOwnerCannotLeave)); got != "The meeting owner cannot leave the meeting." {
		t.Errorf("Unexpected message: %q", got)
	}
	if got := tr.ErrorMessage("fr", domain.ErrMeetingNotPublic); got != "Cette réunion n'est pas publique." {
		t.Errorf("Unexpected message: %q", got)
	}
	if got := tr.ErrorMessage("en", &domain.ValidationError{}); got != "Some fields are invalid." {
		t.Errorf("Unexpected message: %q", got)
	}
	if got := tr.ErrorMessage("en", errors.New("connection reset")); got != "Something went wrong. Please try again later." {
		t.Errorf("Unexpected message: %q", got)
	}
}

// Every domain code has a message in every catalog.
func TestTranslator_CatalogsCoverDomainErrors(t *testing.T) {
	tr := newTestTranslator()
	errs := []error{
		domain.ErrUnauthenticated, domain.ErrAlreadyMember, domain.ErrAlreadyJoined,
		domain.ErrNotMember, domain.ErrNotInMeeting, domain.ErrNotInvited,
		domain.ErrNotConferenceMember, domain.ErrOwnerImmutable, domain.ErrOwnerCannotLeave,
		domain.ErrMeetingNotFound, domain.ErrMeetingNotPublic, domain.ErrConferenceNotFound,
		domain.ErrUserNotFound, domain.ErrInvalidStatus, domain.ErrTestingDisabled,
	}
	for _, locale := range []string{"en", "fr"} {
		for _, err := range errs {
			key := "error." + domain.Code(err)
			if got := tr.ErrorMessage(locale, err); got == key {
				t.Errorf("%s: missing %s", locale, key)
			}
		}
	}
}
