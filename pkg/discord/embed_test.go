package discord

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"openconference/internal/domain"
	"openconference/internal/domain/entities"
	"openconference/internal/ports/input"
)

func keyOnly(key string, _ map[string]any) string { return key }

func TestConferenceListEmbed_Empty(t *testing.T) {
	embed := ConferenceListEmbed(nil, keyOnly)
	if embed.Description != "conference.list.empty" {
		t.Errorf("Expected empty marker, got %q", embed.Description)
	}
}

func TestMeetingEmbed(t *testing.T) {
	start := time.Unix(1_800_000_000, 0)
	detail := &input.MeetingDetail{
		Meeting:     entities.Meeting{ID: "m1", Title: "Sync", StartTime: start, EndTime: start.Add(time.Hour), IsPublic: true},
		CreatorName: "Ada",
		Attendees: []input.MeetingAttendeeView{
			{UserID: "u1", Status: domain.StatusOwner, Name: "Ada"},
			{UserID: "u2", Status: domain.StatusPending, Name: "Unknown"},
		},
	}
	embed := MeetingEmbed(detail, keyOnly)

	if embed.Fields[0].Value != "<t:1800000000:f> → <t:1800003600:f>" {
		t.Errorf("Unexpected time range %q", embed.Fields[0].Value)
	}
	if embed.Fields[2].Value != "visibility.public" {
		t.Errorf("Unexpected visibility %q", embed.Fields[2].Value)
	}
	if !strings.Contains(embed.Fields[3].Value, "- Unknown (status.pending)") {
		t.Errorf("Roster missing pending attendee: %q", embed.Fields[3].Value)
	}
	if embed.Footer.Text != "m1" {
		t.Errorf("Expected footer m1, got %q", embed.Footer.Text)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("line of text\n", 200)
	got := truncate(long, maxFieldValue)
	if len(got) > maxFieldValue {
		t.Errorf("Expected at most %d bytes, got %d", maxFieldValue, len(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Expected ellipsis suffix")
	}
	if truncate("short", maxFieldValue) != "short" {
		t.Error("Short values must pass through")
	}
}

func TestTruncate_MultibyteWithoutBreaks(t *testing.T) {
	long := "a" + strings.Repeat("€", 2000)
	got := truncate(long, maxFieldValue)
	if len(got) > maxFieldValue {
		t.Errorf("Expected at most %d bytes, got %d", maxFieldValue, len(got))
	}
	if !utf8.ValidString(got) {
		t.Errorf("Expected valid UTF-8 after cut, got %q", got[len(got)-8:])
	}
	if !strings.HasSuffix(got, "€…") {
		t.Errorf("Expected cut on a rune boundary, got suffix %q", got[len(got)-8:])
	}
}

func TestMeetingEmbed_ClampsLongText(t *testing.T) {
	m := &input.MeetingDetail{Meeting: entities.Meeting{
		ID:          "m2",
		Title:       strings.Repeat("T", 300),
		Description: strings.Repeat("é", 5000),
	}}
	embed := MeetingEmbed(m, keyOnly)

	if n := utf8.RuneCountInString(embed.Title); n > 256 {
		t.Errorf("Expected title within 256 characters, got %d", n)
	}
	if n := utf8.RuneCountInString(embed.Description); n > 4096 {
		t.Errorf("Expected description within 4096 characters, got %d", n)
	}
	if !utf8.ValidString(embed.Description) {
		t.Error("Expected valid UTF-8 description")
	}
}

func TestFormatRange(t *testing.T) {
	start := time.Unix(100, 0)
	if got := FormatRange(start, start); got != "<t:100:f>" {
		t.Errorf("Expected start only, got %q", got)
	}
	if got := FormatRange(time.Time{}, start); got != "" {
		t.Errorf("Expected empty, got %q", got)
	}
}
