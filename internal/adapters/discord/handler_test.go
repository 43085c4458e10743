package discord

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"openconference/internal/application"
	"openconference/internal/auth"
	"openconference/internal/domain"
	"openconference/internal/infrastructure/i18n"
	"openconference/internal/infrastructure/memory"
	"openconference/internal/ports/input"
)

type recordingResponder struct {
	responses []*discordgo.InteractionResponse
}

func (r *recordingResponder) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	r.responses = append(r.responses, resp)
	return nil
}

func (r *recordingResponder) last(t *testing.T) *discordgo.InteractionResponse {
	t.Helper()
	if len(r.responses) == 0 {
		t.Fatalf("no interaction response recorded")
	}
	return r.responses[len(r.responses)-1]
}

type fixture struct {
	handler     *Handler
	conferences *application.ConferenceService
	meetings    *application.MeetingService
	identity    *application.IdentityService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	opts := []application.Option{application.WithLogger(logger)}
	identity := application.NewIdentityService(store, opts...)
	projector := application.NewProjector(store, identity, opts...)
	conferences := application.NewConferenceService(store, identity, projector, opts...)
	meetings := application.NewMeetingService(store, identity, projector, opts...)
	return &fixture{
		handler:     NewHandler(identity, conferences, meetings, i18n.NewTranslator("en", logger), logger),
		conferences: conferences,
		meetings:    meetings,
		identity:    identity,
	}
}

func asDiscordUser(discordID string) context.Context {
	return auth.WithSubject(context.Background(), SubjectPrefix+discordID)
}

func member(discordID, nick string) *discordgo.Member {
	return &discordgo.Member{Nick: nick, User: &discordgo.User{ID: discordID, Username: "user" + discordID}}
}

func commandInteraction(m *discordgo.Member, locale discordgo.Locale, sub string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:     "interaction-" + sub,
		Type:   discordgo.InteractionApplicationCommand,
		Member: m,
		Locale: locale,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: commandName,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{{
				Name:    sub,
				Type:    discordgo.ApplicationCommandOptionSubCommand,
				Options: opts,
			}},
		},
	}}
}

func buttonInteraction(m *discordgo.Member, customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:     "interaction-button",
		Type:   discordgo.InteractionMessageComponent,
		Member: m,
		Locale: discordgo.EnglishUS,
		Data: discordgo.MessageComponentInteractionData{
			CustomID:      customID,
			ComponentType: discordgo.ButtonComponent,
		},
	}}
}

func idArg(id string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: "id", Type: discordgo.ApplicationCommandOptionString, Value: id}
}

func (f *fixture) seedMeeting(t *testing.T, public bool, invitees ...string) (conferenceID, meetingID string) {
	t.Helper()
	owner := asDiscordUser("1")
	conferenceID, err := f.conferences.Create(owner, input.CreateConferenceInput{
		Name:      "GopherCon",
		StartDate: time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 3, 18, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create conference failed: %v", err)
	}
	var inviteeIDs []string
	for _, discordID := range invitees {
		user, err := f.identity.CurrentUser(asDiscordUser(discordID))
		if err != nil {
			t.Fatalf("CurrentUser failed: %v", err)
		}
		inviteeIDs = append(inviteeIDs, user.ID)
	}
	meetingID, err = f.meetings.Create(owner, input.CreateMeetingInput{
		ConferenceID:   conferenceID,
		Title:          "Hallway track",
		StartTime:      time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2026, 6, 1, 11, 0, 0, 0, time.UTC),
		IsPublic:       public,
		InviteeUserIDs: inviteeIDs,
	})
	if err != nil {
		t.Fatalf("Create meeting failed: %v", err)
	}
	return conferenceID, meetingID
}

func TestHandler_ProfileOpensModal(t *testing.T) {
	f := newFixture(t)
	r := &recordingResponder{}

	dispatch(f.handler, r, commandInteraction(member("7", "Ada"), discordgo.EnglishUS, "profile"), slog.Default())

	resp := r.last(t)
	if resp.Type != discordgo.InteractionResponseModal {
		t.Fatalf("expected modal response, got %v", resp.Type)
	}
	if resp.Data.CustomID != profileModalID {
		t.Fatalf("expected custom id %q, got %q", profileModalID, resp.Data.CustomID)
	}
	row := resp.Data.Components[0].(discordgo.ActionsRow)
	if got := row.Components[0].(discordgo.TextInput).Value; got != "Ada" {
		t.Fatalf("expected name prefilled with nick, got %q", got)
	}
	if resp.Data.Title != "Profile" || row.Components[0].(discordgo.TextInput).Label != "Name" {
		t.Fatalf("unexpected English modal text: %q / %q", resp.Data.Title, row.Components[0].(discordgo.TextInput).Label)
	}
}

func TestHandler_ProfileModalFollowsLocale(t *testing.T) {
	f := newFixture(t)
	r := &recordingResponder{}

	dispatch(f.handler, r, commandInteraction(member("7", "Ada"), discordgo.French, "profile"), slog.Default())

	resp := r.last(t)
	if resp.Data.Title != "Profil" {
		t.Fatalf("expected French modal title, got %q", resp.Data.Title)
	}
	row := resp.Data.Components[0].(discordgo.ActionsRow)
	if got := row.Components[0].(discordgo.TextInput).Label; got != "Nom" {
		t.Fatalf("expected French name label, got %q", got)
	}
}

func TestHandler_ModalSubmitUpdatesProfile(t *testing.T) {
	f := newFixture(t)
	r := &recordingResponder{}
	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:   discordgo.InteractionModalSubmit,
		Member: member("7", ""),
		Data: discordgo.ModalSubmitInteractionData{
			CustomID: profileModalID,
			Components: []discordgo.MessageComponent{
				&discordgo.ActionsRow{Components: []discordgo.MessageComponent{&discordgo.TextInput{CustomID: inputName, Value: "  Grace  "}}},
				&discordgo.ActionsRow{Components: []discordgo.MessageComponent{&discordgo.TextInput{CustomID: inputBio, Value: "COBOL"}}},
			},
		},
	}}

	dispatch(f.handler, r, i, slog.Default())

	user, err := f.identity.CurrentUser(asDiscordUser("7"))
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if user.Name != "Grace" || user.Bio != "COBOL" {
		t.Fatalf("unexpected profile: %+v", user)
	}
	if got := r.last(t).Data.Content; got != "Profile saved as Grace." {
		t.Fatalf("unexpected confirmation %q", got)
	}
}

func TestHandler_ListFillsProfileName(t *testing.T) {
	f := newFixture(t)
	r := &recordingResponder{}

	dispatch(f.handler, r, commandInteraction(member("9", "Linus"), discordgo.EnglishUS, "list"), slog.Default())

	embed := r.last(t).Data.Embeds[0]
	if embed.Title != "Conferences" || embed.Description != "No conferences yet." {
		t.Fatalf("unexpected embed: %+v", embed)
	}
	user, err := f.identity.CurrentUser(asDiscordUser("9"))
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if user.Name != "Linus" {
		t.Fatalf("expected profile name from nick, got %q", user.Name)
	}
}

func TestHandler_JoinConference(t *testing.T) {
	f := newFixture(t)
	conferenceID, _ := f.seedMeeting(t, true)
	r := &recordingResponder{}

	dispatch(f.handler, r, commandInteraction(member("2", "Bob"), discordgo.EnglishUS, "join", idArg(conferenceID)), slog.Default())
	if got := r.last(t).Data.Content; got != "You joined GopherCon." {
		t.Fatalf("unexpected reply: %q", got)
	}

	dispatch(f.handler, r, commandInteraction(member("2", "Bob"), discordgo.French, "join", idArg(conferenceID)), slog.Default())
	got := r.last(t).Data.Content
	if !strings.HasPrefix(got, "❌ ") || got == "❌ You already joined this conference." {
		t.Fatalf("expected a French already-member error, got %q", got)
	}
}

func TestHandler_JoinUnknownConference(t *testing.T) {
	f := newFixture(t)
	r := &recordingResponder{}

	dispatch(f.handler, r, commandInteraction(member("2", "Bob"), discordgo.EnglishUS, "join", idArg("missing")), slog.Default())

	if got := r.last(t).Data.Content; got != "❌ Conference not found." {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestHandler_MissingID(t *testing.T) {
	f := newFixture(t)
	r := &recordingResponder{}

	dispatch(f.handler, r, commandInteraction(member("2", "Bob"), discordgo.EnglishUS, "meeting"), slog.Default())

	if got := r.last(t).Data.Content; got != "❌ Some fields are invalid." {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestHandler_ShowMeetingButtons(t *testing.T) {
	f := newFixture(t)
	_, meetingID := f.seedMeeting(t, false, "3")
	r := &recordingResponder{}

	dispatch(f.handler, r, commandInteraction(member("3", "Carol"), discordgo.EnglishUS, "meeting", idArg(meetingID)), slog.Default())

	resp := r.last(t)
	if len(resp.Data.Components) != 1 {
		t.Fatalf("expected one action row, got %d", len(resp.Data.Components))
	}
	row := resp.Data.Components[0].(discordgo.ActionsRow)
	if len(row.Components) != 2 {
		t.Fatalf("expected accept and decline buttons, got %d", len(row.Components))
	}
	if id := row.Components[0].(discordgo.Button).CustomID; id != "meeting:accept:"+meetingID {
		t.Fatalf("unexpected custom id %q", id)
	}

	dispatch(f.handler, r, commandInteraction(member("1", "Owner"), discordgo.EnglishUS, "meeting", idArg(meetingID)), slog.Default())
	if n := len(r.last(t).Data.Components); n != 0 {
		t.Fatalf("expected no buttons for the owner, got %d rows", n)
	}
}

func TestHandler_AcceptButton(t *testing.T) {
	f := newFixture(t)
	_, meetingID := f.seedMeeting(t, false, "3")
	r := &recordingResponder{}

	dispatch(f.handler, r, buttonInteraction(member("3", "Carol"), "meeting:accept:"+meetingID), slog.Default())
	if got := r.last(t).Data.Content; got != "Invitation accepted." {
		t.Fatalf("unexpected reply: %q", got)
	}

	detail, err := f.meetings.Get(context.Background(), meetingID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	for _, a := range detail.Attendees {
		if a.Name == "Carol" && a.Status != domain.StatusAccepted {
			t.Fatalf("expected Carol accepted, got %q", a.Status)
		}
	}
}

func TestHandler_JoinButtonRequiresConference(t *testing.T) {
	f := newFixture(t)
	conferenceID, meetingID := f.seedMeeting(t, true)
	r := &recordingResponder{}

	dispatch(f.handler, r, buttonInteraction(member("4", "Dan"), "meeting:join:"+meetingID), slog.Default())
	if got := r.last(t).Data.Content; got != "❌ You must attend the conference first." {
		t.Fatalf("unexpected reply: %q", got)
	}

	if err := f.conferences.Join(asDiscordUser("4"), conferenceID); err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	dispatch(f.handler, r, buttonInteraction(member("4", "Dan"), "meeting:join:"+meetingID), slog.Default())
	if got := r.last(t).Data.Content; got != "You joined the meeting." {
		t.Fatalf("unexpected reply: %q", got)
	}

	dispatch(f.handler, r, buttonInteraction(member("1", "Owner"), "meeting:leave:"+meetingID), slog.Default())
	if got := r.last(t).Data.Content; got != "❌ The meeting owner cannot leave the meeting." {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestHandler_UnknownButtonIgnored(t *testing.T) {
	f := newFixture(t)
	r := &recordingResponder{}

	dispatch(f.handler, r, buttonInteraction(member("4", "Dan"), "event:join:1"), slog.Default())

	if len(r.responses) != 0 {
		t.Fatalf("expected no response, got %d", len(r.responses))
	}
}

func TestParseButtonID(t *testing.T) {
	tests := []struct {
		in     string
		action string
		id     string
		ok     bool
	}{
		{"meeting:accept:abc", actionAccept, "abc", true},
		{"meeting:leave:a:b", actionLeave, "a:b", true},
		{"meeting:join:", "", "", false},
		{"other:join:abc", "", "", false},
		{"meeting", "", "", false},
	}
	for _, tt := range tests {
		action, id, ok := parseButtonID(tt.in)
		if action != tt.action || id != tt.id || ok != tt.ok {
			t.Fatalf("parseButtonID(%q) = %q, %q, %v", tt.in, action, id, ok)
		}
	}
}
