package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"openconference/internal/domain"
	"openconference/internal/ports/input"
	pkgdiscord "openconference/pkg/discord"
)

const commandName = "conference"

func missingIDError() error {
	vErr := &domain.ValidationError{}
	vErr.Add("id", "id is required")
	return vErr
}

func idOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "id",
		Description: description,
		Required:    true,
	}
}

// Commands returns the application commands the bot registers.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{{
		Name:        commandName,
		Description: "Conferences and meetings",
		DescriptionLocalizations: &map[discordgo.Locale]string{
			discordgo.French: "Conférences et réunions",
		},
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "List conferences",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "join",
				Description: "Join a conference",
				Options:     []*discordgo.ApplicationCommandOption{idOption("Conference id")},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "leave",
				Description: "Leave a conference",
				Options:     []*discordgo.ApplicationCommandOption{idOption("Conference id")},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "meetings",
				Description: "List the meetings of a conference",
				Options: []*discordgo.ApplicationCommandOption{
					idOption("Conference id"),
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "mine",
						Description: "Only meetings you are part of",
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "meeting",
				Description: "Show a meeting",
				Options:     []*discordgo.ApplicationCommandOption{idOption("Meeting id")},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "profile",
				Description: "Edit your profile",
			},
		},
	}}
}

func (h *Handler) HandleCommand(s Responder, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Name != commandName || len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]

	// The modal must be the first response, so nothing else may reply before it.
	if sub.Name == "profile" {
		h.openProfileModal(s, i)
		return
	}

	ctx, cancel := h.begin(i)
	defer cancel()
	h.ensureProfile(ctx, i)

	id := stringOption(sub.Options, "id")
	if sub.Name != "list" && id == "" {
		h.replyError(s, i, missingIDError())
		return
	}

	switch sub.Name {
	case "list":
		h.listConferences(ctx, s, i)
	case "join":
		h.joinConference(ctx, s, i, id)
	case "leave":
		h.leaveConference(ctx, s, i, id)
	case "meetings":
		h.listMeetings(ctx, s, i, id, boolOption(sub.Options, "mine"))
	case "meeting":
		h.showMeeting(ctx, s, i, id)
	}
}

func (h *Handler) listConferences(ctx context.Context, s Responder, i *discordgo.InteractionCreate) {
	conferences, err := h.conferences.List(ctx)
	if err != nil {
		h.replyError(s, i, err)
		return
	}
	respondEmbed(s, i.Interaction, pkgdiscord.ConferenceListEmbed(conferences, h.localizer(i)), nil)
}

func (h *Handler) joinConference(ctx context.Context, s Responder, i *discordgo.InteractionCreate, id string) {
	if err := h.conferences.Join(ctx, id); err != nil {
		h.replyError(s, i, err)
		return
	}
	h.replyWithConferenceName(ctx, s, i, id, "conference.joined")
}

func (h *Handler) leaveConference(ctx context.Context, s Responder, i *discordgo.InteractionCreate, id string) {
	if err := h.conferences.Leave(ctx, id); err != nil {
		h.replyError(s, i, err)
		return
	}
	h.replyWithConferenceName(ctx, s, i, id, "conference.left")
}

func (h *Handler) replyWithConferenceName(ctx context.Context, s Responder, i *discordgo.InteractionCreate, id, key string) {
	name := id
	if conference, err := h.conferences.Get(ctx, id); err == nil {
		name = conference.Name
	}
	respondEphemeral(s, i.Interaction, h.localizer(i)(key, map[string]any{"Name": name}))
}

func (h *Handler) listMeetings(ctx context.Context, s Responder, i *discordgo.InteractionCreate, conferenceID string, mine bool) {
	conference, err := h.conferences.Get(ctx, conferenceID)
	if err != nil {
		h.replyError(s, i, err)
		return
	}
	t := h.localizer(i)

	var (
		rows  []input.MyMeeting
		title string
	)
	if mine {
		rows, err = h.meetings.MyMeetings(ctx, conferenceID)
		title = t("meeting.list.mine", map[string]any{"Name": conference.Name})
	} else {
		var public []input.MeetingSummary
		public, err = h.meetings.PublicMeetings(ctx, conferenceID)
		for _, m := range public {
			rows = append(rows, input.MyMeeting{MeetingSummary: m})
		}
		title = t("meeting.list.public", map[string]any{"Name": conference.Name})
	}
	if err != nil {
		h.replyError(s, i, err)
		return
	}
	respondEmbed(s, i.Interaction, pkgdiscord.MeetingListEmbed(title, rows, t), nil)
}

func (h *Handler) showMeeting(ctx context.Context, s Responder, i *discordgo.InteractionCreate, meetingID string) {
	meeting, err := h.meetings.Get(ctx, meetingID)
	if err != nil {
		h.replyError(s, i, err)
		return
	}
	var status domain.AttendeeStatus
	if user, err := h.identity.CurrentUser(ctx); err == nil {
		status = rosterStatus(meeting, user.ID)
	}
	t := h.localizer(i)
	respondEmbed(s, i.Interaction, pkgdiscord.MeetingEmbed(meeting, t), meetingComponents(meeting, status, t))
}

func rosterStatus(meeting *input.MeetingDetail, userID string) domain.AttendeeStatus {
	for _, a := range meeting.Attendees {
		if a.UserID == userID {
			return a.Status
		}
	}
	return ""
}

func stringOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, o := range opts {
		if o.Name == name && o.Type == discordgo.ApplicationCommandOptionString {
			return o.StringValue()
		}
	}
	return ""
}

func boolOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) bool {
	for _, o := range opts {
		if o.Name == name && o.Type == discordgo.ApplicationCommandOptionBoolean {
			return o.BoolValue()
		}
	}
	return false
}
