package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"openconference/internal/domain"
	"openconference/internal/ports/input"
	pkgdiscord "openconference/pkg/discord"
)

// Button custom ids are "meeting:<action>:<meeting id>".
const (
	buttonPrefix  = "meeting"
	actionAccept  = "accept"
	actionDecline = "decline"
	actionJoin    = "join"
	actionLeave   = "leave"
)

func buttonID(action, meetingID string) string {
	return buttonPrefix + ":" + action + ":" + meetingID
}

func parseButtonID(customID string) (action, meetingID string, ok bool) {
	parts := strings.SplitN(customID, ":", 3)
	if len(parts) != 3 || parts[0] != buttonPrefix || parts[2] == "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// meetingComponents offers the transitions open to a caller in status.
// The owner gets no buttons.
func meetingComponents(m *input.MeetingDetail, status domain.AttendeeStatus, t pkgdiscord.Localize) []discordgo.MessageComponent {
	accept := discordgo.Button{Label: t("button.accept", nil), Style: discordgo.SuccessButton, CustomID: buttonID(actionAccept, m.ID)}
	decline := discordgo.Button{Label: t("button.decline", nil), Style: discordgo.DangerButton, CustomID: buttonID(actionDecline, m.ID)}
	join := discordgo.Button{Label: t("button.join", nil), Style: discordgo.PrimaryButton, CustomID: buttonID(actionJoin, m.ID)}
	leave := discordgo.Button{Label: t("button.leave", nil), Style: discordgo.SecondaryButton, CustomID: buttonID(actionLeave, m.ID)}

	var buttons []discordgo.MessageComponent
	switch status {
	case domain.StatusOwner:
		return nil
	case domain.StatusPending:
		buttons = []discordgo.MessageComponent{accept, decline}
	case domain.StatusAccepted:
		buttons = []discordgo.MessageComponent{decline, leave}
	case domain.StatusRejected:
		buttons = []discordgo.MessageComponent{accept, leave}
	default:
		if !m.IsPublic {
			return nil
		}
		buttons = []discordgo.MessageComponent{join}
	}
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}}
}

func (h *Handler) HandleButton(s Responder, i *discordgo.InteractionCreate) {
	action, meetingID, ok := parseButtonID(i.MessageComponentData().CustomID)
	if !ok {
		return
	}

	ctx, cancel := h.begin(i)
	defer cancel()
	h.ensureProfile(ctx, i)

	var (
		err error
		key string
	)
	switch action {
	case actionAccept:
		err = h.meetings.Respond(ctx, meetingID, domain.StatusAccepted)
		key = "meeting.responded.accepted"
	case actionDecline:
		err = h.meetings.Respond(ctx, meetingID, domain.StatusRejected)
		key = "meeting.responded.rejected"
	case actionJoin:
		err = h.meetings.JoinPublic(ctx, meetingID)
		key = "meeting.joined"
	case actionLeave:
		err = h.meetings.Leave(ctx, meetingID)
		key = "meeting.left"
	default:
		return
	}
	if err != nil {
		h.replyError(s, i, err)
		return
	}
	respondEphemeral(s, i.Interaction, h.localizer(i)(key, nil))
}
