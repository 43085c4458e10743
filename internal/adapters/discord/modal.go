package discord

import (
	"github.com/bwmarrin/discordgo"

	pkgdiscord "openconference/pkg/discord"
)

const (
	profileModalID = "profile_modal"
	inputName      = "name"
	inputBio       = "bio"
)

func (h *Handler) openProfileModal(s Responder, i *discordgo.InteractionCreate) {
	ctx, cancel := h.begin(i)
	defer cancel()

	name, bio := resolveDisplayName(i), ""
	if user, err := h.identity.CurrentUser(ctx); err == nil {
		if user.Name != "" {
			name = user.Name
		}
		bio = user.Bio
	}

	t := h.localizer(i)
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: profileModalID,
			Title:    t("profile.modal.title", nil),
			Components: []discordgo.MessageComponent{
				pkgdiscord.TextInputRow(discordgo.TextInput{CustomID: inputName, Label: t("profile.modal.name", nil), Style: discordgo.TextInputShort, Required: true, MaxLength: 100, Value: name}),
				pkgdiscord.TextInputRow(discordgo.TextInput{CustomID: inputBio, Label: t("profile.modal.bio", nil), Style: discordgo.TextInputParagraph, MaxLength: 2000, Value: bio}),
			},
		},
	})
}

func (h *Handler) HandleModalSubmit(s Responder, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	if data.CustomID != profileModalID {
		return
	}
	ctx, cancel := h.begin(i)
	defer cancel()

	values := pkgdiscord.TextInputValues(data)
	user, err := h.identity.UpdateProfile(ctx, values[inputName], values[inputBio])
	if err != nil {
		h.replyError(s, i, err)
		return
	}
	respondEphemeral(s, i.Interaction, h.localizer(i)("profile.updated", map[string]any{"Name": user.Name}))
}
