package discord

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"openconference/internal/domain"
	"openconference/internal/ports/input"
)

const (
	embedColor = 0x5865F2
	// Discord caps an embed title at 256 characters, a description at 4096
	// and a field value at 1024. Limits below are bytes, which never
	// undercount characters.
	maxTitle       = 256
	maxDescription = 4000
	maxFieldValue  = 1024
)

// Localize renders a catalog key for the interaction's locale.
type Localize func(key string, data map[string]any) string

// ConferenceListEmbed lists conferences with their dates and ids.
func ConferenceListEmbed(conferences []input.ConferenceView, t Localize) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Title: t("conference.list.title", nil), Color: embedColor}
	if len(conferences) == 0 {
		embed.Description = t("conference.list.empty", nil)
		return embed
	}
	var b strings.Builder
	for _, c := range conferences {
		line := fmt.Sprintf("**%s** · %s\n`%s`\n", c.Name, FormatRange(c.StartDate, c.EndDate), c.ID)
		if b.Len()+len(line) > maxDescription {
			break
		}
		b.WriteString(line)
	}
	embed.Description = b.String()
	return embed
}

// MeetingListEmbed lists meetings. MyStatus is shown when set.
func MeetingListEmbed(title string, meetings []input.MyMeeting, t Localize) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Title: title, Color: embedColor}
	if len(meetings) == 0 {
		embed.Description = t("meeting.list.empty", nil)
		return embed
	}
	var b strings.Builder
	for _, m := range meetings {
		line := fmt.Sprintf("**%s** · %s · %s: %d", m.Title, FormatRange(m.StartTime, m.EndTime), t("field.attendees", nil), m.AttendeeCount)
		if m.MyStatus != "" {
			line += " · " + StatusLabel(m.MyStatus, t)
		}
		line += fmt.Sprintf("\n`%s`\n", m.ID)
		if b.Len()+len(line) > maxDescription {
			break
		}
		b.WriteString(line)
	}
	embed.Description = b.String()
	return embed
}

// MeetingEmbed shows one meeting with its attendee roster.
func MeetingEmbed(m *input.MeetingDetail, t Localize) *discordgo.MessageEmbed {
	visibility := t("visibility.private", nil)
	if m.IsPublic {
		visibility = t("visibility.public", nil)
	}

	roster := make([]string, 0, len(m.Attendees))
	for _, a := range m.Attendees {
		roster = append(roster, fmt.Sprintf("- %s (%s)", a.Name, StatusLabel(a.Status, t)))
	}

	return &discordgo.MessageEmbed{
		Title:       truncate(m.Title, maxTitle),
		Description: truncate(m.Description, maxDescription),
		Color:       embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: t("field.when", nil), Value: orDash(FormatRange(m.StartTime, m.EndTime)), Inline: true},
			{Name: t("field.creator", nil), Value: m.CreatorName, Inline: true},
			{Name: t("field.visibility", nil), Value: visibility, Inline: true},
			{Name: fmt.Sprintf("%s (%d)", t("field.attendees", nil), len(m.Attendees)), Value: orDash(truncate(strings.Join(roster, "\n"), maxFieldValue))},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: m.ID},
	}
}

func StatusLabel(s domain.AttendeeStatus, t Localize) string {
	return t("status."+string(s), nil)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate keeps s within limit bytes, preferring to cut at a line break
// and never splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	const ellipsis = "…"
	if cut := strings.LastIndex(s[:limit-len(ellipsis)-1], "\n"); cut > 0 {
		return s[:cut] + "\n" + ellipsis
	}
	cut := limit - len(ellipsis)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + ellipsis
}
