package discord

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"openconference/internal/auth"
	"openconference/internal/logging"
	"openconference/internal/ports/input"
	"openconference/internal/ports/output"
	pkgdiscord "openconference/pkg/discord"
)

// SubjectPrefix namespaces Discord user ids among verified subjects.
const SubjectPrefix = "discord:"

// Responder is the part of *discordgo.Session the handlers reply through.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// Handler handles Discord interactions using use cases.
type Handler struct {
	identity    input.IdentityUseCase
	conferences input.ConferenceUseCase
	meetings    input.MeetingUseCase
	translator  output.Translator
	logger      *slog.Logger
	timeout     time.Duration
}

func NewHandler(
	identity input.IdentityUseCase,
	conferences input.ConferenceUseCase,
	meetings input.MeetingUseCase,
	translator output.Translator,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		identity:    identity,
		conferences: conferences,
		meetings:    meetings,
		translator:  translator,
		logger:      logger,
		timeout:     10 * time.Second,
	}
}

// begin builds the call context: Discord already authenticated the user, so
// its id becomes the verified subject.
func (h *Handler) begin(i *discordgo.InteractionCreate) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	logger := h.logger.With("interaction_id", i.ID)
	if user := interactionUser(i); user != nil {
		ctx = auth.WithSubject(ctx, SubjectPrefix+user.ID)
		logger = logger.With("discord_user", user.ID)
	}
	return logging.ContextWithLogger(ctx, logger), cancel
}

// ensureProfile fills an unset profile name from the Discord display name.
func (h *Handler) ensureProfile(ctx context.Context, i *discordgo.InteractionCreate) {
	name := resolveDisplayName(i)
	if name == "" {
		return
	}
	user, err := h.identity.CurrentUser(ctx)
	if err != nil {
		logging.FromContext(ctx, h.logger).WarnContext(ctx, "resolve discord user", "error", err)
		return
	}
	if user.Name != "" {
		return
	}
	if _, err := h.identity.UpdateProfile(ctx, name, user.Bio); err != nil {
		logging.FromContext(ctx, h.logger).WarnContext(ctx, "fill profile name", "error", err)
	}
}

func (h *Handler) localizer(i *discordgo.InteractionCreate) pkgdiscord.Localize {
	locale := string(i.Locale)
	return func(key string, data map[string]any) string {
		return h.translator.T(locale, key, data)
	}
}

func (h *Handler) replyError(s Responder, i *discordgo.InteractionCreate, err error) {
	respondEphemeral(s, i.Interaction, pkgdiscord.ErrorReply(h.translator, string(i.Locale), err))
}
