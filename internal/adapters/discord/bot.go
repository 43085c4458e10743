package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	guildID string
	handler *Handler
	logger  *slog.Logger
}

// NewBot creates the session and wires interactions to handler. An empty
// guildID registers commands globally.
func NewBot(token, guildID string, handler *Handler, logger *slog.Logger) (*Bot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		session: s,
		guildID: guildID,
		handler: handler,
		logger:  logger,
	}
	s.AddHandler(bot.handleInteraction)
	return bot, nil
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	dispatch(b.handler, s, i, b.logger)
}

func dispatch(h *Handler, s Responder, i *discordgo.InteractionCreate, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("discord interaction panicked", "interaction_id", i.ID, "panic", r)
		}
	}()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.HandleCommand(s, i)
	case discordgo.InteractionMessageComponent:
		h.HandleButton(s, i)
	case discordgo.InteractionModalSubmit:
		h.HandleModalSubmit(s, i)
	}
}

// Start opens the gateway, registers the commands and blocks until ctx is
// done.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer b.session.Close()

	appID := b.session.State.User.ID
	if _, err := b.session.ApplicationCommandBulkOverwrite(appID, b.guildID, Commands()); err != nil {
		return fmt.Errorf("register commands: %w", err)
	}

	b.logger.Info("discord bot online", "user", b.session.State.User.Username, "guild_id", b.guildID)
	<-ctx.Done()
	b.logger.Info("discord bot stopping")
	return nil
}
