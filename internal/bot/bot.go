// ABOUTME: Discord adapter core for favbot
// ABOUTME: Owns the session lifecycle and wires gateway events to the fav service

package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/2389/favbot/internal/config"
	"github.com/2389/favbot/internal/dedupe"
	"github.com/2389/favbot/internal/favs"
)

// api is the slice of the Discord session the handlers call. Narrowed so
// tests can swap in a fake without a gateway connection.
type api interface {
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Bot connects Discord to the fav service. Platform objects stop here; only
// string identifiers cross into the favs package.
type Bot struct {
	cfg     *config.Config
	favs    *favs.Service
	session *discordgo.Session
	api     api
	cache   *dedupe.Cache
	logger  *slog.Logger

	// visibleGuilds returns the set of guild ids the bot can currently
	// see. Recomputed per post-random call so favs from guilds the bot
	// has since left are never selected.
	visibleGuilds func() map[string]bool

	// pending maps a user id to the fav id awaiting tags via DM
	pending sync.Map

	// ctx is the parent context for event handler work
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new Discord bot around the given fav service.
func New(cfg *config.Config, service *favs.Service, logger *slog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	b := &Bot{
		cfg:     cfg,
		favs:    service,
		session: session,
		api:     session,
		cache:   dedupe.New(cfg.Dedupe.TTL, cfg.Dedupe.MaxEntries),
		logger:  logger.With("component", "bot"),
	}
	b.visibleGuilds = b.stateGuilds

	session.AddHandler(b.handleReactionAdd)
	session.AddHandler(b.handleMessageCreate)

	return b, nil
}

// Run opens the gateway connection and blocks until the context is
// cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx, b.cancel = context.WithCancel(ctx)
	defer b.cancel()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening discord session: %w", err)
	}
	defer b.session.Close()
	defer b.cache.Close()

	b.logger.Info("bot running",
		"user", b.session.State.User.Username,
		"prefix", b.cfg.Bot.CommandPrefix,
		"save_emoji", b.cfg.Bot.SaveEmoji)

	<-ctx.Done()
	b.logger.Info("shutting down bot")
	return nil
}

// stateGuilds snapshots the guild ids currently in the session state.
func (b *Bot) stateGuilds() map[string]bool {
	guilds := make(map[string]bool)
	for _, g := range b.session.State.Guilds {
		guilds[g.ID] = true
	}
	return guilds
}

// botUserID returns the bot's own user id, or empty before the session is
// ready.
func (b *Bot) botUserID() string {
	if b.session == nil || b.session.State == nil || b.session.State.User == nil {
		return ""
	}
	return b.session.State.User.ID
}
