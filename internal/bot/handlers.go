// ABOUTME: Discord event handlers for favbot
// ABOUTME: Decodes reactions, DMs and prefix commands into fav service calls

package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/2389/favbot/internal/favs"
)

// handleReactionAdd saves a fav when a user adds the save emoji to a guild
// message.
func (b *Bot) handleReactionAdd(_ *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.GuildID == "" || r.UserID == b.botUserID() {
		return
	}
	if r.Emoji.Name != b.cfg.Bot.SaveEmoji {
		return
	}

	// The gateway can redeliver reaction events across reconnects.
	key := strings.Join([]string{r.GuildID, r.ChannelID, r.MessageID, r.UserID, r.Emoji.Name}, ":")
	if b.cache.Seen(key) {
		b.logger.Debug("duplicate reaction event, dropping", "key", key)
		return
	}

	b.saveFav(b.ctx, r.MessageReaction)
}

// saveFav fetches the reacted-to message, stores a fav and DMs the user a
// confirmation prompting for tags.
func (b *Bot) saveFav(ctx context.Context, r *discordgo.MessageReaction) {
	logger := b.requestLogger("save_fav", r.UserID)

	msg, err := b.api.ChannelMessage(r.ChannelID, r.MessageID)
	if err != nil {
		logger.Error("fetching reacted message failed",
			"channel_id", r.ChannelID,
			"message_id", r.MessageID,
			"error", err)
		return
	}

	fav, err := b.favs.SaveFav(ctx, r.UserID, r.GuildID, r.ChannelID, r.MessageID, msg.Author.ID)
	if err != nil {
		logger.Error("saving fav failed", "error", err)
		return
	}

	// The user's next DM sets this fav's tags.
	b.pending.Store(r.UserID, fav.ID)

	b.dm(logger, r.UserID, renderSaved(fav))
	logger.Info("fav saved", "fav_id", fav.ID, "guild_id", fav.GuildID)
}

// handleMessageCreate routes guild messages to the command handler and DMs
// to the tagging flow.
func (b *Bot) handleMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	if m.GuildID == "" {
		b.handleDM(b.ctx, m.Message)
		return
	}
	b.handleCommand(b.ctx, m.Message)
}

// handleDM applies a DM as either a delete request or the tag set for the
// user's most recently saved fav.
func (b *Bot) handleDM(ctx context.Context, m *discordgo.Message) {
	logger := b.requestLogger("dm", m.Author.ID)
	content := strings.TrimSpace(m.Content)

	if id, ok := parseDelete(content); ok {
		// Stale ids are absorbed by the store; the reply stays generic
		// either way.
		if err := b.favs.RemoveFav(ctx, id); err != nil {
			logger.Error("removing fav failed", "fav_id", id, "error", err)
			return
		}
		b.pending.CompareAndDelete(m.Author.ID, id)
		b.reply(logger, m.ChannelID, renderRemoved(id))
		logger.Info("fav removed", "fav_id", id)
		return
	}

	favID, ok := b.pending.LoadAndDelete(m.Author.ID)
	if !ok {
		b.reply(logger, m.ChannelID, dmHelp)
		return
	}

	tags := strings.Fields(content)
	if err := b.favs.SetTags(ctx, favID.(string), tags); err != nil {
		logger.Error("setting tags failed", "fav_id", favID, "error", err)
		return
	}
	b.reply(logger, m.ChannelID, renderTagged(favID.(string), tags))
	logger.Info("fav tagged", "fav_id", favID, "tags", tags)
}

// handleCommand dispatches prefix commands in guild channels.
func (b *Bot) handleCommand(ctx context.Context, m *discordgo.Message) {
	cmd, args, ok := parseCommand(m.Content, b.cfg.Bot.CommandPrefix)
	if !ok {
		return
	}

	logger := b.requestLogger(cmd, m.Author.ID)

	switch cmd {
	case "fav":
		b.postRandom(ctx, logger, m, args)
	case "favtags":
		b.listTagCounts(ctx, logger, m, args)
	}
}

// postRandom posts one of the user's favs, chosen at random from guilds the
// bot can still see.
func (b *Bot) postRandom(ctx context.Context, logger *slog.Logger, m *discordgo.Message, args string) {
	fav, err := b.favs.PostRandom(ctx, m.Author.ID, nil, args, b.visibleGuilds())
	if errors.Is(err, favs.ErrNoFavs) {
		b.reply(logger, m.ChannelID, noFavsFound)
		return
	}
	if err != nil {
		logger.Error("picking fav failed", "error", err)
		return
	}

	if _, err := b.api.ChannelMessageSendEmbed(m.ChannelID, renderFav(fav)); err != nil {
		logger.Error("sending fav embed failed", "channel_id", m.ChannelID, "error", err)
		return
	}
	logger.Info("fav posted", "fav_id", fav.ID)
}

// listTagCounts replies with the user's tag usage counts.
func (b *Bot) listTagCounts(ctx context.Context, logger *slog.Logger, m *discordgo.Message, args string) {
	counts, err := b.favs.TagCounts(ctx, m.Author.ID, nil, args)
	if errors.Is(err, favs.ErrNoFavs) {
		b.reply(logger, m.ChannelID, noFavsFound)
		return
	}
	if err != nil {
		logger.Error("listing tag counts failed", "error", err)
		return
	}

	b.reply(logger, m.ChannelID, renderTagCounts(counts))
	logger.Info("tag counts posted", "tags", len(counts))
}

// reply sends plain text to a channel, logging failures.
func (b *Bot) reply(logger *slog.Logger, channelID, content string) {
	if _, err := b.api.ChannelMessageSend(channelID, content); err != nil {
		logger.Error("sending reply failed", "channel_id", channelID, "error", err)
	}
}

// dm sends plain text to a user's DM channel, logging failures.
func (b *Bot) dm(logger *slog.Logger, userID, content string) {
	ch, err := b.api.UserChannelCreate(userID)
	if err != nil {
		logger.Error("opening dm channel failed", "user_id", userID, "error", err)
		return
	}
	b.reply(logger, ch.ID, content)
}

// requestLogger tags log lines of one handled intent with a correlation id.
func (b *Bot) requestLogger(intent, userID string) *slog.Logger {
	return b.logger.With(
		"request_id", uuid.New().String(),
		"intent", intent,
		"user_id", userID)
}

// parseCommand splits a prefixed message into command name and argument
// string. Returns ok=false when the message carries no known prefix.
func parseCommand(content, prefix string) (cmd, args string, ok bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", "", false
	}
	body := strings.TrimSpace(strings.TrimPrefix(content, prefix))
	if body == "" {
		return "", "", false
	}

	cmd, args, _ = strings.Cut(body, " ")
	return strings.ToLower(cmd), strings.TrimSpace(args), true
}

// parseDelete recognizes a "delete <fav id>" DM.
func parseDelete(content string) (id string, ok bool) {
	fields := strings.Fields(content)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "delete") {
		return "", false
	}
	return fields[1], true
}
