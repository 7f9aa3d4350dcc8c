// Package bot is the Discord adapter for favbot.
//
// It decodes gateway events into intents for the favs service and renders
// the results back as Discord messages:
//
//   - A save-emoji reaction on a guild message saves a fav and DMs the
//     reacting user a confirmation prompting for tags.
//   - The user's next DM becomes the fav's tag set; "delete <id>" removes
//     a fav.
//   - Prefix commands in guild channels: "fav [tags…]" posts one of the
//     user's favs at random, "favtags [tags…]" lists tag usage counts.
//
// Reaction events are deduplicated because the gateway may redeliver them
// after reconnects. The visible-guild set is recomputed from session state
// on every post-random call, so favs saved in guilds the bot has since left
// are never posted.
package bot
