// ABOUTME: Rendering of fav service results as Discord messages
// ABOUTME: Pure functions so formatting is testable without a session

package bot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/2389/favbot/internal/store"
)

const (
	noFavsFound = "No favs found."

	dmHelp = "Save a fav by reacting to a message first, then reply here with tags. " +
		"Use `delete <id>` to discard a saved fav."
)

// renderFav builds the embed posted for a selected fav.
func renderFav(f *store.Fav) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Description: fmt.Sprintf("[Jump to message](%s) by <@%s>", messageLink(f), f.AuthorID),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Fav #" + f.ID,
		},
	}
	if len(f.Tags) > 0 {
		embed.Fields = []*discordgo.MessageEmbedField{{
			Name:  "Tags",
			Value: strings.Join(f.Tags, ", "),
		}}
	}
	return embed
}

// renderTagCounts formats a tag→count mapping as a sorted list.
func renderTagCounts(counts map[string]int) string {
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	var sb strings.Builder
	sb.WriteString("Your tags:\n")
	for _, tag := range tags {
		fmt.Fprintf(&sb, "• %s: %d\n", tag, counts[tag])
	}
	return strings.TrimRight(sb.String(), "\n")
}

// renderSaved is the DM confirmation after saving a fav.
func renderSaved(f *store.Fav) string {
	return fmt.Sprintf("Saved fav #%s. Reply with tags to label it, or `delete %s` to discard it.", f.ID, f.ID)
}

// renderTagged confirms a tag replacement.
func renderTagged(id string, tags []string) string {
	if len(tags) == 0 {
		return fmt.Sprintf("Cleared tags on fav #%s.", id)
	}
	return fmt.Sprintf("Tagged fav #%s: %s", id, strings.Join(tags, ", "))
}

// renderRemoved confirms a deletion. The wording does not distinguish a
// stale id from a real delete.
func renderRemoved(id string) string {
	return fmt.Sprintf("Fav #%s removed.", id)
}

// messageLink builds the canonical link to the fav's source message.
func messageLink(f *store.Fav) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", f.GuildID, f.ChannelID, f.MessageID)
}
