package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/2389/favbot/internal/store"
)

func TestRenderFav_Untagged(t *testing.T) {
	embed := renderFav(&store.Fav{
		ID:        "7",
		GuildID:   "g1",
		ChannelID: "c1",
		MessageID: "m1",
		AuthorID:  "author-1",
	})

	assert.Contains(t, embed.Description, "https://discord.com/channels/g1/c1/m1")
	assert.Contains(t, embed.Description, "<@author-1>")
	assert.Equal(t, "Fav #7", embed.Footer.Text)
	assert.Empty(t, embed.Fields, "untagged fav renders without a tags field")
}

func TestRenderTagCounts_Sorted(t *testing.T) {
	out := renderTagCounts(map[string]int{"zebra": 1, "ant": 3})
	assert.Equal(t, "Your tags:\n• ant: 3\n• zebra: 1", out)
}

func TestRenderTagged_Cleared(t *testing.T) {
	assert.Equal(t, "Cleared tags on fav #3.", renderTagged("3", nil))
	assert.Equal(t, "Tagged fav #3: a, b", renderTagged("3", []string{"a", "b"}))
}
