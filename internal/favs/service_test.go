package favs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/favbot/internal/store"
)

// setupService creates a Service over a fresh in-memory store.
func setupService(t *testing.T) *Service {
	t.Helper()
	s := store.NewMemoryStore(nil)
	t.Cleanup(func() {
		s.Close()
	})
	return New(s, nil)
}

// saveTagged saves a fav in the given guild and applies tags.
func saveTagged(t *testing.T, svc *Service, userID, guildID string, tags []string) *store.Fav {
	t.Helper()
	ctx := context.Background()

	f, err := svc.SaveFav(ctx, userID, guildID, "chan-1", "msg-1", "author-1")
	require.NoError(t, err)
	if len(tags) > 0 {
		require.NoError(t, svc.SetTags(ctx, f.ID, tags))
	}
	return f
}

func visible(guilds ...string) map[string]bool {
	m := make(map[string]bool, len(guilds))
	for _, g := range guilds {
		m[g] = true
	}
	return m
}

func TestService_SaveFav(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	f, err := svc.SaveFav(ctx, "alice", "g1", "chan-9", "msg-9", "bob")
	require.NoError(t, err)
	assert.NotEmpty(t, f.ID)
	assert.Equal(t, "alice", f.UserID)
	assert.Equal(t, "bob", f.AuthorID)
	assert.Empty(t, f.Tags)
}

func TestService_PostRandom_NoFavs(t *testing.T) {
	svc := setupService(t)

	_, err := svc.PostRandom(context.Background(), "alice", nil, "", visible("g1"))
	assert.ErrorIs(t, err, ErrNoFavs)
}

func TestService_PostRandom_TagFilter(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	saveTagged(t, svc, "alice", "g1", []string{"cats"})
	want := saveTagged(t, svc, "alice", "g1", []string{"dogs"})

	f, err := svc.PostRandom(ctx, "alice", nil, "dogs", visible("g1"))
	require.NoError(t, err)
	assert.Equal(t, want.ID, f.ID)

	// No fav carries this tag.
	_, err = svc.PostRandom(ctx, "alice", nil, "birds", visible("g1"))
	assert.ErrorIs(t, err, ErrNoFavs)
}

func TestService_PostRandom_EmptyFilterMatchesUntagged(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	want := saveTagged(t, svc, "alice", "g1", nil)

	// A blank filter string means no tag filtering at all.
	f, err := svc.PostRandom(ctx, "alice", nil, "   ", visible("g1"))
	require.NoError(t, err)
	assert.Equal(t, want.ID, f.ID)
}

func TestService_PostRandom_SkipsInvisibleGuilds(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	saveTagged(t, svc, "alice", "g1", nil)
	saveTagged(t, svc, "alice", "g2", nil)

	// g2 has become inaccessible; every pick must come from g1.
	for _i := 0; _i < 50; _i++ {
		f, err := svc.PostRandom(ctx, "alice", nil, "", visible("g1"))
		require.NoError(t, err)
		assert.Equal(t, "g1", f.GuildID)
	}

	// Nothing visible at all.
	_, err := svc.PostRandom(ctx, "alice", nil, "", visible())
	assert.ErrorIs(t, err, ErrNoFavs)
}

func TestService_PostRandom_GuildScope(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	saveTagged(t, svc, "alice", "g1", nil)
	want := saveTagged(t, svc, "alice", "g2", nil)

	g2 := "g2"
	f, err := svc.PostRandom(ctx, "alice", &g2, "", visible("g1", "g2"))
	require.NoError(t, err)
	assert.Equal(t, want.ID, f.ID)
}

func TestService_PostRandom_UsesPick(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	saveTagged(t, svc, "alice", "g1", nil)
	saveTagged(t, svc, "alice", "g1", nil)
	saveTagged(t, svc, "alice", "g1", nil)

	// Deterministic pick exercises the selection plumbing.
	var sawN int
	svc.pick = func(n int) int {
		sawN = n
		return n - 1
	}

	_, err := svc.PostRandom(ctx, "alice", nil, "", visible("g1"))
	require.NoError(t, err)
	assert.Equal(t, 3, sawN)
}

func TestService_TagCounts_Asymmetry(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	saveTagged(t, svc, "alice", "g1", []string{"a", "b"})
	saveTagged(t, svc, "alice", "g1", []string{"b", "c"})

	// The filter selects favs carrying "a", but counts cover every tag on
	// the selected favs. "c" stays out because its fav did not match.
	counts, err := svc.TagCounts(ctx, "alice", nil, "a")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1, "b": 1}, counts)
}

func TestService_TagCounts_AllFavs(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	saveTagged(t, svc, "alice", "g1", []string{"a", "b"})
	saveTagged(t, svc, "alice", "g2", []string{"b"})
	saveTagged(t, svc, "alice", "g2", nil)

	counts, err := svc.TagCounts(ctx, "alice", nil, "")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, counts)

	g2 := "g2"
	counts, err = svc.TagCounts(ctx, "alice", &g2, "")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"b": 1}, counts)
}

func TestService_TagCounts_NoFavs(t *testing.T) {
	svc := setupService(t)

	_, err := svc.TagCounts(context.Background(), "alice", nil, "")
	assert.ErrorIs(t, err, ErrNoFavs)
}

func TestService_TagCounts_BlankTokensDropped(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	saveTagged(t, svc, "alice", "g1", []string{"a"})

	// Extra whitespace between tokens must not produce empty-string tags.
	counts, err := svc.TagCounts(ctx, "alice", nil, "  a   ")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, counts)
}

func TestService_RemoveFav_StaleID(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	f := saveTagged(t, svc, "alice", "g1", nil)
	require.NoError(t, svc.RemoveFav(ctx, f.ID))

	// Stale interactions referencing a deleted fav must not error.
	assert.NoError(t, svc.RemoveFav(ctx, f.ID))
	assert.NoError(t, svc.SetTags(ctx, f.ID, []string{"late"}))

	_, err := svc.GetFav(ctx, f.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSplitTags(t *testing.T) {
	assert.Empty(t, splitTags(""))
	assert.Empty(t, splitTags("   "))
	assert.Equal(t, []string{"a"}, splitTags("a"))
	assert.Equal(t, []string{"a", "b"}, splitTags(" a  b "))
	assert.Equal(t, []string{"a", "b"}, splitTags("a\tb\n"))
}
