// ABOUTME: Service is the command layer between decoded user intents and the fav store
// ABOUTME: Owns selection, tag filtering and tag aggregation; holds no state itself

package favs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/2389/favbot/internal/store"
)

// ErrNoFavs is returned when a query matched no favs. It is a user-facing
// empty-result condition for the adapter to render, not a system failure.
var ErrNoFavs = errors.New("no favs found")

// FavStore defines what the service needs from storage
type FavStore interface {
	CreateFav(ctx context.Context, userID, guildID, channelID, messageID, authorID string) (string, error)
	GetFav(ctx context.Context, id string) (*store.Fav, error)
	GetFavs(ctx context.Context, filter store.Filter) ([]*store.Fav, error)
	SetTags(ctx context.Context, id string, tags []string) error
	RemoveFav(ctx context.Context, id string) error
}

// Service turns decoded user intents into fav store calls and result values.
// It never talks to the chat platform; the adapter renders what it returns.
type Service struct {
	store  FavStore
	logger *slog.Logger

	// pick chooses an index in [0, n); injectable so selection is testable.
	pick func(n int) int
}

// New creates a new fav Service backed by the given store.
func New(favStore FavStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  favStore,
		logger: logger.With("component", "favs"),
		pick:   rand.Intn,
	}
}

// SaveFav creates a fav for the referenced message and returns it.
func (s *Service) SaveFav(ctx context.Context, userID, guildID, channelID, messageID, authorID string) (*store.Fav, error) {
	id, err := s.store.CreateFav(ctx, userID, guildID, channelID, messageID, authorID)
	if err != nil {
		return nil, fmt.Errorf("creating fav: %w", err)
	}

	s.logger.Debug("fav saved",
		"fav_id", id,
		"user_id", userID,
		"guild_id", guildID)

	return s.store.GetFav(ctx, id)
}

// PostRandom picks one fav uniformly at random from the user's favs matching
// the tag filter, restricted to guilds in visibleGuilds (a fav saved in a
// guild the bot can no longer see is never selected). Returns ErrNoFavs when
// nothing survives the filters.
func (s *Service) PostRandom(ctx context.Context, userID string, guildID *string, tagFilter string, visibleGuilds map[string]bool) (*store.Fav, error) {
	favs, err := s.store.GetFavs(ctx, store.Filter{
		UserID:  userID,
		GuildID: guildID,
		Tags:    splitTags(tagFilter),
	})
	if err != nil {
		return nil, fmt.Errorf("querying favs: %w", err)
	}

	visible := favs[:0]
	for _, f := range favs {
		if visibleGuilds[f.GuildID] {
			visible = append(visible, f)
		}
	}

	if len(visible) == 0 {
		return nil, ErrNoFavs
	}
	return visible[s.pick(len(visible))], nil
}

// TagCounts aggregates tag usage over the user's favs matching the tag
// filter. The filter selects favs carrying at least one requested tag, but
// the returned counts cover every tag on those favs, not only the requested
// ones. Returns ErrNoFavs when no fav matched.
func (s *Service) TagCounts(ctx context.Context, userID string, guildID *string, tagFilter string) (map[string]int, error) {
	favs, err := s.store.GetFavs(ctx, store.Filter{
		UserID:  userID,
		GuildID: guildID,
		Tags:    splitTags(tagFilter),
	})
	if err != nil {
		return nil, fmt.Errorf("querying favs: %w", err)
	}

	if len(favs) == 0 {
		return nil, ErrNoFavs
	}

	counts := make(map[string]int)
	for _, f := range favs {
		for _, tag := range f.Tags {
			counts[tag]++
		}
	}
	return counts, nil
}

// SetTags replaces the tag set of a fav. A stale id is tolerated silently,
// matching the store contract.
func (s *Service) SetTags(ctx context.Context, id string, tags []string) error {
	return s.store.SetTags(ctx, id, tags)
}

// RemoveFav deletes a fav. A stale id is tolerated silently.
func (s *Service) RemoveFav(ctx context.Context, id string) error {
	return s.store.RemoveFav(ctx, id)
}

// GetFav returns a single fav by id, or store.ErrNotFound.
func (s *Service) GetFav(ctx context.Context, id string) (*store.Fav, error) {
	return s.store.GetFav(ctx, id)
}

// splitTags turns a user-supplied filter string into a tag list. Splitting
// on any whitespace drops blank tokens, so an empty or all-space input
// yields an empty list and therefore no tag filtering.
func splitTags(filter string) []string {
	return strings.Fields(filter)
}
