// ABOUTME: Store interface and data types for favbot persistence
// ABOUTME: Defines the Fav struct, query Filter and the Store interface

package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested fav does not exist
var ErrNotFound = errors.New("not found")

// Fav is a saved reference to one chat message plus user-assigned tags.
// Everything except Tags is immutable after creation.
type Fav struct {
	ID        string
	UserID    string
	GuildID   string
	ChannelID string
	MessageID string
	AuthorID  string
	Tags      []string
}

// HasAnyTag reports whether the fav carries at least one of the given tags.
// An empty query matches nothing; tag comparison treats Tags as a set.
func (f *Fav) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range f.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Filter selects favs in GetFavs. UserID is required. A nil GuildID matches
// every guild. An empty Tags slice matches favs regardless of their tags;
// otherwise a fav matches when its tag set intersects Tags.
type Filter struct {
	UserID  string
	GuildID *string
	Tags    []string
}

// Matches reports whether the fav satisfies every predicate of the filter.
func (q Filter) Matches(f *Fav) bool {
	if f.UserID != q.UserID {
		return false
	}
	if q.GuildID != nil && f.GuildID != *q.GuildID {
		return false
	}
	if len(q.Tags) > 0 && !f.HasAnyTag(q.Tags) {
		return false
	}
	return true
}

// Store defines the interface for fav persistence.
//
// Implementations must be safe for concurrent use: ids handed out by
// CreateFav are unique even under concurrent calls, and readers never
// observe a half-applied SetTags or RemoveFav.
type Store interface {
	// CreateFav inserts a new fav with no tags and returns its id.
	// Ids are assigned from a monotonically increasing counter and are
	// never reused, even after deletion.
	CreateFav(ctx context.Context, userID, guildID, channelID, messageID, authorID string) (string, error)

	// GetFav returns the fav with the given id, or ErrNotFound.
	GetFav(ctx context.Context, id string) (*Fav, error)

	// GetFavs returns all favs matching the filter. Result order is
	// unspecified; callers needing determinism must sort.
	GetFavs(ctx context.Context, filter Filter) ([]*Fav, error)

	// SetTags atomically replaces the full tag set of the fav with the
	// given id. A missing id is a no-op, not an error.
	SetTags(ctx context.Context, id string, tags []string) error

	// RemoveFav deletes the fav with the given id. A missing id is a
	// no-op, not an error.
	RemoveFav(ctx context.Context, id string) error

	// Close releases any resources held by the store
	Close() error
}
