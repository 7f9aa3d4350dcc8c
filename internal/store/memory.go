// ABOUTME: In-memory Store implementation backing the fav bot
// ABOUTME: RWMutex-guarded map with a per-store atomic id counter

package store

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
)

// MemoryStore is the process-lifetime Store implementation. Favs live in a
// map guarded by an RWMutex; ids come from a per-store atomic counter so
// separate instances (e.g. in tests) never collide.
type MemoryStore struct {
	mu     sync.RWMutex
	favs   map[string]*Fav // keyed by fav ID
	nextID atomic.Int64
	logger *slog.Logger
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(logger *slog.Logger) *MemoryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryStore{
		favs:   make(map[string]*Fav),
		logger: logger.With("component", "store"),
	}
}

// CreateFav allocates the next id and inserts a fav with empty tags.
func (m *MemoryStore) CreateFav(ctx context.Context, userID, guildID, channelID, messageID, authorID string) (string, error) {
	id := strconv.FormatInt(m.nextID.Add(1), 10)

	f := &Fav{
		ID:        id,
		UserID:    userID,
		GuildID:   guildID,
		ChannelID: channelID,
		MessageID: messageID,
		AuthorID:  authorID,
		Tags:      []string{},
	}

	m.mu.Lock()
	m.favs[id] = f
	m.mu.Unlock()

	return id, nil
}

// GetFav retrieves a fav by id.
func (m *MemoryStore) GetFav(ctx context.Context, id string) (*Fav, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.favs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyFav(f), nil
}

// GetFavs returns copies of all favs matching the filter.
func (m *MemoryStore) GetFavs(ctx context.Context, filter Filter) ([]*Fav, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Fav, 0)
	for _, f := range m.favs {
		if filter.Matches(f) {
			result = append(result, copyFav(f))
		}
	}
	return result, nil
}

// SetTags replaces the fav's tag set as a unit. The stored Fav value is
// swapped, never mutated in place, so concurrent readers see either the
// old set or the new one.
func (m *MemoryStore) SetTags(ctx context.Context, id string, tags []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.favs[id]
	if !ok {
		m.logger.Debug("set tags on unknown fav, ignoring", "fav_id", id)
		return nil
	}

	updated := *f
	updated.Tags = append([]string{}, tags...)
	m.favs[id] = &updated
	return nil
}

// RemoveFav deletes a fav. Deleting an unknown id is a no-op.
func (m *MemoryStore) RemoveFav(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.favs, id)
	return nil
}

// Close is a no-op for MemoryStore.
func (m *MemoryStore) Close() error {
	return nil
}

// copyFav returns a deep copy so callers never alias stored state.
func copyFav(f *Fav) *Fav {
	c := *f
	c.Tags = append([]string{}, f.Tags...)
	return &c
}

// Verify MemoryStore implements Store interface at compile time.
var _ Store = (*MemoryStore)(nil)
