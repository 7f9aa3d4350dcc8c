// Package store provides in-memory storage for favs.
//
// A Fav is a saved reference to a chat message (guild, channel, message and
// author ids) plus a replaceable tag set, owned by exactly one user. The
// Store interface exposes create/query/update/delete operations; MemoryStore
// is the only implementation. Favs live for the lifetime of the process,
// which is the intended design, not a placeholder for a database.
//
// # Concurrency
//
// MemoryStore is safe for concurrent use from multiple event handlers.
// Id allocation uses an atomic counter, so concurrent CreateFav calls always
// receive distinct ids. Mutations swap whole values under a write lock and
// queries return copies, so a reader never observes a half-applied tag
// replacement or aliases stored state.
//
// # Error Handling
//
// GetFav returns ErrNotFound for a missing id. SetTags and RemoveFav
// deliberately absorb missing ids as no-ops: stale reactions or interactions
// referencing an already-deleted fav must not fail the caller.
package store
