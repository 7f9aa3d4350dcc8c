// Package favs implements the command layer of the fav bot.
//
// The Service receives already-decoded intents (save fav, post a random fav,
// list tag counts, retag, remove) from the platform adapter, calls the fav
// store, and hands back a plain result for the adapter to render. Empty
// results surface as the ErrNoFavs sentinel rather than platform errors, so
// the adapter can turn them into user-visible messages.
//
// Random selection is approximately uniform over the favs surviving the
// user/guild/tag filters and the visible-guild restriction supplied by the
// adapter. The pick function is injectable for deterministic tests.
package favs
