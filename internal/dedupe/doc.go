// Package dedupe provides a TTL-based cache for deduplicating platform
// events. The Discord gateway may redeliver reaction and message events
// after a reconnect; handlers call Seen with a key derived from the event
// identity and skip the work when it returns true.
package dedupe
