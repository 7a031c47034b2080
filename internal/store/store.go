// Package store provides the persistent key-value store backing the
// continue-listening snapshot and the favorites list.
package store

// Well-known keys. Values under these keys are JSON-encoded records and are
// always overwritten wholesale.
const (
	ContinueListeningKey = "continue_listening"
	FavoritesKey         = "favorites"
)

// Store is a synchronous string key-value store. A missing key reports
// ok=false; callers treat malformed values the same as missing ones.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Close() error
}
