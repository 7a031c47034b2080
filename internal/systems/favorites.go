package systems

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/m1nor/minorplay/internal/logger"
	"github.com/m1nor/minorplay/internal/store"
	"github.com/m1nor/minorplay/internal/structures"
)

// FavoritesSystem keeps the user's saved-content collection. Entries are
// keyed by (ID, Type) so a video and a track with the same ID coexist, and
// the whole sequence is persisted on every change.
type FavoritesSystem struct {
	mu      sync.RWMutex
	store   store.Store
	entries []structures.FavoriteEntry
}

// NewFavoritesSystem creates a favorites system and loads the persisted
// collection. A missing or malformed snapshot yields an empty collection.
func NewFavoritesSystem(st store.Store) *FavoritesSystem {
	fs := &FavoritesSystem{store: st}

	raw, ok := st.Get(store.FavoritesKey)
	if !ok {
		return fs
	}

	if err := json.Unmarshal([]byte(raw), &fs.entries); err != nil {
		logger.Warn("Ignoring malformed favorites snapshot: %v", err)
		fs.entries = nil
	}

	return fs
}

// Toggle adds the entry if it is not in the collection, removes it if it
// is, and persists the result before returning.
func (fs *FavoritesSystem) Toggle(entry structures.FavoriteEntry) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	idx := fs.indexOf(entry.ID, entry.Type)
	if idx >= 0 {
		fs.entries = append(fs.entries[:idx], fs.entries[idx+1:]...)
	} else {
		fs.entries = append(fs.entries, entry)
	}

	return fs.persist()
}

// IsFavorite reports whether (id, typ) is in the collection.
func (fs *FavoritesSystem) IsFavorite(id, typ string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.indexOf(id, typ) >= 0
}

// All returns the collection in insertion order.
func (fs *FavoritesSystem) All() []structures.FavoriteEntry {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	out := make([]structures.FavoriteEntry, len(fs.entries))
	copy(out, fs.entries)
	return out
}

// Count returns the number of saved entries.
func (fs *FavoritesSystem) Count() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.entries)
}

// persist writes the full collection. Caller holds fs.mu.
func (fs *FavoritesSystem) persist() error {
	data, err := json.Marshal(fs.entries)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}

	if err := fs.store.Set(store.FavoritesKey, string(data)); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}

	return nil
}

// indexOf returns the position of (id, typ) or -1. Caller holds fs.mu.
func (fs *FavoritesSystem) indexOf(id, typ string) int {
	for i, e := range fs.entries {
		if e.ID == id && e.Type == typ {
			return i
		}
	}
	return -1
}
