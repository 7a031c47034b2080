package systems

import (
	"encoding/json"
	"testing"

	"github.com/m1nor/minorplay/internal/store"
	"github.com/m1nor/minorplay/internal/structures"
)

func TestFavoritesToggleAddsAndRemoves(t *testing.T) {
	st := store.NewMemory()
	fs := NewFavoritesSystem(st)

	entry := structures.FavoriteEntry{ID: "v1", Type: "video", Title: "Clip"}

	if err := fs.Toggle(entry); err != nil {
		t.Fatalf("Toggle() failed: %v", err)
	}
	if !fs.IsFavorite("v1", "video") {
		t.Error("entry should be favorited after first toggle")
	}

	if err := fs.Toggle(entry); err != nil {
		t.Fatalf("Toggle() failed: %v", err)
	}
	if fs.IsFavorite("v1", "video") {
		t.Error("entry should be removed after second toggle")
	}

	// Double toggle leaves the persisted form empty as well
	raw, ok := st.Get(store.FavoritesKey)
	if !ok {
		t.Fatal("no favorites persisted")
	}
	var entries []structures.FavoriteEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		t.Fatalf("persisted favorites are not valid JSON: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("persisted %d entries, want 0", len(entries))
	}
}

func TestFavoritesKeyedByIDAndType(t *testing.T) {
	fs := NewFavoritesSystem(store.NewMemory())

	video := structures.FavoriteEntry{ID: "x", Type: "video", Title: "Video X"}
	track := structures.FavoriteEntry{ID: "x", Type: "track", Title: "Track X"}

	if err := fs.Toggle(video); err != nil {
		t.Fatal(err)
	}
	if err := fs.Toggle(track); err != nil {
		t.Fatal(err)
	}

	if !fs.IsFavorite("x", "video") || !fs.IsFavorite("x", "track") {
		t.Fatal("same id with different types should coexist")
	}

	// Removing one type leaves the other
	if err := fs.Toggle(video); err != nil {
		t.Fatal(err)
	}
	if fs.IsFavorite("x", "video") {
		t.Error("video favorite should be gone")
	}
	if !fs.IsFavorite("x", "track") {
		t.Error("track favorite should remain")
	}
}

func TestFavoritesInsertionOrderPreserved(t *testing.T) {
	fs := NewFavoritesSystem(store.NewMemory())

	for _, id := range []string{"c", "a", "b"} {
		if err := fs.Toggle(structures.FavoriteEntry{ID: id, Type: "video"}); err != nil {
			t.Fatal(err)
		}
	}

	all := fs.All()
	want := []string{"c", "a", "b"}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("All()[%d].ID = %q, want %q", i, all[i].ID, id)
		}
	}
}

func TestFavoritesRoundTripThroughStore(t *testing.T) {
	st := store.NewMemory()

	first := NewFavoritesSystem(st)
	if err := first.Toggle(structures.FavoriteEntry{ID: "v1", Type: "video", Title: "Clip"}); err != nil {
		t.Fatal(err)
	}

	// A fresh system over the same store sees the persisted collection
	second := NewFavoritesSystem(st)
	if !second.IsFavorite("v1", "video") {
		t.Error("persisted favorite not loaded by a fresh system")
	}
	if second.Count() != 1 {
		t.Errorf("Count() = %d, want 1", second.Count())
	}
}

func TestFavoritesMalformedSnapshotYieldsEmpty(t *testing.T) {
	st := store.NewMemory()
	if err := st.Set(store.FavoritesKey, "{broken"); err != nil {
		t.Fatal(err)
	}

	fs := NewFavoritesSystem(st)
	if fs.Count() != 0 {
		t.Errorf("Count() = %d, want 0 for malformed snapshot", fs.Count())
	}

	// The system is still usable afterwards
	if err := fs.Toggle(structures.FavoriteEntry{ID: "v1", Type: "video"}); err != nil {
		t.Fatalf("Toggle() after malformed snapshot failed: %v", err)
	}
	if !fs.IsFavorite("v1", "video") {
		t.Error("favorite not added after recovery")
	}
}
