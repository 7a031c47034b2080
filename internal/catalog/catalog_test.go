package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m1nor/minorplay/internal/structures"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.toml")
	content := `
[[tracks]]
id = "track-1"
title = "Midnight City Lights"
artist = "M1NOR FM"
duration = 214
audio_url = "https://example.com/one.mp3"

[[tracks]]
title = "no id, skipped"
audio_url = "https://example.com/two.mp3"

[[tracks]]
id = "track-3"
title = "Neon Skyline"
artist = "M1NOR FM"
duration = 236
audio_url = "https://example.com/three.mp3"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tracks, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}
	if tracks[0].ID != "track-1" || tracks[1].ID != "track-3" {
		t.Errorf("unexpected ids: %q, %q", tracks[0].ID, tracks[1].ID)
	}
	if tracks[0].Duration != 214 {
		t.Errorf("Duration = %d, want 214", tracks[0].Duration)
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	tracks, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() on missing file failed: %v", err)
	}
	if tracks != nil {
		t.Errorf("got %d tracks, want none", len(tracks))
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.toml")
	if err := os.WriteFile(path, []byte("[[tracks]\nid="), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed TOML")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.toml")

	in := []structures.Track{
		{ID: "a", Title: "A", Artist: "X", Duration: 100, AudioURL: "https://example.com/a.mp3"},
		{ID: "b", Title: "B", Artist: "Y", Duration: 200, AudioURL: "https://example.com/b.mp3"},
	}

	if err := Save(path, in); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if len(out) != len(in) {
		t.Fatalf("got %d tracks, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("track %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}
