package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
api_key = "file-key"
channel_ids = ["UC123"]
page_size = 25
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want file-key", cfg.APIKey)
	}
	if cfg.PageSize != 25 {
		t.Errorf("PageSize = %d, want 25", cfg.PageSize)
	}

	// Unset fields keep their defaults
	if cfg.DefaultVolume != 0.7 {
		t.Errorf("DefaultVolume = %v, want default 0.7", cfg.DefaultVolume)
	}
	if cfg.KeyBindings.PlayPause != "space" {
		t.Errorf("PlayPause = %q, want default space", cfg.KeyBindings.PlayPause)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_key = "file-key"`), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("YOUTUBE_API_KEY", "env-key")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", cfg.APIKey)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "")

	cfg := Default()
	cfg.APIKey = ""
	if err := Validate(cfg); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Validate() without key = %v, want %v", err, ErrMissingAPIKey)
	}

	cfg.APIKey = "key"
	if err := Validate(cfg); !errors.Is(err, ErrNoChannels) {
		t.Errorf("Validate() without channels = %v, want %v", err, ErrNoChannels)
	}

	cfg.ChannelIDs = []string{"UC123"}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.APIKey = "saved-key"
	cfg.ChannelIDs = []string{"UCabc"}

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if loaded.APIKey != "saved-key" {
		t.Errorf("APIKey = %q, want saved-key", loaded.APIKey)
	}
	if len(loaded.ChannelIDs) != 1 || loaded.ChannelIDs[0] != "UCabc" {
		t.Errorf("ChannelIDs = %v", loaded.ChannelIDs)
	}
}
