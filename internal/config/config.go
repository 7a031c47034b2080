package config

import (
	"errors"
	"os"

	"github.com/m1nor/minorplay/internal/structures"
	"github.com/pelletier/go-toml/v2"
)

// ErrMissingAPIKey is returned by Validate when no source API credential is
// available from either the config file or the environment.
var ErrMissingAPIKey = errors.New("config: missing YouTube API key (set api_key or YOUTUBE_API_KEY)")

// ErrNoChannels is returned by Validate when no channel ids are configured.
var ErrNoChannels = errors.New("config: no channel_ids configured")

// Load loads the configuration from a TOML file. Environment overrides are
// applied after the file is read.
func Load(path string) (*structures.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)

	return cfg, nil
}

// Save saves the configuration to a TOML file.
func Save(cfg *structures.Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that the configuration can reach the source API. The
// missing-credential case is fatal and must surface before any network call.
func Validate(cfg *structures.Config) error {
	if cfg.APIKey == "" {
		return ErrMissingAPIKey
	}
	if len(cfg.ChannelIDs) == 0 {
		return ErrNoChannels
	}
	return nil
}

// applyEnv overrides config values from the environment. Env wins over file.
func applyEnv(cfg *structures.Config) {
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		cfg.APIKey = v
	}
}

// Default returns the default configuration.
func Default() *structures.Config {
	cfg := &structures.Config{
		PageSize:      12,
		DefaultVolume: 0.7,
		SeekSeconds:   5,
		Theme: structures.Theme{
			Foreground:      "#c0caf5",
			Selected:        "#7aa2f7",
			Playing:         "#9ece6a",
			Favorite:        "#f7768e",
			Border:          "#3b4261",
			ProgressBar:     "#565f89",
			ProgressBarFill: "#7aa2f7",
		},
		KeyBindings: structures.KeyBindings{
			PlayPause:    "space",
			Quit:         "ctrl+d",
			VolumeUp:     []string{"+", "="},
			VolumeDown:   []string{"-", "_"},
			SeekForward:  "right",
			SeekBackward: "left",

			MoveUp:   []string{"up", "k"},
			MoveDown: []string{"down", "j"},
			Select:   []string{"enter", "l"},
			Back:     []string{"esc", "backspace"},

			NextView:  "tab",
			PrevView:  "shift+tab",
			LoadMore:  "m",
			Favorite:  "f",
			NextTrack: "n",
			PrevTrack: "p",
			Resume:    "c",
		},
	}

	applyEnv(cfg)

	return cfg
}
