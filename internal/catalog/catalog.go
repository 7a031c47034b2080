// Package catalog loads the track catalog for the listening queue.
package catalog

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/m1nor/minorplay/internal/logger"
	"github.com/m1nor/minorplay/internal/structures"
)

type catalogFile struct {
	Tracks []structures.Track `toml:"tracks"`
}

// Load reads the track catalog from a TOML file. A missing file is not an
// error; it yields an empty catalog. Entries without an id or audio source
// are skipped.
func Load(path string) ([]structures.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	tracks := make([]structures.Track, 0, len(file.Tracks))
	for _, t := range file.Tracks {
		if t.ID == "" || t.AudioURL == "" {
			logger.Warn("Skipping catalog entry without id or audio url: %q", t.Title)
			continue
		}
		tracks = append(tracks, t)
	}

	return tracks, nil
}

// Save writes the track catalog. Used to seed a default catalog file on
// first run.
func Save(path string, tracks []structures.Track) error {
	data, err := toml.Marshal(catalogFile{Tracks: tracks})
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}

	return nil
}
