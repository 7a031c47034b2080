package systems

import (
	"context"

	"github.com/m1nor/minorplay/internal/store"
	"github.com/m1nor/minorplay/internal/structures"
)

// Systems contains all the core systems of the application
type Systems struct {
	Config    *structures.Config
	Store     store.Store
	CacheDir  string
	Player    *PlayerSystem
	Feed      *FeedSystem
	Favorites *FavoritesSystem
}

// New creates a new Systems instance
func New(cfg *structures.Config, st store.Store, engine Engine, cacheDir string) *Systems {
	s := &Systems{
		Config:   cfg,
		Store:    st,
		CacheDir: cacheDir,
	}

	// Initialize subsystems
	s.Player = NewPlayerSystem(cfg, st, engine, cacheDir)
	s.Feed = NewFeedSystem(cfg)
	s.Favorites = NewFavoritesSystem(st)

	return s
}

// Start initializes the API client and starts all systems.
func (s *Systems) Start(ctx context.Context) error {
	if err := s.Feed.Initialize(ctx); err != nil {
		return err
	}

	return s.Player.Start()
}

// Stop stops all systems
func (s *Systems) Stop() error {
	s.Player.Stop()
	return nil
}
