package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/m1nor/minorplay/internal/catalog"
	"github.com/m1nor/minorplay/internal/config"
	"github.com/m1nor/minorplay/internal/logger"
	"github.com/m1nor/minorplay/internal/player"
	"github.com/m1nor/minorplay/internal/store"
	"github.com/m1nor/minorplay/internal/structures"
	"github.com/m1nor/minorplay/internal/systems"
	"github.com/m1nor/minorplay/internal/ui"
	"github.com/m1nor/minorplay/internal/version"
)

const banner = `
███╗   ███╗ ██╗███╗   ██╗ ██████╗ ██████╗
████╗ ████║███║████╗  ██║██╔═══██╗██╔══██╗
██╔████╔██║╚██║██╔██╗ ██║██║   ██║██████╔╝
██║╚██╔╝██║ ██║██║╚██╗██║██║   ██║██╔══██╗
██║ ╚═╝ ██║ ██║██║ ╚████║╚██████╔╝██║  ██║
╚═╝     ╚═╝ ╚═╝╚═╝  ╚═══╝ ╚═════╝ ╚═╝  ╚═╝
          channel feeds AT terminal`

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showFiles   = flag.Bool("files", false, "Show file locations")
		showVersion = flag.Bool("version", false, "Show version")
		debugMode   = flag.Bool("debug", false, "Enable debug logging")
	)

	flag.Parse()

	if *showHelp {
		fmt.Println(banner)
		fmt.Println("\nUsage: minorplay [OPTIONS]")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		fmt.Println("\nKeyboard shortcuts:")
		fmt.Println("  Global controls:")
		fmt.Println("    Space       - Play/Pause")
		fmt.Println("    ←           - Seek backward")
		fmt.Println("    →           - Seek forward")
		fmt.Println("    + or =      - Volume up")
		fmt.Println("    - or _      - Volume down")
		fmt.Println("    n / p       - Next / previous track")
		fmt.Println("    c           - Continue where you left off")
		fmt.Println("    Ctrl+C/D    - Quit application")
		fmt.Println("")
		fmt.Println("  Navigation:")
		fmt.Println("    ↑ or k      - Move selection up")
		fmt.Println("    ↓ or j      - Move selection down")
		fmt.Println("    Enter or l  - Select item")
		fmt.Println("    Tab         - Next view")
		fmt.Println("    Shift+Tab   - Previous view")
		fmt.Println("    m           - Load more results")
		fmt.Println("    f           - Toggle favorite")
		return
	}

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	configDir, cacheDir, dataDir := getDirectories()

	if *showFiles {
		fmt.Println("# minorplay file locations:")
		fmt.Printf("  Config:  %s\n", configDir)
		fmt.Printf("  Catalog: %s\n", filepath.Join(configDir, "tracks.toml"))
		fmt.Printf("  Cache:   %s\n", cacheDir)
		fmt.Printf("  Data:    %s\n", dataDir)
		fmt.Printf("  Logs:    %s\n", filepath.Join(dataDir, "minorplay.log"))
		return
	}

	logLevel := logger.INFO
	if *debugMode {
		logLevel = logger.DEBUG
	}
	if err := logger.Init(filepath.Join(dataDir, "minorplay.log"), logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	configPath := filepath.Join(configDir, "config.toml")
	cfg := loadConfiguration(configPath)

	// Configuration problems are fatal before any network or UI work starts
	if err := config.Validate(cfg); err != nil {
		showConfigurationError(err, configPath)
		os.Exit(1)
	}

	st := openStore(dataDir)
	defer func() {
		logger.Debug("Closing state store")
		st.Close()
	}()

	tracks := loadCatalog(configDir)

	engine, err := player.New()
	if err != nil {
		logger.Error("Failed to create audio engine: %v", err)
		engine = nil
	}

	appSystems := systems.New(cfg, st, engine, cacheDir)
	appSystems.Player.SetCatalog(tracks)

	if err := appSystems.Start(context.Background()); err != nil {
		logger.Fatal("Failed to start systems: %v", err)
	}
	defer func() {
		logger.Debug("Stopping all application systems...")
		appSystems.Stop()
	}()

	logger.Debug("Starting UI")
	if err := ui.Run(appSystems, cfg); err != nil {
		logger.Fatal("Application error: %v", err)
	}

	logger.Info("minorplay shutdown complete")
}

func getDirectories() (config, cache, data string) {
	// Use XDG Base Directory specification
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		config = filepath.Join(xdgConfig, "minorplay")
	} else if home, err := os.UserHomeDir(); err == nil {
		config = filepath.Join(home, ".config", "minorplay")
	}

	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		cache = filepath.Join(xdgCache, "minorplay")
	} else if home, err := os.UserHomeDir(); err == nil {
		cache = filepath.Join(home, ".cache", "minorplay")
	}

	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		data = filepath.Join(xdgData, "minorplay")
	} else if home, err := os.UserHomeDir(); err == nil {
		data = filepath.Join(home, ".local", "share", "minorplay")
	}

	os.MkdirAll(config, 0755)
	os.MkdirAll(cache, 0755)
	os.MkdirAll(data, 0755)

	return
}

func loadConfiguration(configPath string) *structures.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Warn("Failed to load config, using defaults: %v", err)
		cfg = config.Default()

		if err := config.Save(cfg, configPath); err != nil {
			logger.Warn("Failed to save default config: %v", err)
		} else {
			logger.Info("Created default config at: %s", configPath)
		}
	} else {
		logger.Debug("Configuration loaded successfully from: %s", configPath)
	}
	return cfg
}

func showConfigurationError(err error, configPath string) {
	fmt.Println(banner)
	switch {
	case errors.Is(err, config.ErrMissingAPIKey):
		fmt.Println("\nNo YouTube API key configured!")
		fmt.Printf("Set api_key in %s or export YOUTUBE_API_KEY.\n", configPath)
	case errors.Is(err, config.ErrNoChannels):
		fmt.Println("\nNo channels configured!")
		fmt.Printf("Add at least one channel id to channel_ids in %s.\n", configPath)
	default:
		fmt.Printf("\nConfiguration error: %v\n", err)
	}
}

// openStore opens the SQLite state store and falls back to an in-memory
// store when the file cannot be opened. Favorites and the continue
// snapshot do not survive a restart in that mode.
func openStore(dataDir string) store.Store {
	st, err := store.OpenSQLite(filepath.Join(dataDir, "minorplay.db"))
	if err != nil {
		logger.Error("Failed to open state store, state will not persist: %v", err)
		return store.NewMemory()
	}
	logger.Debug("State store opened successfully")
	return st
}

func loadCatalog(configDir string) []structures.Track {
	path := filepath.Join(configDir, "tracks.toml")
	tracks, err := catalog.Load(path)
	if err != nil {
		logger.Error("Failed to load track catalog: %v", err)
		return nil
	}
	if len(tracks) == 0 {
		logger.Info("No track catalog at %s", path)
	}
	return tracks
}
