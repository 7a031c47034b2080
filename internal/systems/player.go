package systems

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/m1nor/minorplay/internal/logger"
	"github.com/m1nor/minorplay/internal/store"
	"github.com/m1nor/minorplay/internal/structures"
)

// Engine is the audio backend the player system drives. The beep-based
// implementation lives in internal/player; tests substitute a fake.
type Engine interface {
	Load(path string) error
	Play() error
	Pause() error
	Stop() error
	Seek(pos time.Duration) error
	Position() time.Duration
	Duration() time.Duration
	IsPlaying() bool
	SetVolume(v float64)
	GetVolume() float64
	Close() error
}

// PlayerSystem manages audio playback over a fixed catalog of tracks.
type PlayerSystem struct {
	mu         sync.RWMutex
	config     *structures.Config
	store      store.Store
	engine     Engine
	state      *structures.PlayerState
	actionChan chan structures.PlayerAction
	stopChan   chan struct{}
	cacheDir   string
}

// NewPlayerSystem creates a new player system. A nil engine leaves the
// system in a degraded mode where state transitions still happen but no
// audio is produced.
func NewPlayerSystem(cfg *structures.Config, st store.Store, engine Engine, cacheDir string) *PlayerSystem {
	return &PlayerSystem{
		config:     cfg,
		store:      st,
		engine:     engine,
		actionChan: make(chan structures.PlayerAction, 100),
		stopChan:   make(chan struct{}),
		cacheDir:   cacheDir,
		state: &structures.PlayerState{
			Current: -1,
			Volume:  cfg.DefaultVolume,
		},
	}
}

// SetCatalog replaces the play queue. Playback position resets to idle.
func (ps *PlayerSystem) SetCatalog(tracks []structures.Track) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.state.Catalog = append([]structures.Track(nil), tracks...)
	ps.state.Current = -1
	ps.state.IsPlaying = false
}

// Start starts the player system.
func (ps *PlayerSystem) Start() error {
	if ps.engine != nil {
		ps.engine.SetVolume(ps.config.DefaultVolume)
	}
	go ps.run()
	go ps.updateLoop()
	return nil
}

// Stop stops the player system.
func (ps *PlayerSystem) Stop() {
	close(ps.stopChan)
	if ps.engine != nil {
		ps.engine.Close()
	}
}

// SendAction sends an action to the player.
func (ps *PlayerSystem) SendAction(action structures.PlayerAction) {
	select {
	case ps.actionChan <- action:
	default:
		// Channel full, drop action
	}
}

// GetState returns a copy of the current player state.
func (ps *PlayerSystem) GetState() structures.PlayerState {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	if ps.engine != nil && ps.state.Current >= 0 {
		ps.state.Volume = ps.engine.GetVolume()
		ps.state.IsPlaying = ps.engine.IsPlaying()
		ps.state.CurrentTime = ps.engine.Position()
		ps.state.TotalTime = ps.engine.Duration()
	}

	stateCopy := *ps.state
	stateCopy.Catalog = append([]structures.Track(nil), ps.state.Catalog...)

	return stateCopy
}

// LoadContinue reads the saved continue-listening snapshot. A missing or
// malformed snapshot yields ok=false; the store is left as-is.
func (ps *PlayerSystem) LoadContinue() (structures.ContinuePayload, bool) {
	raw, ok := ps.store.Get(store.ContinueListeningKey)
	if !ok {
		return structures.ContinuePayload{}, false
	}

	var payload structures.ContinuePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		logger.Warn("Ignoring malformed continue-listening snapshot: %v", err)
		return structures.ContinuePayload{}, false
	}

	if payload.TrackID == "" {
		return structures.ContinuePayload{}, false
	}

	return payload, true
}

// run is the main loop of the player system.
func (ps *PlayerSystem) run() {
	for {
		select {
		case action := <-ps.actionChan:
			ps.handleAction(action)

		case <-ps.stopChan:
			return
		}
	}
}

// updateLoop periodically updates the player state.
func (ps *PlayerSystem) updateLoop() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ps.mu.Lock()
			ps.handleTimeUpdate()
			ps.mu.Unlock()

		case <-ps.stopChan:
			return
		}
	}
}

// handleTimeUpdate syncs state from the engine, persists the
// continue-listening snapshot, and auto-advances at end of track.
// Caller holds ps.mu.
func (ps *PlayerSystem) handleTimeUpdate() {
	if ps.engine == nil || ps.state.Current < 0 {
		return
	}

	ps.state.CurrentTime = ps.engine.Position()
	ps.state.TotalTime = ps.engine.Duration()
	ps.state.IsPlaying = ps.engine.IsPlaying()

	if ps.state.IsPlaying {
		ps.persistContinue()

		// Check if we've reached the end of the current track
		if ps.state.TotalTime > 0 && ps.state.CurrentTime >= ps.state.TotalTime-time.Millisecond*100 {
			ps.nextTrack()
		}
	}
}

// persistContinue writes the continue-listening snapshot. The snapshot is
// overwritten wholesale on every tick; the last write wins. Caller holds ps.mu.
func (ps *PlayerSystem) persistContinue() {
	track, ok := ps.state.CurrentTrack()
	if !ok {
		return
	}

	payload := structures.ContinuePayload{
		TrackID:     track.ID,
		Title:       track.Title,
		Artist:      track.Artist,
		Thumbnail:   track.Thumbnail,
		AudioURL:    track.AudioURL,
		CurrentTime: ps.state.CurrentTime.Seconds(),
		Duration:    ps.state.TotalTime.Seconds(),
		UpdatedAt:   time.Now(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to encode continue-listening snapshot: %v", err)
		return
	}

	if err := ps.store.Set(store.ContinueListeningKey, string(data)); err != nil {
		logger.Error("Failed to save continue-listening snapshot: %v", err)
	}
}

// handleAction processes player actions.
func (ps *PlayerSystem) handleAction(action structures.PlayerAction) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	switch a := action.(type) {
	case structures.PlayTrackAction:
		idx := ps.indexOf(a.TrackID)
		if idx < 0 {
			logger.Warn("Track %s is not in the catalog", a.TrackID)
			return
		}
		ps.state.Current = idx
		ps.state.IsPlaying = true
		ps.loadCurrentTrack()

	case structures.PlayPauseAction:
		if ps.engine == nil || ps.state.Current < 0 {
			logger.Warn("No current track, cannot toggle playback")
			return
		}
		if ps.state.IsPlaying {
			if err := ps.engine.Pause(); err != nil {
				logger.Error("Failed to pause playback: %v", err)
			}
			ps.state.IsPlaying = false
		} else {
			ps.startPlayback()
		}

	case structures.PauseAction:
		if ps.engine == nil || ps.state.Current < 0 {
			return
		}
		if err := ps.engine.Pause(); err != nil {
			logger.Error("Failed to pause playback: %v", err)
		}
		ps.state.IsPlaying = false

	case structures.NextAction:
		ps.nextTrack()

	case structures.PreviousAction:
		ps.previousTrack()

	case structures.SeekAction:
		if ps.engine == nil || ps.state.Current < 0 {
			return
		}
		if err := ps.engine.Seek(a.Position); err != nil {
			logger.Error("Failed to seek: %v", err)
			return
		}
		ps.state.CurrentTime = a.Position

	case structures.SeekForwardAction:
		ps.seekBy(time.Duration(ps.config.SeekSeconds) * time.Second)

	case structures.SeekBackwardAction:
		ps.seekBy(-time.Duration(ps.config.SeekSeconds) * time.Second)

	case structures.VolumeUpAction:
		ps.setVolume(ps.state.Volume + 0.05)

	case structures.VolumeDownAction:
		ps.setVolume(ps.state.Volume - 0.05)

	case structures.SetVolumeAction:
		ps.setVolume(a.Volume)

	case structures.ResumeAction:
		ps.resumeFrom(a.Payload)

	case structures.StopAction:
		if ps.engine != nil {
			if err := ps.engine.Stop(); err != nil {
				logger.Error("Failed to stop playback: %v", err)
			}
		}
		ps.state.IsPlaying = false
		ps.state.Current = -1
		ps.state.CurrentTime = 0
		ps.state.TotalTime = 0
	}
}

// nextTrack advances to the next track, wrapping to the start of the
// catalog after the last entry. Caller holds ps.mu.
func (ps *PlayerSystem) nextTrack() {
	if len(ps.state.Catalog) == 0 {
		return
	}
	if ps.state.Current < 0 {
		ps.state.Current = 0
	} else {
		ps.state.Current = (ps.state.Current + 1) % len(ps.state.Catalog)
	}
	ps.loadCurrentTrack()
}

// previousTrack goes back one track, wrapping to the end of the catalog
// from the first entry. Caller holds ps.mu.
func (ps *PlayerSystem) previousTrack() {
	if len(ps.state.Catalog) == 0 {
		return
	}
	if ps.state.Current < 0 {
		ps.state.Current = 0
	} else {
		ps.state.Current = (ps.state.Current - 1 + len(ps.state.Catalog)) % len(ps.state.Catalog)
	}
	ps.loadCurrentTrack()
}

// resumeFrom restores a saved listening position: load the track, seek to
// the saved offset, then request playback. Caller holds ps.mu.
func (ps *PlayerSystem) resumeFrom(payload structures.ContinuePayload) {
	idx := ps.indexOf(payload.TrackID)
	if idx < 0 {
		logger.Warn("Saved track %s is no longer in the catalog", payload.TrackID)
		return
	}

	ps.state.Current = idx
	ps.state.IsPlaying = false
	ps.loadCurrentTrack()

	if ps.engine == nil {
		return
	}

	offset := time.Duration(payload.CurrentTime * float64(time.Second))
	if err := ps.engine.Seek(offset); err != nil {
		logger.Error("Failed to seek to saved position: %v", err)
	} else {
		ps.state.CurrentTime = offset
	}

	ps.startPlayback()
}

func (ps *PlayerSystem) seekBy(delta time.Duration) {
	if ps.engine == nil || ps.state.Current < 0 {
		return
	}

	pos := ps.engine.Position() + delta
	if pos < 0 {
		pos = 0
	}
	if total := ps.engine.Duration(); total > 0 && pos > total {
		pos = total
	}

	if err := ps.engine.Seek(pos); err != nil {
		logger.Error("Failed to seek: %v", err)
		return
	}
	ps.state.CurrentTime = pos
}

func (ps *PlayerSystem) setVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	ps.state.Volume = v
	if ps.engine != nil {
		ps.engine.SetVolume(v)
	}
}

// startPlayback asks the engine to play. A rejected play request leaves the
// player paused rather than propagating the error. Caller holds ps.mu.
func (ps *PlayerSystem) startPlayback() {
	if err := ps.engine.Play(); err != nil {
		logger.Error("Playback request rejected: %v", err)
		ps.state.IsPlaying = false
		return
	}
	ps.state.IsPlaying = true
	ps.state.CurrentTime = ps.engine.Position()
	ps.state.TotalTime = ps.engine.Duration()
}

// loadCurrentTrack loads the current track into the engine and, if the
// player was playing, continues playback. Caller holds ps.mu.
func (ps *PlayerSystem) loadCurrentTrack() {
	track, ok := ps.state.CurrentTrack()
	if !ok || ps.engine == nil {
		return
	}

	logger.Info("Loading track: %s by %s", track.Title, track.Artist)

	path, err := ps.ensureLocal(track)
	if err != nil {
		logger.Error("Failed to fetch audio for %s: %v", track.ID, err)
		ps.state.IsPlaying = false
		return
	}

	if err := ps.engine.Load(path); err != nil {
		logger.Error("Failed to load file %s: %v", path, err)
		ps.state.IsPlaying = false
		return
	}

	ps.state.TotalTime = ps.engine.Duration()
	ps.state.CurrentTime = 0

	if ps.state.IsPlaying {
		ps.startPlayback()
	}
}

// ensureLocal resolves a track's audio source to a local file, downloading
// remote URLs into the cache directory on first use.
func (ps *PlayerSystem) ensureLocal(track structures.Track) (string, error) {
	src := track.AudioURL
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		if _, err := os.Stat(src); err != nil {
			return "", fmt.Errorf("audio file not found: %w", err)
		}
		return src, nil
	}

	cachePath := filepath.Join(ps.cacheDir, "audio", track.ID+".mp3")
	if _, err := os.Stat(cachePath); err == nil {
		return cachePath, nil
	}

	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	resp, err := http.Get(src)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download %s: status %d", src, resp.StatusCode)
	}

	tmp := cachePath + ".part"

	out, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("failed to create cache file: %w", err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write cache file: %w", err)
	}

	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to close cache file: %w", err)
	}

	if err := os.Rename(tmp, cachePath); err != nil {
		return "", fmt.Errorf("failed to finalize cache file: %w", err)
	}

	return cachePath, nil
}

func (ps *PlayerSystem) indexOf(trackID string) int {
	for i, track := range ps.state.Catalog {
		if track.ID == trackID {
			return i
		}
	}
	return -1
}
