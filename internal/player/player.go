package player

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"

	"github.com/m1nor/minorplay/internal/logger"
)

// Player is the beep-based audio engine.
type Player struct {
	mu                 sync.RWMutex
	streamer           beep.StreamSeekCloser
	ctrl               *beep.Ctrl
	volume             *effects.Volume
	format             beep.Format
	isPlaying          bool
	currentFile        string
	duration           time.Duration
	linear             float64
	speakerInitialized bool
	currentSampleRate  beep.SampleRate
}

// New creates a new audio engine. The speaker is initialized lazily on the
// first file load, once the sample rate is known.
func New() (*Player, error) {
	logger.Debug("Audio engine created (speaker will be initialized on first file load)")
	return &Player{linear: 0.5}, nil
}

// Load loads an audio file for playback. The file is decoded as MP3 and
// queued paused.
func (p *Player) Load(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}

	if p.speakerInitialized {
		speaker.Clear()
	}

	p.ctrl = nil
	p.volume = nil
	p.duration = 0

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}

	streamer, format, err := mp3.Decode(file)
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to decode MP3: %w", err)
	}

	volume := &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   0,
		Silent:   false,
	}

	ctrl := &beep.Ctrl{
		Streamer: volume,
		Paused:   true,
	}

	p.streamer = streamer
	p.ctrl = ctrl
	p.volume = volume
	p.format = format
	p.currentFile = path
	p.isPlaying = false
	p.duration = p.format.SampleRate.D(streamer.Len())

	if !p.speakerInitialized || p.currentSampleRate != format.SampleRate {
		if p.speakerInitialized {
			speaker.Close()
			time.Sleep(100 * time.Millisecond) // Give it time to close
		}

		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			return fmt.Errorf("failed to initialize speaker for sample rate %d: %w", format.SampleRate, err)
		}

		p.speakerInitialized = true
		p.currentSampleRate = format.SampleRate
		logger.Debug("Speaker initialized with sample rate: %d Hz", format.SampleRate)
	}

	p.applyVolume()

	speaker.Clear()
	speaker.Play(ctrl)

	logger.Debug("Loaded file: %s, duration: %v", path, p.duration)

	return nil
}

// Play starts playback of the loaded file.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil {
		return fmt.Errorf("no file loaded")
	}

	speaker.Lock()
	p.ctrl.Paused = false
	p.isPlaying = true
	speaker.Unlock()

	return nil
}

// Pause pauses playback.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil {
		return fmt.Errorf("no file loaded")
	}

	speaker.Lock()
	p.ctrl.Paused = true
	p.isPlaying = false
	speaker.Unlock()

	return nil
}

// Stop stops playback and rewinds to the start.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil || !p.speakerInitialized {
		return nil
	}

	speaker.Clear()

	if p.streamer != nil {
		if err := p.streamer.Seek(0); err != nil {
			logger.Error("Error seeking to start: %v", err)
		}
	}

	p.isPlaying = false

	return nil
}

// Seek seeks to a specific position, clamped to the file's bounds.
func (p *Player) Seek(pos time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return fmt.Errorf("no file loaded")
	}

	if pos < 0 {
		pos = 0
	}
	if pos > p.duration {
		pos = p.duration
	}

	samplePos := p.format.SampleRate.N(pos)
	if length := p.streamer.Len(); samplePos >= length {
		samplePos = length - 1
		if samplePos < 0 {
			samplePos = 0
		}
	}

	// Pause and clear while repositioning to avoid a burst of stale samples
	wasPlaying := p.isPlaying
	if wasPlaying && p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Paused = true
		speaker.Unlock()
		speaker.Clear()
	}

	if err := p.streamer.Seek(samplePos); err != nil {
		logger.Debug("Seek to sample %d failed: %v", samplePos, err)
		if err := p.streamer.Seek(0); err != nil {
			return fmt.Errorf("failed to reset position: %w", err)
		}
	}

	if wasPlaying && p.ctrl != nil {
		speaker.Play(p.ctrl)
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
	}

	return nil
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.streamer == nil {
		return 0
	}

	return p.format.SampleRate.D(p.streamer.Position())
}

// Duration returns the total duration of the loaded file.
func (p *Player) Duration() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.duration
}

// IsPlaying returns whether the engine is currently playing.
func (p *Player) IsPlaying() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isPlaying && p.ctrl != nil && !p.ctrl.Paused
}

// SetVolume sets the volume (0.0 to 1.0). The value is remembered and
// applied to files loaded later as well.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.linear = v

	if p.volume == nil || !p.speakerInitialized {
		return
	}

	speaker.Lock()
	p.applyVolume()
	speaker.Unlock()
}

// applyVolume maps the linear volume onto the dB scale of the effects
// node. Caller holds p.mu and, when audio is live, the speaker lock.
func (p *Player) applyVolume() {
	if p.volume == nil {
		return
	}

	if p.linear <= 0 {
		p.volume.Silent = true
		return
	}

	p.volume.Silent = false
	p.volume.Volume = 20 * (p.linear - 1)
}

// GetVolume returns the current volume (0.0 to 1.0).
func (p *Player) GetVolume() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.linear
}

// GetCurrentFile returns the currently loaded file.
func (p *Player) GetCurrentFile() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.currentFile
}

// Close closes the engine and releases resources.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer != nil {
		p.streamer.Close()
	}

	if p.speakerInitialized {
		speaker.Close()
		p.speakerInitialized = false
	}

	return nil
}
