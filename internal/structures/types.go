package structures

import (
	"time"
)

// ContentItem is one video record returned by the source channel search,
// annotated with detail data once the batched detail fetch has joined.
type ContentItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ChannelName  string    `json:"channel_name"`
	PublishedAt  time.Time `json:"published_at"`
	ThumbnailURL string    `json:"thumbnail_url"`

	// Duration is valid only when DurationKnown is true. Upstream omits
	// duration for freshly published items and the detail record may be
	// missing entirely.
	Duration      int  `json:"duration"`
	DurationKnown bool `json:"duration_known"`

	// IsShortForm is derived by the classifier, not upstream data.
	IsShortForm bool `json:"is_short_form"`
}

// Page is one window of aggregated results. NextPageToken is empty when the
// source has no further pages.
type Page struct {
	Items         []ContentItem
	NextPageToken string
}

// Track is an audio-playable catalog entry. Immutable once loaded.
type Track struct {
	ID        string `toml:"id"        json:"id"`
	Title     string `toml:"title"     json:"title"`
	Artist    string `toml:"artist"    json:"artist"`
	Duration  int    `toml:"duration"  json:"duration"` // in seconds
	AudioURL  string `toml:"audio_url" json:"audio_url"`
	Thumbnail string `toml:"thumbnail" json:"thumbnail,omitempty"`
}

// ContinuePayload is the persisted continue-listening snapshot. It is
// overwritten wholesale on every playback tick; only the latest position
// survives.
type ContinuePayload struct {
	TrackID     string    `json:"track_id"`
	Title       string    `json:"title"`
	Artist      string    `json:"artist"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	AudioURL    string    `json:"audio_url"`
	CurrentTime float64   `json:"current_time"`
	Duration    float64   `json:"duration"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FavoriteEntry is a favorited item keyed by (ID, Type). Type distinguishes
// videos from audio tracks so the same upstream id can be favorited as both.
type FavoriteEntry struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Meta      string `json:"meta,omitempty"`
	Link      string `json:"link,omitempty"`
}

// PlayerAction is an action sent to the player system.
type PlayerAction interface{}

// Player actions.
type PlayTrackAction struct{ TrackID string }
type PlayPauseAction struct{}
type PauseAction struct{}
type NextAction struct{}
type PreviousAction struct{}
type SeekAction struct{ Position time.Duration }
type SeekForwardAction struct{}
type SeekBackwardAction struct{}
type VolumeUpAction struct{}
type VolumeDownAction struct{}
type SetVolumeAction struct{ Volume float64 }
type ResumeAction struct{ Payload ContinuePayload }
type StopAction struct{}

// PlayerState is a snapshot of the playback state machine. Current is -1
// when no track is loaded; IsPlaying is false whenever Current is -1.
type PlayerState struct {
	Catalog     []Track
	Current     int
	IsPlaying   bool
	CurrentTime time.Duration
	TotalTime   time.Duration
	Volume      float64
}

// CurrentTrack returns the active track, if any.
func (s PlayerState) CurrentTrack() (Track, bool) {
	if s.Current < 0 || s.Current >= len(s.Catalog) {
		return Track{}, false
	}
	return s.Catalog[s.Current], true
}

// Config is the application configuration.
type Config struct {
	Theme       Theme       `toml:"theme"`
	KeyBindings KeyBindings `toml:"key_bindings"`

	// Source configuration. APIKey may be overridden by the
	// YOUTUBE_API_KEY environment variable.
	APIKey     string   `toml:"api_key"`
	ChannelIDs []string `toml:"channel_ids"`
	PageSize   int64    `toml:"page_size"`

	// Player configuration.
	DefaultVolume float64 `toml:"default_volume"`
	SeekSeconds   int     `toml:"seek_seconds"`
}

// Theme is the UI color theme.
type Theme struct {
	Foreground      string `toml:"foreground"`
	Selected        string `toml:"selected"`
	Playing         string `toml:"playing"`
	Favorite        string `toml:"favorite"`
	Border          string `toml:"border"`
	ProgressBar     string `toml:"progress_bar"`
	ProgressBarFill string `toml:"progress_bar_fill"`
}

// KeyBindings are the configurable keyboard shortcuts.
type KeyBindings struct {
	PlayPause    string   `toml:"play_pause"`
	Quit         string   `toml:"quit"`
	VolumeUp     []string `toml:"volume_up"`
	VolumeDown   []string `toml:"volume_down"`
	SeekForward  string   `toml:"seek_forward"`
	SeekBackward string   `toml:"seek_backward"`

	MoveUp   []string `toml:"move_up"`
	MoveDown []string `toml:"move_down"`
	Select   []string `toml:"select"`
	Back     []string `toml:"back"`

	NextView  string `toml:"next_view"`
	PrevView  string `toml:"prev_view"`
	LoadMore  string `toml:"load_more"`
	Favorite  string `toml:"favorite"`
	NextTrack string `toml:"next_track"`
	PrevTrack string `toml:"prev_track"`
	Resume    string `toml:"resume"`
}
