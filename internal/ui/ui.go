package ui

import (
	"context"
	"time"

	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/m1nor/minorplay/internal/structures"
	"github.com/m1nor/minorplay/internal/systems"
)

func init() {
	runewidth.DefaultCondition.EastAsianWidth = false
}

type ViewState int

const (
	VideosView ViewState = iota
	ShortsView
	TracksView
	FavoritesView
	viewCount
)

type Model struct {
	systems            *systems.Systems
	config             *structures.Config
	themeManager       *ThemeManager
	state              ViewState
	width              int
	height             int
	playerHeight       int
	contentHeight      int
	playerContentWidth int

	// Feed state. Shorts always paginate a single channel; the videos view
	// switches to a merged one-shot snapshot when several channels are
	// configured.
	multiChannel  bool
	videosFeed    *systems.Feed
	shortsFeed    *systems.Feed
	videoItems    []structures.ContentItem
	shortItems    []structures.ContentItem
	videosHasMore bool
	shortsHasMore bool
	loading       bool

	favorites []structures.FavoriteEntry

	// Per-view cursor and scroll position
	selected [viewCount]int
	scroll   [viewCount]int

	playerState   structures.PlayerState
	pendingResume *structures.ContinuePayload
	err           error
	marqueeOffset int
}

type tickMsg time.Time
type playerUpdateMsg structures.PlayerState
type videosLoadedMsg struct {
	items   []structures.ContentItem
	hasMore bool
}
type shortsLoadedMsg struct {
	items   []structures.ContentItem
	hasMore bool
}
type errorMsg error

// Run starts the terminal UI and blocks until the user quits.
func Run(sys *systems.Systems, config *structures.Config) error {
	m := Model{
		systems:      sys,
		config:       config,
		themeManager: NewThemeManager(config.Theme),
		state:        VideosView,
		playerHeight: 5,
		multiChannel: len(config.ChannelIDs) > 1,
	}

	if len(config.ChannelIDs) > 0 {
		m.videosFeed = sys.Feed.NewFeed(config.ChannelIDs[0], false)
		m.shortsFeed = sys.Feed.NewFeed(config.ChannelIDs[0], true)
	}

	if payload, ok := sys.Player.LoadContinue(); ok {
		m.pendingResume = &payload
	}

	m.favorites = sys.Favorites.All()

	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadVideos(),
		m.loadShorts(),
		m.tickCmd(),
		m.listenToPlayer(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		playerStyle := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1)
		playerV, _ := playerStyle.GetFrameSize()

		m.contentHeight = m.height - m.playerHeight - playerV

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tickMsg:
		m.marqueeOffset++
		return m, m.tickCmd()

	case playerUpdateMsg:
		m.playerState = structures.PlayerState(msg)
		return m, m.listenToPlayer()

	case videosLoadedMsg:
		m.loading = false
		m.err = nil
		m.videoItems = msg.items
		m.videosHasMore = msg.hasMore
		if m.selected[VideosView] >= len(m.videoItems) {
			m.selected[VideosView] = 0
			m.scroll[VideosView] = 0
		}
		return m, nil

	case shortsLoadedMsg:
		m.loading = false
		m.err = nil
		m.shortItems = msg.items
		m.shortsHasMore = msg.hasMore
		if m.selected[ShortsView] >= len(m.shortItems) {
			m.selected[ShortsView] = 0
			m.scroll[ShortsView] = 0
		}
		return m, nil

	case errorMsg:
		m.loading = false
		m.err = msg
		return m, nil
	}

	return m, nil
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	borderColor := lipgloss.Color(m.config.Theme.Border)

	mainStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor)

	playerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	mainV, mainH := mainStyle.GetFrameSize()
	playerV, playerH := playerStyle.GetFrameSize()

	contentWidth := m.width - mainH
	playerContentWidth := m.width - playerH

	mainStyle = mainStyle.
		Width(contentWidth).
		Height(m.contentHeight)

	playerStyle = playerStyle.
		Width(playerContentWidth).
		Height(m.playerHeight - playerV)

	var content string
	switch m.state {
	case VideosView:
		content = m.renderVideos(contentWidth)
	case ShortsView:
		content = m.renderShorts(contentWidth)
	case TracksView:
		content = m.renderTracks(contentWidth)
	case FavoritesView:
		content = m.renderFavorites(contentWidth)
	}

	m.playerContentWidth = playerContentWidth
	player := m.renderPlayer()

	contentLines := strings.Split(content, "\n")
	maxContentLines := m.contentHeight - mainV
	if maxContentLines > 0 && len(contentLines) > maxContentLines {
		contentLines = contentLines[:maxContentLines]
	}
	content = strings.Join(contentLines, "\n")

	return lipgloss.JoinVertical(
		lipgloss.Top,
		mainStyle.Render(content),
		playerStyle.Render(player),
	)
}

// Helper functions for key binding checks
func (m *Model) isKey(msg tea.KeyMsg, key string) bool {
	if key == "" {
		return false
	}

	switch key {
	case "ctrl+d":
		return msg.Type == tea.KeyCtrlD
	case "space":
		return msg.Type == tea.KeySpace
	case "enter":
		return msg.Type == tea.KeyEnter
	case "esc":
		return msg.Type == tea.KeyEsc
	case "tab":
		return msg.Type == tea.KeyTab
	case "shift+tab":
		return msg.Type == tea.KeyShiftTab
	case "up":
		return msg.Type == tea.KeyUp
	case "down":
		return msg.Type == tea.KeyDown
	case "left":
		return msg.Type == tea.KeyLeft
	case "right":
		return msg.Type == tea.KeyRight
	default:
		return msg.Type == tea.KeyRunes && msg.String() == key
	}
}

func (m *Model) isKeyInList(msg tea.KeyMsg, keys []string) bool {
	for _, key := range keys {
		if m.isKey(msg, key) {
			return true
		}
	}
	return false
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := m.config.KeyBindings

	// Global controls
	if m.isKey(msg, kb.Quit) {
		return m, tea.Quit
	}

	if m.isKey(msg, kb.PlayPause) {
		m.systems.Player.SendAction(structures.PlayPauseAction{})
		return m, nil
	}

	if m.isKey(msg, kb.SeekBackward) {
		m.systems.Player.SendAction(structures.SeekBackwardAction{})
		return m, nil
	}

	if m.isKey(msg, kb.SeekForward) {
		m.systems.Player.SendAction(structures.SeekForwardAction{})
		return m, nil
	}

	if m.isKeyInList(msg, kb.VolumeUp) {
		m.systems.Player.SendAction(structures.VolumeUpAction{})
		return m, nil
	}

	if m.isKeyInList(msg, kb.VolumeDown) {
		m.systems.Player.SendAction(structures.VolumeDownAction{})
		return m, nil
	}

	if m.isKey(msg, kb.NextTrack) {
		m.systems.Player.SendAction(structures.NextAction{})
		return m, nil
	}

	if m.isKey(msg, kb.PrevTrack) {
		m.systems.Player.SendAction(structures.PreviousAction{})
		return m, nil
	}

	if m.isKey(msg, kb.Resume) {
		if m.pendingResume != nil {
			m.systems.Player.SendAction(structures.ResumeAction{Payload: *m.pendingResume})
			m.pendingResume = nil
		}
		return m, nil
	}

	// View switching
	if m.isKey(msg, kb.NextView) {
		m.state = (m.state + 1) % viewCount
		return m, nil
	}

	if m.isKey(msg, kb.PrevView) {
		m.state = (m.state - 1 + viewCount) % viewCount
		return m, nil
	}

	// Navigation
	if m.isKeyInList(msg, kb.MoveUp) {
		if m.selected[m.state] > 0 {
			m.selected[m.state]--
			m.adjustScroll()
		}
		return m, nil
	}

	if m.isKeyInList(msg, kb.MoveDown) {
		if maxIndex := m.getMaxIndex(); m.selected[m.state] < maxIndex {
			m.selected[m.state]++
			m.adjustScroll()
		}
		return m, nil
	}

	if m.isKeyInList(msg, kb.Select) {
		return m.handleEnter()
	}

	if m.isKey(msg, kb.LoadMore) {
		return m, m.loadMore()
	}

	if m.isKey(msg, kb.Favorite) {
		m.toggleFavorite()
		return m, nil
	}

	return m, nil
}

func (m *Model) getMaxIndex() int {
	switch m.state {
	case VideosView:
		return len(m.videoItems) - 1
	case ShortsView:
		return len(m.shortItems) - 1
	case TracksView:
		return len(m.playerState.Catalog) - 1
	case FavoritesView:
		return len(m.favorites) - 1
	}
	return 0
}

func (m *Model) adjustScroll() {
	visibleItems := m.contentHeight - 4
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.selected[m.state] < m.scroll[m.state] {
		m.scroll[m.state] = m.selected[m.state]
	} else if m.selected[m.state] >= m.scroll[m.state]+visibleItems {
		m.scroll[m.state] = m.selected[m.state] - visibleItems + 1
	}
}

func (m *Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.state {
	case TracksView:
		if track, ok := m.selectedTrack(); ok {
			m.systems.Player.SendAction(structures.PlayTrackAction{TrackID: track.ID})
		}
	case FavoritesView:
		idx := m.selected[FavoritesView]
		if idx >= 0 && idx < len(m.favorites) {
			entry := m.favorites[idx]
			if entry.Type == "track" {
				m.systems.Player.SendAction(structures.PlayTrackAction{TrackID: entry.ID})
			}
		}
	default:
		// Browsing views favorite on enter as well
		m.toggleFavorite()
	}
	return m, nil
}

// toggleFavorite flips the favorite state of the selected item.
func (m *Model) toggleFavorite() {
	var entry structures.FavoriteEntry

	switch m.state {
	case VideosView:
		item, ok := m.selectedVideo(m.videoItems, VideosView)
		if !ok {
			return
		}
		entry = favoriteFromContent(item)
	case ShortsView:
		item, ok := m.selectedVideo(m.shortItems, ShortsView)
		if !ok {
			return
		}
		entry = favoriteFromContent(item)
	case TracksView:
		track, ok := m.selectedTrack()
		if !ok {
			return
		}
		entry = favoriteFromTrack(track)
	case FavoritesView:
		idx := m.selected[FavoritesView]
		if idx < 0 || idx >= len(m.favorites) {
			return
		}
		entry = m.favorites[idx]
	}

	if err := m.systems.Favorites.Toggle(entry); err != nil {
		m.err = err
	}
	m.favorites = m.systems.Favorites.All()

	if m.state == FavoritesView && m.selected[FavoritesView] >= len(m.favorites) && m.selected[FavoritesView] > 0 {
		m.selected[FavoritesView]--
	}
}

func (m *Model) selectedVideo(items []structures.ContentItem, view ViewState) (structures.ContentItem, bool) {
	idx := m.selected[view]
	if idx < 0 || idx >= len(items) {
		return structures.ContentItem{}, false
	}
	return items[idx], true
}

func (m *Model) selectedTrack() (structures.Track, bool) {
	idx := m.selected[TracksView]
	if idx < 0 || idx >= len(m.playerState.Catalog) {
		return structures.Track{}, false
	}
	return m.playerState.Catalog[idx], true
}

func favoriteFromContent(item structures.ContentItem) structures.FavoriteEntry {
	return structures.FavoriteEntry{
		ID:        item.ID,
		Type:      "video",
		Title:     item.Title,
		Subtitle:  item.ChannelName,
		Thumbnail: item.ThumbnailURL,
		Meta:      item.PublishedAt.Format("2006-01-02"),
		Link:      "https://www.youtube.com/watch?v=" + item.ID,
	}
}

func favoriteFromTrack(track structures.Track) structures.FavoriteEntry {
	return structures.FavoriteEntry{
		ID:        track.ID,
		Type:      "track",
		Title:     track.Title,
		Subtitle:  track.Artist,
		Thumbnail: track.Thumbnail,
		Meta:      formatDuration(track.Duration),
	}
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) listenToPlayer() tea.Cmd {
	return func() tea.Msg {
		state := m.systems.Player.GetState()
		return playerUpdateMsg(state)
	}
}

func (m *Model) loadVideos() tea.Cmd {
	if len(m.config.ChannelIDs) == 0 {
		return nil
	}
	m.loading = true

	if m.multiChannel {
		channelIDs := m.config.ChannelIDs
		return func() tea.Msg {
			items, err := m.systems.Feed.FetchAllChannels(context.Background(), channelIDs)
			if err != nil {
				return errorMsg(err)
			}
			return videosLoadedMsg{items: items}
		}
	}

	feed := m.videosFeed
	return func() tea.Msg {
		if err := feed.Refresh(context.Background()); err != nil {
			return errorMsg(err)
		}
		return videosLoadedMsg{items: feed.Items(), hasMore: feed.HasMore()}
	}
}

func (m *Model) loadShorts() tea.Cmd {
	if m.shortsFeed == nil {
		return nil
	}
	m.loading = true

	feed := m.shortsFeed
	return func() tea.Msg {
		if err := feed.Refresh(context.Background()); err != nil {
			return errorMsg(err)
		}
		return shortsLoadedMsg{items: feed.Items(), hasMore: feed.HasMore()}
	}
}

func (m *Model) loadMore() tea.Cmd {
	switch m.state {
	case VideosView:
		if m.multiChannel || m.videosFeed == nil || !m.videosHasMore {
			return nil
		}
		m.loading = true
		feed := m.videosFeed
		return func() tea.Msg {
			if err := feed.LoadMore(context.Background()); err != nil {
				return errorMsg(err)
			}
			return videosLoadedMsg{items: feed.Items(), hasMore: feed.HasMore()}
		}
	case ShortsView:
		if m.shortsFeed == nil || !m.shortsHasMore {
			return nil
		}
		m.loading = true
		feed := m.shortsFeed
		return func() tea.Msg {
			if err := feed.LoadMore(context.Background()); err != nil {
				return errorMsg(err)
			}
			return shortsLoadedMsg{items: feed.Items(), hasMore: feed.HasMore()}
		}
	}
	return nil
}
