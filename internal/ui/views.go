package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/m1nor/minorplay/internal/structures"
)

var viewTitles = [viewCount]string{"Videos", "Shorts", "Tracks", "Favorites"}

// getStyles returns commonly used styles based on theme
func (m *Model) getStyles() (titleStyle, selectedStyle, normalStyle, dimStyle, errorStyle lipgloss.Style) {
	titleStyle = m.themeManager.TitleStyle().MarginBottom(1)
	selectedStyle = m.themeManager.SelectedStyle().
		PaddingLeft(1).
		PaddingRight(1)
	normalStyle = m.themeManager.BaseStyle().
		PaddingLeft(1).
		PaddingRight(1)
	dimStyle = m.themeManager.SubtitleStyle()
	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF5555")).
		Bold(true)
	return
}

// renderTabs renders the view switcher line.
func (m *Model) renderTabs() string {
	var parts []string
	for i := ViewState(0); i < viewCount; i++ {
		title := viewTitles[i]
		if i == m.state {
			parts = append(parts, m.themeManager.SelectedStyle().Render("["+title+"]"))
		} else {
			parts = append(parts, m.themeManager.SubtitleStyle().Render(" "+title+" "))
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderVideos(maxWidth int) string {
	return m.renderContentList("🎬 Videos", m.videoItems, VideosView, m.videosHasMore && !m.multiChannel, maxWidth)
}

func (m *Model) renderShorts(maxWidth int) string {
	return m.renderContentList("⚡ Shorts", m.shortItems, ShortsView, m.shortsHasMore, maxWidth)
}

func (m *Model) renderContentList(header string, items []structures.ContentItem, view ViewState, hasMore bool, maxWidth int) string {
	titleStyle, selectedStyle, normalStyle, dimStyle, errorStyle := m.getStyles()

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("⚠️  Error: %v", m.err)))
		return b.String()
	}

	if len(items) == 0 {
		if m.loading {
			b.WriteString(dimStyle.Render("Loading..."))
		} else {
			b.WriteString(dimStyle.Render("Nothing here yet"))
		}
		return b.String()
	}

	visibleItems := m.contentHeight - 6
	if visibleItems < 1 {
		visibleItems = 1
	}
	start := m.scroll[view]
	end := start + visibleItems
	if end > len(items) {
		end = len(items)
	}

	dateWidth := 10
	durationWidth := 7
	channelWidth := 20
	titleWidth := maxWidth - dateWidth - durationWidth - channelWidth - 12
	if titleWidth < 20 {
		titleWidth = 20
		channelWidth = 12
	}

	for i := start; i < end; i++ {
		item := items[i]

		marker := " "
		if m.systems.Favorites.IsFavorite(item.ID, "video") {
			marker = m.themeManager.FavoriteStyle().Render("♥")
		}

		duration := "--:--"
		if item.DurationKnown {
			duration = formatDuration(item.Duration)
		}

		line := fmt.Sprintf("%s %s %s %s %s",
			marker,
			padToWidth(truncate(item.Title, titleWidth), titleWidth),
			padToWidth(truncate(item.ChannelName, channelWidth), channelWidth),
			padToWidth(duration, durationWidth),
			item.PublishedAt.Format("2006-01-02"))

		if i == m.selected[view] {
			b.WriteString(selectedStyle.Render("→ " + line))
		} else {
			b.WriteString(normalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")

	footer := fmt.Sprintf("%d/%d", m.selected[view]+1, len(items))
	if hasMore {
		footer += fmt.Sprintf("  [%s: load more]", m.config.KeyBindings.LoadMore)
	}
	if m.loading {
		footer += "  loading..."
	}
	b.WriteString(dimStyle.Render(footer))

	return b.String()
}

func (m *Model) renderTracks(maxWidth int) string {
	titleStyle, selectedStyle, normalStyle, dimStyle, _ := m.getStyles()

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("🎵 Tracks"))
	b.WriteString("\n")

	tracks := m.playerState.Catalog
	if len(tracks) == 0 {
		b.WriteString(dimStyle.Render("No tracks in the catalog"))
		return b.String()
	}

	visibleItems := m.contentHeight - 6
	if visibleItems < 1 {
		visibleItems = 1
	}
	start := m.scroll[TracksView]
	end := start + visibleItems
	if end > len(tracks) {
		end = len(tracks)
	}

	durationWidth := 7
	artistWidth := 25
	titleWidth := maxWidth - durationWidth - artistWidth - 12
	if titleWidth < 20 {
		titleWidth = 20
		artistWidth = 15
	}

	for i := start; i < end; i++ {
		track := tracks[i]

		marker := " "
		if m.systems.Favorites.IsFavorite(track.ID, "track") {
			marker = m.themeManager.FavoriteStyle().Render("♥")
		}

		line := fmt.Sprintf("%s %s %s %s",
			marker,
			padToWidth(truncate(track.Title, titleWidth), titleWidth),
			padToWidth(truncate(track.Artist, artistWidth), artistWidth),
			formatDuration(track.Duration))

		switch {
		case i == m.playerState.Current:
			b.WriteString(m.themeManager.PlayingStyle().Render("▶ " + line))
		case i == m.selected[TracksView]:
			b.WriteString(selectedStyle.Render("→ " + line))
		default:
			b.WriteString(normalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d  [enter: play] [%s: favorite]",
		m.selected[TracksView]+1, len(tracks), m.config.KeyBindings.Favorite)))

	return b.String()
}

func (m *Model) renderFavorites(maxWidth int) string {
	titleStyle, selectedStyle, normalStyle, dimStyle, _ := m.getStyles()

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("♥ Favorites"))
	b.WriteString("\n")

	if len(m.favorites) == 0 {
		b.WriteString(dimStyle.Render("Nothing saved yet. Press " + m.config.KeyBindings.Favorite + " on any item to keep it here."))
		return b.String()
	}

	visibleItems := m.contentHeight - 6
	if visibleItems < 1 {
		visibleItems = 1
	}
	start := m.scroll[FavoritesView]
	end := start + visibleItems
	if end > len(m.favorites) {
		end = len(m.favorites)
	}

	typeWidth := 7
	subtitleWidth := 20
	titleWidth := maxWidth - typeWidth - subtitleWidth - 12
	if titleWidth < 20 {
		titleWidth = 20
		subtitleWidth = 12
	}

	for i := start; i < end; i++ {
		entry := m.favorites[i]

		icon := "🎬"
		if entry.Type == "track" {
			icon = "🎵"
		}

		line := fmt.Sprintf("%s %s %s %s",
			icon,
			padToWidth(truncate(entry.Title, titleWidth), titleWidth),
			padToWidth(truncate(entry.Subtitle, subtitleWidth), subtitleWidth),
			entry.Meta)

		if i == m.selected[FavoritesView] {
			b.WriteString(selectedStyle.Render("→ " + line))
		} else {
			b.WriteString(normalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d  [enter: play track] [%s: remove]",
		m.selected[FavoritesView]+1, len(m.favorites), m.config.KeyBindings.Favorite)))

	return b.String()
}

func (m *Model) renderPlayer() string {
	playerInfoStyle := m.themeManager.TitleStyle()
	timeStyle := m.themeManager.BaseStyle().Foreground(lipgloss.Color(m.config.Theme.Selected))
	dimStyle := m.themeManager.SubtitleStyle()

	availableWidth := m.playerContentWidth
	if availableWidth <= 0 {
		availableWidth = 80
	}

	var content strings.Builder

	// First line: track info, or the resume offer when nothing is loaded
	if track, ok := m.playerState.CurrentTrack(); ok {
		title := track.Title
		artist := track.Artist

		prefixWidth := runewidth.StringWidth("🎵 ")
		separatorWidth := runewidth.StringWidth(" - ")
		artistWidth := runewidth.StringWidth(artist)

		maxTitleWidth := availableWidth - prefixWidth - separatorWidth - artistWidth - 2
		if maxTitleWidth < 20 {
			maxTitleWidth = availableWidth * 2 / 3
			if maxArtistWidth := availableWidth - prefixWidth - separatorWidth - maxTitleWidth - 2; maxArtistWidth > 0 {
				artist = truncate(artist, maxArtistWidth)
			}
		}

		if runewidth.StringWidth(title) > maxTitleWidth {
			title = m.applyMarquee(title, maxTitleWidth)
		}

		display := fmt.Sprintf("🎵 %s - %s", title, artist)
		if runewidth.StringWidth(display) > availableWidth {
			display = truncate(display, availableWidth)
		}

		content.WriteString(playerInfoStyle.Render(display))
	} else if m.pendingResume != nil {
		offer := fmt.Sprintf("⏯  Continue listening: %s - %s at %s  [press %s]",
			m.pendingResume.Title, m.pendingResume.Artist,
			formatDuration(int(m.pendingResume.CurrentTime)),
			m.config.KeyBindings.Resume)
		content.WriteString(dimStyle.Render(truncate(offer, availableWidth)))
	} else {
		content.WriteString(dimStyle.Render("NOTHING PLAYING"))
	}
	content.WriteString("\n\n")

	// Second line: progress bar
	if m.playerState.TotalTime > 0 {
		currentTime := formatDuration(int(m.playerState.CurrentTime.Seconds()))
		totalTime := formatDuration(int(m.playerState.TotalTime.Seconds()))

		timeWidth := runewidth.StringWidth(currentTime) + runewidth.StringWidth(totalTime)
		barWidth := availableWidth - timeWidth*2 + 6
		if barWidth < 10 {
			barWidth = 10
		}

		content.WriteString(fmt.Sprintf("%s %s %s",
			timeStyle.Render(currentTime),
			m.renderProgressBar(barWidth),
			timeStyle.Render(totalTime)))
	} else {
		timeWidth := runewidth.StringWidth("--:--") * 2
		barWidth := availableWidth - timeWidth*2 + 6
		if barWidth < 10 {
			barWidth = 10
		}
		bar := m.themeManager.ProgressStyle().Render(strings.Repeat("─", barWidth))
		content.WriteString(fmt.Sprintf("%s %s %s",
			timeStyle.Render("--:--"),
			bar,
			timeStyle.Render("--:--")))
	}
	content.WriteString("\n\n")

	content.WriteString(m.renderControls(availableWidth))

	return content.String()
}

func (m *Model) renderProgressBar(width int) string {
	if width < 10 {
		width = 10
	}

	progress := float64(m.playerState.CurrentTime) / float64(m.playerState.TotalTime)
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}

	filled := int(float64(width) * progress)
	empty := width - filled

	var bar strings.Builder
	if filled > 0 {
		bar.WriteString(m.themeManager.ProgressFillStyle().Render(strings.Repeat("━", filled)))
	}
	if empty > 0 {
		bar.WriteString(m.themeManager.ProgressStyle().Render(strings.Repeat("━", empty)))
	}

	return bar.String()
}

func (m *Model) renderControls(availableWidth int) string {
	dimStyle := m.themeManager.SubtitleStyle()

	var parts []string

	if m.playerState.IsPlaying {
		parts = append(parts, "▶ Playing")
	} else {
		parts = append(parts, "⏸ Paused")
	}

	volume := int(m.playerState.Volume * 100)
	volumeIcon := "🔊"
	if volume == 0 {
		volumeIcon = "🔇"
	} else if volume < 30 {
		volumeIcon = "🔈"
	} else if volume < 70 {
		volumeIcon = "🔉"
	}
	parts = append(parts, fmt.Sprintf("%s %d%%", volumeIcon, volume))

	hint := "[Space: Play/Pause] [←/→: Seek] [Tab: Views] [f: Favorite] [Ctrl+D: Quit]"
	parts = append(parts, dimStyle.Render(hint))

	fullLine := strings.Join(parts, "  ")
	if runewidth.StringWidth(fullLine) > availableWidth {
		withoutHint := strings.Join(parts[:len(parts)-1], "  ")
		remaining := availableWidth - runewidth.StringWidth(withoutHint) - 2
		if remaining > 10 {
			parts[len(parts)-1] = dimStyle.Render(truncate(hint, remaining))
		} else {
			parts = parts[:len(parts)-1]
		}
		fullLine = strings.Join(parts, "  ")
	}

	return fullLine
}

// applyMarquee scrolls long text through a fixed window.
func (m *Model) applyMarquee(s string, width int) string {
	if width <= 0 {
		return ""
	}

	runes := []rune(s + "   ")
	offset := m.marqueeOffset % len(runes)
	rotated := append(runes[offset:], runes[:offset]...)

	var b strings.Builder
	w := 0
	for _, r := range rotated {
		rw := runewidth.RuneWidth(r)
		if w+rw > width {
			break
		}
		b.WriteRune(r)
		w += rw
	}
	return b.String()
}

func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	if maxWidth <= 3 {
		runes := []rune(s)
		if len(runes) <= maxWidth {
			return s
		}
		return string(runes[:maxWidth])
	}

	return runewidth.Truncate(s, maxWidth-3, "") + "..."
}

func padToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}

	currentWidth := runewidth.StringWidth(s)
	if currentWidth >= width {
		return s
	}

	return s + strings.Repeat(" ", width-currentWidth)
}

func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "--:--"
	}
	minutes := seconds / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
