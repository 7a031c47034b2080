package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/m1nor/minorplay/internal/structures"
)

// ThemeManager manages UI styles based on the configured theme
type ThemeManager struct {
	theme structures.Theme

	// Cached styles
	baseStyle         lipgloss.Style
	selectedStyle     lipgloss.Style
	playingStyle      lipgloss.Style
	favoriteStyle     lipgloss.Style
	borderStyle       lipgloss.Style
	progressStyle     lipgloss.Style
	progressFillStyle lipgloss.Style
	titleStyle        lipgloss.Style
	subtitleStyle     lipgloss.Style
	helpStyle         lipgloss.Style
}

// NewThemeManager creates a new theme manager with the given theme
func NewThemeManager(theme structures.Theme) *ThemeManager {
	tm := &ThemeManager{theme: theme}
	tm.initStyles()
	return tm
}

// initStyles initializes all the cached styles
func (tm *ThemeManager) initStyles() {
	// Foreground only, no background to avoid partial coloring
	tm.baseStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(tm.theme.Foreground))

	tm.selectedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(tm.theme.Selected)).
		Bold(true)

	tm.playingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(tm.theme.Playing)).
		Bold(true)

	tm.favoriteStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(tm.theme.Favorite))

	tm.borderStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(tm.theme.Border))

	tm.progressStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(tm.theme.ProgressBar))

	tm.progressFillStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(tm.theme.ProgressBarFill))

	tm.titleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(tm.theme.Foreground)).
		Bold(true)

	tm.subtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(tm.theme.Foreground)).
		Faint(true)

	tm.helpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(tm.theme.Foreground)).
		Faint(true).
		Italic(true)
}

func (tm *ThemeManager) BaseStyle() lipgloss.Style {
	return tm.baseStyle
}

func (tm *ThemeManager) SelectedStyle() lipgloss.Style {
	return tm.selectedStyle
}

func (tm *ThemeManager) PlayingStyle() lipgloss.Style {
	return tm.playingStyle
}

func (tm *ThemeManager) FavoriteStyle() lipgloss.Style {
	return tm.favoriteStyle
}

func (tm *ThemeManager) BorderStyle() lipgloss.Style {
	return tm.borderStyle
}

func (tm *ThemeManager) ProgressStyle() lipgloss.Style {
	return tm.progressStyle
}

func (tm *ThemeManager) ProgressFillStyle() lipgloss.Style {
	return tm.progressFillStyle
}

func (tm *ThemeManager) TitleStyle() lipgloss.Style {
	return tm.titleStyle
}

func (tm *ThemeManager) SubtitleStyle() lipgloss.Style {
	return tm.subtitleStyle
}

func (tm *ThemeManager) HelpStyle() lipgloss.Style {
	return tm.helpStyle
}
