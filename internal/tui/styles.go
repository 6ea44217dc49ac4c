package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	// Notice colors
	NoticeOK    = lipgloss.Color("#95E1A3") // Green
	NoticeError = lipgloss.Color("#FF6B6B") // Red
	Loading     = lipgloss.Color("#FFE66D") // Yellow

	// UI colors
	Primary    = lipgloss.Color("#336699")
	Accent     = lipgloss.Color("#4ECDC4")
	Secondary  = lipgloss.Color("#6C757D")
	Background = lipgloss.Color("#1a1a2e")
	Surface    = lipgloss.Color("#16213e")
	Text       = lipgloss.Color("#FFFFFF")
	TextMuted  = lipgloss.Color("#888888")
	Border     = lipgloss.Color("#333333")
)

// Styles
var (
	// Header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Accent).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1)

	// Section list
	ListStyle = lipgloss.NewStyle().
			Padding(1, 2)

	ItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	ItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	CountStyle = lipgloss.NewStyle().Foreground(TextMuted)

	// Detail panes
	PaneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	PaneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Accent)

	LabelStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Width(10)

	// Project filter tabs
	TabStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary).
			Bold(true).
			Padding(0, 1)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	NoticeOKStyle    = lipgloss.NewStyle().Foreground(NoticeOK).Bold(true)
	NoticeErrorStyle = lipgloss.NewStyle().Foreground(NoticeError).Bold(true)
	LoadingStyle     = lipgloss.NewStyle().Foreground(Loading)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// NoticeStyle returns the style for a transient notice
func NoticeStyle(isErr bool) lipgloss.Style {
	if isErr {
		return NoticeErrorStyle
	}
	return NoticeOKStyle
}
