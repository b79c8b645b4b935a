package common

import (
	_ "embed"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary    = lipgloss.Color("#6366f1")
	ColorAccent     = lipgloss.Color("#F59E0B")
	ColorSuccess    = lipgloss.Color("#10B981")
	ColorWarning    = lipgloss.Color("#F59E0B")
	ColorDanger     = lipgloss.Color("#EF4444")
	ColorMuted      = lipgloss.Color("#4B5563")
	ColorText       = lipgloss.Color("#E5E7EB")
	ColorSubtext    = lipgloss.Color("#9CA3AF")
	ColorBorder     = lipgloss.Color("#374151")
	ColorBackground = lipgloss.Color("#0D1117")
	ColorSurface    = lipgloss.Color("#161B22")
	ColorHighlight  = lipgloss.Color("#1C2333")
)

// One color per weeks-on-list bucket, newest entries first.
var bucketColors = []lipgloss.Color{
	lipgloss.Color("#60a5fa"),
	ColorPrimary,
	ColorSuccess,
	ColorWarning,
	lipgloss.Color("#f472b6"),
	ColorDanger,
}

// BucketColor returns the chart color for a bucket ID.
func BucketColor(id int) lipgloss.Color {
	if id < 0 || id >= len(bucketColors) {
		return ColorMuted
	}
	return bucketColors[id]
}

// Layouts and borders
var (
	AppStyle = lipgloss.NewStyle().
			Padding(0, 1)

	BasePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBackground).
			Background(ColorPrimary).
			Padding(0, 2)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 2)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorSubtext).
			Background(ColorSurface).
			Padding(0, 1)

	FocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	CursorStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorHighlight).
				Bold(true)

	BarFilledStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	BarEmptyStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	NewBadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBackground).
			Background(ColorAccent).
			Padding(0, 1)
)

// Typography
var (
	BoldTextStyle = lipgloss.NewStyle().Bold(true)
	TitleStyle    = BoldTextStyle.Foreground(ColorPrimary)
	LabelStyle    = BoldTextStyle.Foreground(ColorText)
	ValueStyle    = lipgloss.NewStyle().Foreground(ColorSubtext)
	HelpStyle     = lipgloss.NewStyle().Foreground(ColorMuted)
	QuoteStyle    = HelpStyle.Italic(true)
	ErrorStyle    = BoldTextStyle.Foreground(ColorDanger)
)

// ASCII logo shown on the setup screen
var (
	//go:embed banner.txt
	Logo      string
	LogoStyle = TitleStyle
)

// Help or Keybindings
func HelpStyles() help.Styles {
	return help.Styles{
		ShortKey:       lipgloss.NewStyle().Foreground(ColorPrimary),
		ShortDesc:      lipgloss.NewStyle().Foreground(ColorMuted),
		ShortSeparator: lipgloss.NewStyle().Foreground(ColorBorder),
		FullKey:        lipgloss.NewStyle().Foreground(ColorPrimary),
		FullDesc:       lipgloss.NewStyle().Foreground(ColorSubtext),
		FullSeparator:  lipgloss.NewStyle().Foreground(ColorBorder),
		Ellipsis:       lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

func NewHelp() help.Model {
	h := help.New()
	h.ShortSeparator = " • "
	h.FullSeparator = "    "
	h.Styles = HelpStyles()
	return h
}
