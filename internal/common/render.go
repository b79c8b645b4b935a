package common

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBar renders a block bar ████░░░░ followed by label.
// pct is clamped to 0..1 and width is the bar's cell count.
func RenderBar(pct float64, width int, label string) string {
	if width <= 0 {
		width = 20
	}
	pct = max(0, min(pct, 1))
	filled := int(pct * float64(width))

	bar := BarFilledStyle.Render(strings.Repeat("█", filled)) +
		BarEmptyStyle.Render(strings.Repeat("░", width-filled))
	if label != "" {
		bar += " " + ValueStyle.Render(label)
	}
	return bar
}

// RenderShare renders count out of total as a bar with a percentage.
func RenderShare(count, total, width int) string {
	if total <= 0 {
		return RenderBar(0, width, "0%")
	}
	pct := float64(count) / float64(total)
	return RenderBar(pct, width, fmt.Sprintf("%d%%", count*100/total))
}

type panelOpts struct {
	borderColor lipgloss.Color
	titleColor  lipgloss.Color
}

// Bordered panels with inline title
func RenderPanel(title, content string, width int, heights ...int) string {
	return renderPanel(title, content, width, firstOr(heights, 0), panelOpts{
		borderColor: ColorBorder,
		titleColor:  ColorPrimary,
	})
}

func RenderActivePanel(title, content string, width int, heights ...int) string {
	return renderPanel(title, content, width, firstOr(heights, 0), panelOpts{
		borderColor: ColorPrimary,
		titleColor:  ColorPrimary,
	})
}

// RenderErrorPanel frames a failure message.
func RenderErrorPanel(title, content string, width int, heights ...int) string {
	return renderPanel(title, content, width, firstOr(heights, 0), panelOpts{
		borderColor: ColorDanger,
		titleColor:  ColorDanger,
	})
}

func firstOr(s []int, fallback int) int {
	if len(s) > 0 {
		return s[0]
	}
	return fallback
}

func renderPanel(title, content string, width, height int, opts panelOpts) string {
	if width <= 0 {
		width = lipgloss.Width(content) + 4
	}
	innerW := max(width-4, 1) // two border cells, two padding cells

	bdr := lipgloss.NewStyle().Foreground(opts.borderColor)
	border := lipgloss.NormalBorder()
	lines := strings.Split(lipgloss.NewStyle().Width(innerW).Render(content), "\n")
	if height > 0 {
		innerH := max(height-2, 1)
		for len(lines) < innerH {
			lines = append(lines, "")
		}
		lines = lines[:innerH]
	}

	var top string
	if title == "" {
		top = bdr.Render(border.TopLeft + strings.Repeat(border.Top, width-2) + border.TopRight)
	} else {
		t := lipgloss.NewStyle().Bold(true).Foreground(opts.titleColor).Render(Truncate(title, width-8))
		fill := max(width-2-lipgloss.Width(t)-4, 0)
		top = bdr.Render(border.TopLeft+border.Top+border.Top+" ") + t +
			bdr.Render(" "+strings.Repeat(border.Top, fill)+border.TopRight)
	}

	var b strings.Builder
	b.WriteString(top)
	b.WriteByte('\n')
	for _, line := range lines {
		gap := max(innerW-lipgloss.Width(line), 0)
		b.WriteString(bdr.Render(border.Left) + " " + line + strings.Repeat(" ", gap) + " " + bdr.Render(border.Right))
		b.WriteByte('\n')
	}
	b.WriteString(bdr.Render(border.BottomLeft + strings.Repeat(border.Bottom, width-2) + border.BottomRight))
	return b.String()
}

// Truncate shortens s to maxWidth cells, ending in "...".
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 3 || lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for i := len(runes); i > 0; i-- {
		candidate := string(runes[:i]) + "..."
		if lipgloss.Width(candidate) <= maxWidth {
			return candidate
		}
	}
	return "..."
}
