package common

import (
	"github.com/charmbracelet/lipgloss"
)

// ConfirmAction names what a confirm dialog guards.
type ConfirmAction string

const ConfirmForgetKey ConfirmAction = "forget-key"

// ConfirmState is a yes/no dialog. The cursor starts on No.
type ConfirmState struct {
	Active  bool
	Message string
	Action  ConfirmAction
	Yes     bool
}

func NewConfirm(message string, action ConfirmAction) ConfirmState {
	return ConfirmState{Active: true, Message: message, Action: action}
}

// HandleKey consumes a key while the dialog is open and reports whether
// the action was confirmed. The dialog closes on any decision.
func (c *ConfirmState) HandleKey(key string) (confirmed bool) {
	switch key {
	case "left", "h", "up", "k":
		c.Yes = true
	case "right", "l", "down", "j":
		c.Yes = false
	case "y":
		c.Active = false
		return true
	case "n", "esc":
		c.Active = false
	case "enter":
		c.Active = false
		return c.Yes
	}
	return false
}

// View renders the dialog at width w, held between 30 and 50 cells.
func (c ConfirmState) View(w int) string {
	w = max(30, min(w, 50))

	button := func(label string, on bool, bg lipgloss.Color) string {
		if on {
			return lipgloss.NewStyle().
				Foreground(ColorBackground).
				Background(bg).
				Bold(true).
				Padding(0, 2).
				Render(label)
		}
		return lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 2).Render(label)
	}

	center := lipgloss.NewStyle().Width(w - 6).Align(lipgloss.Center)
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		button("Yes", c.Yes, ColorDanger),
		"  ",
		button("No", !c.Yes, ColorSuccess),
	)

	content := center.Foreground(ColorText).Render(c.Message) + "\n\n" +
		center.Render(buttons) + "\n\n" +
		HelpStyle.Render("y/n | enter: confirm | esc: cancel")

	return RenderActivePanel("Confirm", content, w)
}
