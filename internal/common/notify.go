package common

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NotMugil/nyt-tui/internal/api"
	"github.com/NotMugil/nyt-tui/internal/books"
)

// NotifyLevel represents the severity of a notification.
type NotifyLevel string

const (
	NotifyInfo    NotifyLevel = "Info"
	NotifySuccess NotifyLevel = "Success"
	NotifyWarning NotifyLevel = "Warn"
	NotifyError   NotifyLevel = "Error"
)

// NotifyMsg triggers a toast in the app. Screens return it as a tea.Cmd.
type NotifyMsg struct {
	Level   NotifyLevel
	Message string
}

// NotifyCmd creates a tea.Cmd that produces a NotifyMsg.
func NotifyCmd(level NotifyLevel, message string) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg{Level: level, Message: message}
	}
}

// NotifyErrCmd toasts err with a message picked from its kind.
func NotifyErrCmd(what string, err error) tea.Cmd {
	level := NotifyError
	if errors.Is(err, books.ErrNoCategory) {
		level = NotifyWarning
	}
	return NotifyCmd(level, what+": "+Describe(err))
}

// Describe turns an error into a short user-facing sentence.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, books.ErrNoCategory):
		return "pick a category first"
	case errors.Is(err, api.ErrUnauthorized):
		return "the API key was rejected"
	case errors.Is(err, api.ErrRateLimited):
		return "rate limited by the NYT API, try again shortly"
	case errors.Is(err, api.ErrNotFound):
		return "no list published for that date"
	case errors.Is(err, api.ErrServer):
		return "the NYT API is unavailable"
	case errors.Is(err, api.ErrNetwork):
		return "network error"
	case errors.Is(err, api.ErrParse):
		return "unexpected response from the NYT API"
	default:
		return err.Error()
	}
}
