// Package chart shows how long the fetched bestsellers have been on
// their list, as a bar chart over the fixed weeks-on-list buckets.
package chart

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/NotMugil/nyt-tui/internal/session"
)

// Model is the chart screen model.
type Model struct {
	state *session.State

	vp            viewport.Model
	vpReady       bool
	lastVpContent string
	width         int
	height        int
}

// New creates the chart screen over the shared session state.
func New(state *session.State) *Model {
	return &Model{state: state}
}

func (m *Model) Init() tea.Cmd { return nil }

// SetSize updates the available terminal dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Loaded is always true; the chart only reads state the finder fetched.
func (m *Model) Loaded() bool { return true }

func (m *Model) HelpBindings() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "scroll down")),
		key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "scroll up")),
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.vpReady {
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}
