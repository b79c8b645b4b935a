package setup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NotMugil/nyt-tui/internal/books"
	"github.com/NotMugil/nyt-tui/internal/common"
)

// SetupCompleteMsg is sent once a key has loaded the catalog. SaveErr is
// set when the key works but could not be stored in the keyring.
type SetupCompleteMsg struct {
	APIKey     string
	Categories []books.Category
	SaveErr    error
}

// CatalogFunc loads the category catalog with the given key. A key that
// loads it is a valid key.
type CatalogFunc func(ctx context.Context, apiKey string) ([]books.Category, error)

// SaveFunc persists a validated key.
type SaveFunc func(apiKey string) error

type state int

const (
	stateInput state = iota
	stateValidating
	stateError
)

type validateMsg struct {
	apiKey string
	cats   []books.Category
	err    error
}

// Model is the setup screen model.
type Model struct {
	textInput textinput.Model
	spinner   spinner.Model
	help      help.Model
	state     state
	err       error
	width     int
	height    int

	loadCatalog CatalogFunc
	save        SaveFunc
}

// New creates a new setup screen.
func New(loadCatalog CatalogFunc, save SaveFunc) *Model {
	ti := textinput.New()
	ti.Placeholder = "NYT Books API key"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Width = 60
	ti.Cursor.Style = common.CursorStyle
	ti.Focus()

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(common.SpinnerStyle),
	)

	return &Model{
		textInput:   ti,
		spinner:     s,
		help:        common.NewHelp(),
		state:       stateInput,
		loadCatalog: loadCatalog,
		save:        save,
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the available terminal dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.help.Width = w
}

func (m *Model) InputFocused() bool {
	return m.state == stateInput
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			switch m.state {
			case stateInput:
				apiKey := strings.TrimSpace(m.textInput.Value())
				if apiKey == "" {
					return m, nil
				}
				m.state = stateValidating
				return m, tea.Batch(m.spinner.Tick, m.validate(apiKey))
			case stateError:
				m.state = stateInput
				m.err = nil
				m.textInput.SetValue("")
				m.textInput.Focus()
				return m, textinput.Blink
			}
		}

	case validateMsg:
		if msg.err != nil {
			m.state = stateError
			m.err = msg.err
			return m, nil
		}
		done := SetupCompleteMsg{APIKey: msg.apiKey, Categories: msg.cats}
		if m.save != nil {
			if err := m.save(msg.apiKey); err != nil {
				done.SaveErr = fmt.Errorf("save key: %w", err)
			}
		}
		return m, func() tea.Msg { return done }

	case spinner.TickMsg:
		if m.state == stateValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.state == stateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) validate(apiKey string) tea.Cmd {
	load := m.loadCatalog
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		cats, err := load(ctx, apiKey)
		return validateMsg{apiKey: apiKey, cats: cats, err: err}
	}
}

func (m *Model) View() string {
	w := m.width
	if w <= 0 {
		w = 80
	}
	h := m.height
	if h <= 0 {
		h = 24
	}

	sections := []string{common.LogoStyle.Render(common.Logo), ""}

	switch m.state {
	case stateInput:
		sections = append(sections,
			common.QuoteStyle.Render("New York Times bestsellers in your terminal"),
			"",
			common.LabelStyle.Render("Enter your NYT Books API key:"),
			"",
			common.FocusedBorderStyle.Render(m.textInput.View()),
			"",
			common.ValueStyle.Render("Create one at https://developer.nytimes.com/get-started"),
			"",
			m.help.ShortHelpView([]key.Binding{
				key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue")),
				key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
			}),
		)

	case stateValidating:
		sections = append(sections,
			fmt.Sprintf("%s Loading categories...", m.spinner.View()),
		)

	case stateError:
		sections = append(sections,
			common.ErrorStyle.Render("That key did not work"),
			"",
			common.ValueStyle.Render(common.Describe(m.err)),
			"",
			m.help.ShortHelpView([]key.Binding{
				key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "try again")),
				key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
			}),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, content)
}
