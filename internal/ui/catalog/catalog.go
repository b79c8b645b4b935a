// Package catalog lists every bestseller category with its published
// range and update cadence.
package catalog

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NotMugil/nyt-tui/internal/books"
	"github.com/NotMugil/nyt-tui/internal/common"
	"github.com/NotMugil/nyt-tui/internal/session"
)

// PickCategoryMsg asks the app to select a category and open the finder.
type PickCategoryMsg struct {
	Key int
}

// Model is the catalog screen model.
type Model struct {
	state  *session.State
	rows   []books.Category // table order
	table  table.Model
	width  int
	height int
}

// New creates the catalog screen over the shared session state.
func New(state *session.State) *Model {
	m := &Model{
		state: state,
		rows:  books.SortedByName(state.Categories),
		table: newCatalogTable(80, 15),
	}
	m.table.SetRows(categoriesToRows(m.rows))
	return m
}

func newCatalogTable(width, height int) table.Model {
	t := table.New(
		table.WithColumns(tableColumns(width)),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(common.ColorBorder).
		BorderBottom(true).
		Bold(true).
		Foreground(common.ColorPrimary)
	st.Selected = st.Selected.
		Foreground(common.ColorText).
		Background(common.ColorHighlight).
		Bold(false)
	st.Cell = st.Cell.
		Foreground(common.ColorSubtext)
	t.SetStyles(st)
	return t
}

func tableColumns(width int) []table.Column {
	usable := max(width-12, 50)
	nameW := usable * 30 / 100
	encodedW := usable * 30 / 100
	dateW := usable * 13 / 100
	freqW := usable - nameW - encodedW - 2*dateW

	return []table.Column{
		{Title: "Category", Width: nameW},
		{Title: "Encoded Name", Width: encodedW},
		{Title: "Oldest", Width: dateW},
		{Title: "Newest", Width: dateW},
		{Title: "Updated", Width: freqW},
	}
}

func categoriesToRows(cats []books.Category) []table.Row {
	rows := make([]table.Row, len(cats))
	for i, c := range cats {
		rows[i] = table.Row{
			c.DisplayName,
			c.EncodedName,
			books.FormatQueryDate(c.ValidFrom),
			books.FormatQueryDate(c.ValidTo),
			strings.ToLower(c.UpdateFrequency.String()),
		}
	}
	return rows
}

// SetSize updates the available terminal dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	if w-6 > 0 && h-6 > 0 {
		m.table.SetColumns(tableColumns(w - 6))
		m.table.SetWidth(w - 6)
		m.table.SetHeight(h - 6)
	}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Loaded() bool { return true }

func (m *Model) HelpBindings() []key.Binding {
	if len(m.rows) == 0 {
		return nil
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open in finder")),
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if keyMsg.String() == "enter" {
		if c, ok := m.current(); ok {
			return m, func() tea.Msg { return PickCategoryMsg{Key: c.Key} }
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(keyMsg)
	return m, cmd
}

// current returns the category under the table cursor.
func (m *Model) current() (books.Category, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return books.Category{}, false
	}
	return m.rows[i], true
}

func (m *Model) View() string {
	panelW := m.width - 2
	if panelW < 40 {
		panelW = 80
	}

	if m.state.CatalogErr != nil {
		return common.AppStyle.Render(common.RenderErrorPanel("Catalog",
			common.ErrorStyle.Render("Could not load categories: "+common.Describe(m.state.CatalogErr))+"\n"+
				common.HelpStyle.Render("Press r on the Finder tab to retry."),
			panelW))
	}

	weekly := 0
	for _, c := range m.rows {
		if c.UpdateFrequency == books.Weekly {
			weekly++
		}
	}
	title := fmt.Sprintf("Categories (%d, %d weekly, %d monthly)", len(m.rows), weekly, len(m.rows)-weekly)
	tableView := lipgloss.NewStyle().Width(panelW - 4).Render(m.table.View())
	return common.AppStyle.Render(common.RenderPanel(title, tableView, panelW))
}
