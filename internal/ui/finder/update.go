package finder

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/NotMugil/nyt-tui/internal/common"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case booksFetchedMsg:
		m.state.ApplyBestsellers(msg.key, msg.books, msg.err)
		if msg.err != nil {
			return m, common.NotifyErrCmd("Fetch failed", msg.err)
		}
		m.setResults(m.state.Books)
		if len(m.state.Books) > 0 {
			m.setFocus(paneResults)
		}
		return m, common.NotifyCmd(common.NotifySuccess,
			fmt.Sprintf("%d books from %s", len(m.state.Books), msg.key.Category.DisplayName))

	case spinner.TickMsg:
		if m.state.Fetching() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.categories.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.categories, cmd = m.categories.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "f":
		return m, m.startFetch()
	case "r":
		if m.state.CatalogErr != nil {
			return m, reloadCatalog
		}
		return m, nil
	case "c":
		m.setFocus(paneCategories)
		return m, nil
	case "d":
		if m.state.Selected() == nil {
			return m, common.NotifyCmd(common.NotifyWarning, "Pick a category first")
		}
		m.setFocus(paneDate)
		return m, nil
	case "b":
		if len(m.state.Books) > 0 {
			m.setFocus(paneResults)
		}
		return m, nil
	}

	switch m.focus {
	case paneDate:
		return m.updateDate(msg)
	case paneResults:
		return m.updateResults(msg)
	default:
		return m.updateCategories(msg)
	}
}

func (m *Model) updateCategories(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		item, ok := m.categories.SelectedItem().(categoryItem)
		if !ok || !m.state.SelectCategory(item.cat.Key) {
			return m, nil
		}
		m.picker.SetTime(m.state.QueryDate())
		m.setFocus(paneDate)
		return m, nil
	}
	var cmd tea.Cmd
	m.categories, cmd = m.categories.Update(msg)
	return m, cmd
}

func (m *Model) updateDate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.setFocus(paneCategories)
		return m, nil
	case "enter":
		m.picker.SelectDate()
		m.clampPicker()
		return m, m.startFetch()
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	m.clampPicker()
	return m, cmd
}

// clampPicker stores the picker's date in the state and pulls the
// picker back when it moved outside the category's range.
func (m *Model) clampPicker() {
	stored := m.state.SelectDate(m.picker.Time)
	if !stored.Equal(m.picker.Time) {
		m.picker.SetTime(stored)
	}
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		item, ok := m.results.SelectedItem().(bookItem)
		if !ok || m.state.FetchedFor == nil {
			return m, nil
		}
		fetched := m.state.FetchedFor
		return m, func() tea.Msg {
			return NavigateToBookMsg{
				Book: item.book,
				List: fetched.Category.DisplayName,
				Date: fetched.Date,
			}
		}
	}
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}
