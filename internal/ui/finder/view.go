package finder

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NotMugil/nyt-tui/internal/books"
	"github.com/NotMugil/nyt-tui/internal/common"
	"github.com/NotMugil/nyt-tui/internal/ui/chart"
)

const chartPanelH = 14

func (m *Model) View() string {
	fbW := m.width - 2
	if fbW < 60 {
		fbW = 100
	}
	fbH := m.height
	if fbH < 20 {
		fbH = 32
	}
	m.flexBox.SetWidth(fbW)
	m.flexBox.SetHeight(fbH)
	m.flexBox.ForceRecalculate()

	leftCell := m.flexBox.GetRow(0).GetCell(0)
	rightCell := m.flexBox.GetRow(0).GetCell(1)
	leftW := leftCell.GetWidth()
	rightW := rightCell.GetWidth()
	cellH := max(leftCell.GetHeight(), 20)

	datePanel := m.renderDatePanel(leftW)
	catH := max(cellH-lipgloss.Height(datePanel), 6)
	leftCell.SetContent(lipgloss.JoinVertical(lipgloss.Left,
		m.renderCategoryPanel(leftW, catH),
		datePanel,
	))

	resultsH := max(cellH-chartPanelH, 6)
	rightCell.SetContent(lipgloss.JoinVertical(lipgloss.Left,
		m.renderResultsPanel(rightW, resultsH),
		m.renderChartPanel(rightW, chartPanelH),
	))

	return m.flexBox.Render()
}

func (m *Model) panel(p pane, title, content string, w, h int) string {
	if m.focus == p {
		return common.RenderActivePanel(title, content, w, h)
	}
	return common.RenderPanel(title, content, w, h)
}

func (m *Model) renderCategoryPanel(w, h int) string {
	if m.state.CatalogErr != nil {
		body := common.ErrorStyle.Render("Could not load categories") + "\n" +
			common.ValueStyle.Render(common.Describe(m.state.CatalogErr)) + "\n\n" +
			common.HelpStyle.Render("r: reload")
		return common.RenderErrorPanel("Categories", body, w, h)
	}
	m.categories.SetSize(w-4, h-2)
	title := fmt.Sprintf("Categories (%d)", len(m.state.Categories))
	return m.panel(paneCategories, title, m.categories.View(), w, h)
}

func (m *Model) renderDatePanel(w int) string {
	sel := m.state.Selected()
	if sel == nil {
		return m.panel(paneDate, "Date", common.HelpStyle.Render("Pick a category first"), w)
	}
	r := m.state.DateRange()
	var b strings.Builder
	b.WriteString(m.picker.View())
	b.WriteString("\n")
	b.WriteString(common.ValueStyle.Render(fmt.Sprintf("%s to %s",
		books.FormatQueryDate(r.Min), books.FormatQueryDate(r.Max))))
	b.WriteString("\n")
	b.WriteString(common.LabelStyle.Render("Query " + books.FormatQueryDate(m.state.QueryDate())))
	return m.panel(paneDate, "Date", b.String(), w)
}

func (m *Model) renderResultsPanel(w, h int) string {
	title := "Bestsellers"
	if f := m.state.FetchedFor; f != nil {
		title = fmt.Sprintf("%s, %s", f.Category.DisplayName, books.FormatQueryDate(f.Date))
	}

	var lines []string
	if err := m.state.FetchErr; err != nil {
		lines = append(lines, common.ErrorStyle.Render("Fetch failed: "+common.Describe(err)))
	}
	switch {
	case m.state.Fetching():
		lines = append(lines, fmt.Sprintf("%s Fetching...", m.spinner.View()))
	case len(m.state.Books) == 0 && m.state.FetchedFor != nil:
		lines = append(lines, common.ValueStyle.Render("No books on this list."))
	case len(m.state.Books) == 0:
		lines = append(lines, common.HelpStyle.Render("Select a category and a date, then press f."))
	default:
		listH := max(h-2-len(lines), 3)
		m.results.SetSize(w-4, listH)
		lines = append(lines, m.results.View())
	}
	return m.panel(paneResults, title, strings.Join(lines, "\n"), w, h)
}

func (m *Model) renderChartPanel(w, h int) string {
	if m.state.FetchedFor == nil {
		return common.RenderPanel("Weeks on List", common.HelpStyle.Render("Nothing fetched yet"), w, h)
	}
	body := chart.ChartWithLegend(m.state.Buckets(), w-6, h-3)
	return common.RenderPanel("Weeks on List", body, w, h)
}
