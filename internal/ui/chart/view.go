package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/NotMugil/nyt-tui/internal/books"
	"github.com/NotMugil/nyt-tui/internal/common"
)

const chartHeight = 12

func (m *Model) View() string {
	panelW := m.width - 4
	if panelW < 60 {
		panelW = 80
	}

	if m.state.FetchedFor == nil {
		body := common.ValueStyle.Render("No bestseller list fetched yet.") + "\n" +
			common.HelpStyle.Render("Pick a category and date on the Finder tab, then press f.")
		return common.AppStyle.Render(common.RenderPanel("Weeks on List", body, panelW))
	}

	key := m.state.FetchedFor
	header := common.LabelStyle.Render(key.Category.DisplayName) + "  " +
		common.ValueStyle.Render(books.FormatQueryDate(key.Date)) + "  " +
		common.HelpStyle.Render(fmt.Sprintf("%d books", len(m.state.Books)))

	buckets := m.state.Buckets()
	chartBody := header + "\n\n" + ChartWithLegend(buckets, panelW-6, chartHeight) + "\n\n" +
		common.HelpStyle.Render("Buckets holding a single book are left out of the chart.")

	sections := []string{
		common.RenderPanel("Weeks on List", chartBody, panelW),
		common.RenderPanel("Distribution", m.distribution(panelW-6), panelW),
	}
	full := lipgloss.JoinVertical(lipgloss.Left, sections...)

	availH := m.height
	if availH < 5 {
		availH = 30
	}
	if lipgloss.Height(full) > availH {
		if !m.vpReady || m.vp.Width != panelW || m.vp.Height != availH {
			m.vp = viewport.New(panelW, availH)
			m.vpReady = true
			m.lastVpContent = ""
		}
		if full != m.lastVpContent {
			m.lastVpContent = full
			m.vp.SetContent(full)
		}
		return common.AppStyle.Render(m.vp.View())
	}

	m.vpReady = false
	return common.AppStyle.Render(full)
}

// distribution shows every bucket, single-book ones included.
func (m *Model) distribution(w int) string {
	tally := m.state.Tally()
	total := len(m.state.Books)

	var b strings.Builder
	b.WriteString(pieBar(tally, w))
	b.WriteString("\n\n")

	labelW := 0
	for _, t := range tally {
		labelW = max(labelW, lipgloss.Width(t.RangeLabel))
	}
	barW := max(w-labelW-12, 10)
	for i, t := range tally {
		if i > 0 {
			b.WriteString("\n")
		}
		label := lipgloss.NewStyle().
			Foreground(common.BucketColor(t.ID)).
			Width(labelW + 2).
			Render(t.RangeLabel)
		b.WriteString(label + common.RenderShare(t.Count, total, barW))
	}
	return b.String()
}
