package bookdetail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/NotMugil/nyt-tui/internal/books"
	"github.com/NotMugil/nyt-tui/internal/common"
)

func (m *Model) View() string {
	fbW := m.width - 2
	if fbW < 60 {
		fbW = 80
	}
	fbH := m.height
	if fbH < 10 {
		fbH = 24
	}
	m.flexBox.SetWidth(fbW)
	m.flexBox.SetHeight(fbH)
	m.flexBox.ForceRecalculate()

	leftCell := m.flexBox.GetRow(0).GetCell(0)
	rightCell := m.flexBox.GetRow(0).GetCell(1)
	leftW := leftCell.GetWidth()
	rightW := rightCell.GetWidth()

	leftCell.SetContent(m.renderCoverPanel(leftW))
	rightCell.SetContent(m.renderTextPanels(rightW, fbH))

	body := m.flexBox.Render()
	if m.linksOpen {
		fg := m.renderLinksOverlay(fbW)
		body = overlay.Composite(fg, body, overlay.Center, overlay.Center, 0, 0)
	}
	return common.AppStyle.Render(body)
}

func (m *Model) renderCoverPanel(w int) string {
	var b strings.Builder
	switch {
	case m.coverArt != "":
		b.WriteString(m.coverArt)
	case m.coverLoading:
		b.WriteString(common.HelpStyle.Render("Loading cover..."))
	default:
		b.WriteString(common.HelpStyle.Render("No cover"))
	}
	b.WriteString("\n\n")
	b.WriteString(common.LabelStyle.Render(fmt.Sprintf("#%d", m.book.Rank)))
	b.WriteString("  ")
	if m.book.IsNew() {
		b.WriteString(common.NewBadgeStyle.Render("NEW"))
	} else {
		b.WriteString(common.ValueStyle.Render(weeks(m.book.WeeksOnList)))
	}
	return common.RenderPanel("Cover", b.String(), w)
}

func weeks(n int) string {
	if n == 1 {
		return "1 week on list"
	}
	return fmt.Sprintf("%d weeks on list", n)
}

func (m *Model) renderTextPanels(w, h int) string {
	innerW := max(w-4, 10)

	var head strings.Builder
	head.WriteString(common.TitleStyle.Render(lipgloss.NewStyle().Width(innerW).Render(m.book.Title)))
	head.WriteString("\n")
	head.WriteString(common.ValueStyle.Render("by " + m.book.Author))
	head.WriteString("\n")
	head.WriteString(common.HelpStyle.Render(fmt.Sprintf("%s, %s", m.list, books.FormatQueryDate(m.date))))
	if len(m.book.PurchaseLinks) > 0 {
		head.WriteString("\n\n")
		head.WriteString(common.HelpStyle.Render(fmt.Sprintf("p: buy from %d retailers", len(m.book.PurchaseLinks))))
	}
	headPanel := common.RenderPanel("Book", head.String(), w)

	if m.book.Description == "" {
		return headPanel
	}

	summaryH := max(h-lipgloss.Height(headPanel)-2, 3)
	wrapped := lipgloss.NewStyle().Width(innerW).Render(m.book.Description)
	if !m.summaryReady || m.summary.Width != innerW || m.summary.Height != summaryH {
		m.summary = viewport.New(innerW, summaryH)
		m.summary.SetContent(wrapped)
		m.summaryReady = true
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		headPanel,
		common.RenderPanel("Summary", m.summary.View(), w, summaryH+2),
	)
}

func (m *Model) renderLinksOverlay(fbW int) string {
	w := max(30, min(fbW/2, 60))
	var b strings.Builder
	for i, l := range m.book.PurchaseLinks {
		if i > 0 {
			b.WriteString("\n")
		}
		line := common.Truncate(l.Name, w-8)
		if i == m.linkCursor {
			b.WriteString(common.SelectedRowStyle.Render("> " + line))
		} else {
			b.WriteString(common.ValueStyle.Render("  " + line))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(common.HelpStyle.Render("enter: open | esc: close"))
	return common.RenderActivePanel("Buy "+common.Truncate(m.book.Title, w-14), b.String(), w)
}
