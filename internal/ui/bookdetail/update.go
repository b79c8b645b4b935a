package bookdetail

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/NotMugil/nyt-tui/internal/common"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case coverLoadedMsg:
		m.coverLoading = false
		if msg.err == nil {
			m.coverArt = msg.art
		}
		return m, nil

	case linkOpenedMsg:
		if msg.err != nil {
			return m, common.NotifyCmd(common.NotifyError, "Could not open "+msg.name+": "+msg.err.Error())
		}
		return m, common.NotifyCmd(common.NotifyInfo, "Opened "+msg.name)

	case tea.KeyMsg:
		if m.linksOpen {
			return m.updateLinks(msg)
		}
		if msg.String() == "p" {
			if len(m.book.PurchaseLinks) > 0 {
				m.linksOpen = true
				m.linkCursor = 0
			}
			return m, nil
		}
		if m.summaryReady {
			var cmd tea.Cmd
			m.summary, cmd = m.summary.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) updateLinks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	links := m.book.PurchaseLinks
	switch msg.String() {
	case "esc", "q":
		m.linksOpen = false
	case "j", "down":
		if m.linkCursor < len(links)-1 {
			m.linkCursor++
		}
	case "k", "up":
		if m.linkCursor > 0 {
			m.linkCursor--
		}
	case "enter":
		if m.linkCursor < len(links) {
			return m, m.openLink(links[m.linkCursor])
		}
	}
	return m, nil
}
