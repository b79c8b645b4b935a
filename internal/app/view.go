package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/NotMugil/nyt-tui/internal/books"
	"github.com/NotMugil/nyt-tui/internal/common"
)

func (m Model) View() string {
	if m.loading {
		if m.loader.Active() {
			return zone.Scan(m.loader.View(m.width, m.height))
		}
		return common.AppStyle.Render(
			fmt.Sprintf("\n  %s Loading...\n", m.spinner.View()),
		)
	}

	if m.setupMode {
		if m.setupScr != nil {
			return m.setupScr.View()
		}
		return ""
	}

	var content string
	if top := m.nav.Top(); top != nil {
		content = top.Model.View()
	}

	output := lipgloss.JoinVertical(lipgloss.Left,
		m.renderNav(),
		m.renderBreadcrumb(),
		content,
		m.renderHelp(),
	)

	if m.confirm.Active {
		output = overlay.Composite(m.confirm.View(50), output, overlay.Center, overlay.Center, 0, 0)
	}

	output = m.alert.Render(output)

	return zone.Scan(output)
}

func (m Model) renderNav() string {
	var items []string
	for i, t := range navTabs {
		label := fmt.Sprintf(" %d %s ", i+1, t.name)
		var rendered string
		if i == m.activeTab {
			rendered = common.ActiveTabStyle.Render(label)
		} else {
			rendered = common.InactiveTabStyle.Render(label)
		}
		items = append(items, zone.Mark(t.zoneID, rendered))
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, items...)

	hs := common.HelpStyles()
	shortcuts := common.HelpStyle.Render(
		hs.ShortKey.Render("?") + " " + hs.ShortDesc.Render("help") + "  " +
			hs.ShortKey.Render("esc") + " " + hs.ShortDesc.Render("back") + "  " +
			hs.ShortKey.Render("ctrl+q") + " " + hs.ShortDesc.Render("forget key") + "  " +
			hs.ShortKey.Render("q") + " " + hs.ShortDesc.Render("quit"),
	)

	navW := m.width - 2 // AppStyle padding
	if navW < 40 {
		navW = 80
	}
	gap := max(navW-lipgloss.Width(tabs)-lipgloss.Width(shortcuts), 1)

	return lipgloss.NewStyle().PaddingLeft(1).Render(
		tabs + strings.Repeat(" ", gap) + shortcuts,
	)
}

func (m Model) renderBreadcrumb() string {
	summary := m.nav.StackSummary()
	if len(summary) <= 1 {
		return ""
	}
	parts := make([]string, len(summary))
	for i, s := range summary {
		if i == len(summary)-1 {
			parts[i] = common.LabelStyle.Render(s)
		} else {
			parts[i] = common.ValueStyle.Render(s)
		}
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(
		common.HelpStyle.Render(strings.Join(parts, " > ")),
	)
}

// statusText summarizes the current selection for the help row.
func (m Model) statusText() string {
	sel := m.state.Selected()
	if sel == nil {
		return common.StatusBarStyle.Render("no category")
	}
	return common.StatusBarStyle.Render(fmt.Sprintf("%s @ %s",
		common.Truncate(sel.DisplayName, 30), books.FormatQueryDate(m.state.QueryDate())))
}

func (m Model) renderHelp() string {
	var pageBindings []key.Binding
	if top := m.nav.Top(); top != nil {
		if hb, ok := top.Model.(common.HelpBindable); ok {
			pageBindings = hb.HelpBindings()
		}
	}

	var helpView string
	if m.help.ShowAll {
		var all []key.Binding
		all = append(all, pageBindings...)
		if top := m.nav.Top(); top != nil {
			if fhb, ok := top.Model.(common.FullHelpBindable); ok {
				all = append(all, fhb.FullHelpBindings()...)
			}
		}
		for _, group := range m.keys.FullHelp() {
			all = append(all, group...)
		}
		const colSize = 4
		var groups [][]key.Binding
		for i := 0; i < len(all); i += colSize {
			groups = append(groups, all[i:min(i+colSize, len(all))])
		}
		helpView = m.help.FullHelpView(groups)
	} else {
		bindings := make([]key.Binding, 0, len(pageBindings)+2)
		bindings = append(bindings, pageBindings...)
		bindings = append(bindings, m.keys.ShortHelp()...)
		helpView = m.help.ShortHelpView(bindings)
	}

	helpWidth := m.width
	if helpWidth <= 0 {
		helpWidth = 80
	}

	lines := strings.SplitN(helpView, "\n", 2)
	firstLine := lines[0]
	status := m.statusText()

	combined := lipgloss.NewStyle().Width(helpWidth).PaddingLeft(1).Render(
		lipgloss.JoinHorizontal(lipgloss.Top,
			firstLine,
			lipgloss.PlaceHorizontal(max(helpWidth-lipgloss.Width(firstLine)-1, 0), lipgloss.Right, status),
		),
	)

	if len(lines) > 1 {
		return combined + "\n" + lines[1]
	}
	return combined
}
