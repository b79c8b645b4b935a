package finder

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NotMugil/nyt-tui/internal/books"
	"github.com/NotMugil/nyt-tui/internal/common"
	"github.com/NotMugil/nyt-tui/internal/session"
)

// startFetch begins a fetch for the current selection. A pending fetch
// swallows the trigger.
func (m *Model) startFetch() tea.Cmd {
	if m.state.Fetching() {
		return nil
	}
	fk, err := m.state.BeginFetch()
	if err != nil {
		return common.NotifyErrCmd("Fetch", err)
	}
	return tea.Batch(m.spinner.Tick, m.fetchBooks(fk))
}

func (m *Model) fetchBooks(fk session.FetchKey) tea.Cmd {
	source := m.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		cat := fk.Category
		bks, err := books.Fetch(ctx, source, &cat, fk.Date)
		return booksFetchedMsg{key: fk, books: bks, err: err}
	}
}

func reloadCatalog() tea.Msg {
	return ReloadCatalogMsg{}
}
