package bookdetail

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NotMugil/nyt-tui/internal/books"
	"github.com/NotMugil/nyt-tui/internal/common"
)

const (
	coverMaxW = 28
	coverMaxH = 16
)

func loadCover(url string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		img, err := common.FetchCover(ctx, nil, url)
		if err != nil {
			return coverLoadedMsg{err: err}
		}
		art, err := common.RenderCover(img, coverMaxW, coverMaxH)
		return coverLoadedMsg{art: art, err: err}
	}
}

func (m *Model) openLink(link books.PurchaseLink) tea.Cmd {
	open := m.open
	return func() tea.Msg {
		if open == nil {
			return linkOpenedMsg{name: link.Name}
		}
		return linkOpenedMsg{name: link.Name, err: open(link.URL)}
	}
}
