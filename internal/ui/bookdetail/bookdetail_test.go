package bookdetail

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NotMugil/nyt-tui/internal/books"
	"github.com/NotMugil/nyt-tui/internal/common"
)

var listDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testBook() books.Book {
	return books.Book{
		Rank:        1,
		Title:       "The Women",
		Author:      "Kristin Hannah",
		Description: "A nurse goes to Vietnam.",
		WeeksOnList: 17,
		PurchaseLinks: []books.PurchaseLink{
			{Name: "Amazon", URL: "https://example.com/amazon"},
			{Name: "Bookshop.org", URL: "https://example.com/bookshop"},
		},
	}
}

func TestLinksModal(t *testing.T) {
	var opened []string
	m := New(testBook(), "Hardcover Fiction", listDate, func(url string) error {
		opened = append(opened, url)
		return nil
	})
	m.SetSize(120, 30)

	m.Update(press("p"))
	require.True(t, m.linksOpen)
	assert.True(t, m.InputFocused())
	assert.Contains(t, m.View(), "Bookshop.org")

	m.Update(press("j"))
	m.Update(press("j"))
	assert.Equal(t, 1, m.linkCursor, "cursor stops on the last link")

	_, cmd := m.Update(press("enter"))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, []string{"https://example.com/bookshop"}, opened)

	_, cmd = m.Update(msg)
	require.NotNil(t, cmd)
	assert.Equal(t, common.NotifyInfo, cmd().(common.NotifyMsg).Level)

	m.Update(press("esc"))
	assert.False(t, m.linksOpen)
	assert.False(t, m.InputFocused())
}

func TestLinksModalNeedsLinks(t *testing.T) {
	b := testBook()
	b.PurchaseLinks = nil
	m := New(b, "Hardcover Fiction", listDate, nil)

	m.Update(press("p"))
	assert.False(t, m.linksOpen)
	for _, hb := range m.HelpBindings() {
		assert.NotEqual(t, "p", hb.Help().Key)
	}
	assert.NotContains(t, m.View(), "buy from")
}

func TestOpenLinkFailureToasts(t *testing.T) {
	m := New(testBook(), "Hardcover Fiction", listDate, func(string) error {
		return errors.New("no browser")
	})
	m.Update(press("p"))
	_, cmd := m.Update(press("enter"))
	_, cmd = m.Update(cmd())
	msg := cmd().(common.NotifyMsg)
	assert.Equal(t, common.NotifyError, msg.Level)
	assert.Contains(t, msg.Message, "no browser")
}

func TestSummaryOnlyWhenPresent(t *testing.T) {
	m := New(testBook(), "Hardcover Fiction", listDate, nil)
	m.SetSize(120, 30)
	out := m.View()
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "A nurse goes to Vietnam.")
	assert.Contains(t, out, "17 weeks on list")
	assert.Contains(t, out, "Hardcover Fiction, 2024-06-01")

	b := testBook()
	b.Description = ""
	b.WeeksOnList = 0
	m = New(b, "Hardcover Fiction", listDate, nil)
	m.SetSize(120, 30)
	out = m.View()
	assert.NotContains(t, out, "Summary")
	assert.Contains(t, out, "NEW")
}

func TestCoverLoad(t *testing.T) {
	m := New(testBook(), "Hardcover Fiction", listDate, nil)
	assert.Nil(t, m.Init(), "no cover url, nothing to load")
	assert.Contains(t, m.View(), "No cover")

	b := testBook()
	b.CoverImageURL = "https://example.com/cover.jpg"
	m = New(b, "Hardcover Fiction", listDate, nil)
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Loading cover...")

	m.Update(coverLoadedMsg{err: errors.New("timeout")})
	assert.Contains(t, m.View(), "No cover")

	m.Update(coverLoadedMsg{art: "[art]"})
	assert.Contains(t, m.View(), "[art]")
}
