// Package bookdetail shows one bestseller: cover, summary and where to
// buy it.
package bookdetail

import (
	"time"

	"github.com/76creates/stickers/flexbox"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/NotMugil/nyt-tui/internal/books"
)

// OpenFunc opens a URL outside the terminal, usually in a browser.
type OpenFunc func(url string) error

type coverLoadedMsg struct {
	art string
	err error
}

type linkOpenedMsg struct {
	name string
	err  error
}

// Model is the book detail screen model.
type Model struct {
	book books.Book
	list string
	date time.Time
	open OpenFunc

	coverArt     string
	coverLoading bool

	summary      viewport.Model
	summaryReady bool

	linksOpen  bool
	linkCursor int

	flexBox *flexbox.FlexBox
	width   int
	height  int
}

// New creates the detail screen for book, fetched from list on date.
func New(book books.Book, list string, date time.Time, open OpenFunc) *Model {
	return &Model{
		book:         book,
		list:         list,
		date:         date,
		open:         open,
		coverLoading: book.CoverImageURL != "",
		flexBox:      newDetailFlexBox(),
	}
}

// newDetailFlexBox creates one row: cover on the left, text on the right.
func newDetailFlexBox() *flexbox.FlexBox {
	fb := flexbox.New(0, 0)
	row := fb.NewRow().AddCells(
		flexbox.NewCell(7, 1),
		flexbox.NewCell(13, 1),
	)
	fb.AddRows([]*flexbox.Row{row})
	return fb
}

func (m *Model) Init() tea.Cmd {
	if m.book.CoverImageURL == "" {
		return nil
	}
	return loadCover(m.book.CoverImageURL)
}

// SetSize updates the available terminal dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.summaryReady = false
}

// Loaded is always true; the cover arrives in the background.
func (m *Model) Loaded() bool { return true }

// InputFocused keeps esc on this screen while the links modal is open.
func (m *Model) InputFocused() bool { return m.linksOpen }

func (m *Model) HelpBindings() []key.Binding {
	if m.linksOpen {
		return []key.Binding{
			key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next")),
			key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "prev")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open link")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		}
	}
	var bindings []key.Binding
	if m.book.Description != "" {
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "scroll")),
		)
	}
	if len(m.book.PurchaseLinks) > 0 {
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "buy")),
		)
	}
	return bindings
}
