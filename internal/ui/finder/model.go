// Package finder is the main screen: pick a category and a date, fetch
// that week's bestsellers, and see how long they have been on the list.
package finder

import (
	"fmt"
	"time"

	"github.com/76creates/stickers/flexbox"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	datepicker "github.com/ethanefung/bubble-datepicker"

	"github.com/NotMugil/nyt-tui/internal/books"
	"github.com/NotMugil/nyt-tui/internal/common"
	"github.com/NotMugil/nyt-tui/internal/session"
)

// NavigateToBookMsg asks the app to open a book's detail screen.
type NavigateToBookMsg struct {
	Book books.Book
	List string
	Date time.Time
}

// ReloadCatalogMsg asks the app to load the category catalog again.
type ReloadCatalogMsg struct{}

type booksFetchedMsg struct {
	key   session.FetchKey
	books []books.Book
	err   error
}

type pane int

const (
	paneCategories pane = iota
	paneDate
	paneResults
)

// categoryItem implements list.DefaultItem.
type categoryItem struct {
	cat books.Category
}

func (i categoryItem) Title() string { return i.cat.DisplayName }

func (i categoryItem) Description() string {
	return fmt.Sprintf("%s to %s, %s",
		books.FormatQueryDate(i.cat.ValidFrom),
		books.FormatQueryDate(i.cat.ValidTo),
		lowerFrequency(i.cat.UpdateFrequency))
}

func (i categoryItem) FilterValue() string { return i.cat.DisplayName }

// bookItem implements list.DefaultItem.
type bookItem struct {
	book books.Book
}

func (i bookItem) Title() string {
	return fmt.Sprintf("#%d %s", i.book.Rank, i.book.Title)
}

func (i bookItem) Description() string {
	return "by " + i.book.Author + "  " + weeksLabel(i.book)
}

func (i bookItem) FilterValue() string { return i.book.Title }

// weeksLabel shows NEW for a book in its first week on the list.
func weeksLabel(b books.Book) string {
	switch {
	case b.IsNew():
		return "NEW"
	case b.WeeksOnList == 1:
		return "1 week on list"
	default:
		return fmt.Sprintf("%d weeks on list", b.WeeksOnList)
	}
}

func lowerFrequency(f books.Frequency) string {
	if f == books.Monthly {
		return "monthly"
	}
	return "weekly"
}

// Model is the finder screen model.
type Model struct {
	state  *session.State
	source books.BestsellerSource

	categories list.Model
	results    list.Model
	picker     datepicker.Model
	spinner    spinner.Model
	focus      pane

	flexBox *flexbox.FlexBox
	width   int
	height  int
}

// New creates the finder over the shared session state. source serves
// bestseller lists; *api.Client implements it.
func New(state *session.State, source books.BestsellerSource) *Model {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(common.SpinnerStyle),
	)

	picker := datepicker.New(state.QueryDate())
	picker.Focused = datepicker.FocusNone

	m := &Model{
		state:      state,
		source:     source,
		categories: newList(true),
		results:    newList(false),
		picker:     picker,
		spinner:    s,
		flexBox:    newFinderFlexBox(),
	}
	m.Refresh()
	m.setResults(state.Books)
	return m
}

// newFinderFlexBox lays out one row: controls on the left, results and
// chart on the right.
func newFinderFlexBox() *flexbox.FlexBox {
	fb := flexbox.New(0, 0)
	row := fb.NewRow().AddCells(
		flexbox.NewCell(2, 1),
		flexbox.NewCell(3, 1),
	)
	fb.AddRows([]*flexbox.Row{row})
	return fb
}

func newList(filterable bool) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(common.ColorPrimary).
		BorderLeftForeground(common.ColorPrimary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(common.ColorSubtext).
		BorderLeftForeground(common.ColorPrimary)

	l := list.New([]list.Item{}, delegate, 40, 10)
	l.SetShowTitle(false)
	l.SetShowStatusBar(filterable)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(filterable)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = common.ValueStyle
	return l
}

// Refresh rebuilds the category list from the state, keeping the cursor
// on the selected category, and puts the picker on the query date.
func (m *Model) Refresh() {
	sorted := books.SortedByName(m.state.Categories)
	items := make([]list.Item, len(sorted))
	cursor := 0
	sel := m.state.Selected()
	for i, c := range sorted {
		items[i] = categoryItem{cat: c}
		if sel != nil && c.Key == sel.Key {
			cursor = i
		}
	}
	m.categories.SetItems(items)
	m.categories.Select(cursor)
	m.picker.SetTime(m.state.QueryDate())
	if sel == nil && m.focus == paneDate {
		m.setFocus(paneCategories)
	}
}

func (m *Model) setResults(bks []books.Book) {
	items := make([]list.Item, len(bks))
	for i, b := range bks {
		items[i] = bookItem{book: b}
	}
	m.results.SetItems(items)
	m.results.Select(0)
}

func (m *Model) setFocus(p pane) {
	m.focus = p
	if p == paneDate {
		m.picker.SetFocus(datepicker.FocusCalendar)
	} else {
		m.picker.Focused = datepicker.FocusNone
	}
}

func (m *Model) Init() tea.Cmd {
	if m.state.Fetching() {
		return m.spinner.Tick
	}
	return nil
}

// SetSize updates the available terminal dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Loaded is true once the catalog load finished, successfully or not.
func (m *Model) Loaded() bool {
	return m.state.Categories != nil || m.state.CatalogErr != nil
}

// InputFocused is true while the screen needs keys the app would
// otherwise take: typing a filter or moving through the calendar.
func (m *Model) InputFocused() bool {
	return m.categories.FilterState() == list.Filtering || m.focus == paneDate
}

func (m *Model) HelpBindings() []key.Binding {
	fetch := key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fetch"))
	switch m.focus {
	case paneDate:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick date and fetch")),
			fetch,
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "categories")),
		}
	case paneResults:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open book")),
			fetch,
			key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "categories")),
			key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "date")),
		}
	}
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select category")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		fetch,
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "date")),
	}
	if len(m.state.Books) > 0 {
		bindings = append(bindings, key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "books")))
	}
	if m.state.CatalogErr != nil {
		bindings = append(bindings, key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload categories")))
	}
	return bindings
}
