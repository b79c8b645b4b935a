package finder

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NotMugil/nyt-tui/internal/api"
	"github.com/NotMugil/nyt-tui/internal/books"
	"github.com/NotMugil/nyt-tui/internal/common"
	"github.com/NotMugil/nyt-tui/internal/session"
)

type fakeSource struct {
	list  *api.BestSellerList
	err   error
	calls []string
}

func (f *fakeSource) BestSellers(_ context.Context, date, encoded string) (*api.BestSellerList, error) {
	f.calls = append(f.calls, date+"/"+encoded)
	return f.list, f.err
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func intPtr(v int) *int { return &v }

func testList() *api.BestSellerList {
	return &api.BestSellerList{Books: []api.ListBook{
		{Rank: intPtr(1), Title: "THE WOMEN", Author: "Kristin Hannah", WeeksOnList: 3,
			BuyLinks: []api.BuyLink{{Name: "Amazon", URL: "https://example.com/a"}}},
		{Rank: intPtr(2), Title: "JAMES", Author: "Percival Everett", WeeksOnList: 0},
		{Rank: intPtr(3), Title: "FUNNY STORY", Author: "Emily Henry", WeeksOnList: 4},
	}}
}

func newTestModel(t *testing.T, src *fakeSource) *Model {
	t.Helper()
	now := day(2026, 10, 14)
	s := session.New(func() time.Time { return now })
	s.LoadCatalog([]books.Category{
		{Key: 0, DisplayName: "Hardcover Fiction", EncodedName: "hardcover-fiction",
			ValidFrom: day(2008, 1, 1), ValidTo: day(2024, 6, 1), UpdateFrequency: books.Weekly},
		{Key: 1, DisplayName: "Audio Fiction", EncodedName: "audio-fiction",
			ValidFrom: day(2018, 3, 11), ValidTo: day(2024, 5, 12), UpdateFrequency: books.Monthly},
	}, nil)
	m := New(s, src)
	m.SetSize(140, 40)
	return m
}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// selectHardcoverFiction moves to the second sorted row and picks it.
func selectHardcoverFiction(t *testing.T, m *Model) {
	t.Helper()
	m.Update(press("down"))
	m.Update(press("enter"))
	require.NotNil(t, m.state.Selected())
	require.Equal(t, "hardcover-fiction", m.state.Selected().EncodedName)
}

func fetchNow(t *testing.T, m *Model) {
	t.Helper()
	_, cmd := m.Update(press("f"))
	require.NotNil(t, cmd)
	require.True(t, m.state.Fetching())

	fk := session.FetchKey{Category: *m.state.Selected(), Date: m.state.QueryDate()}
	m.Update(m.fetchBooks(fk)())
	require.False(t, m.state.Fetching())
}

func TestCategoriesSortedByName(t *testing.T) {
	m := newTestModel(t, &fakeSource{})
	items := m.categories.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Audio Fiction", items[0].(categoryItem).Title())
	assert.Equal(t, "2018-03-11 to 2024-05-12, monthly", items[0].(categoryItem).Description())
}

func TestSelectCategoryMovesPickerToNewestDate(t *testing.T) {
	m := newTestModel(t, &fakeSource{})
	selectHardcoverFiction(t, m)

	assert.Equal(t, paneDate, m.focus)
	assert.True(t, m.InputFocused())
	assert.True(t, m.picker.Time.Equal(day(2024, 6, 1)))
	assert.True(t, m.state.QueryDate().Equal(day(2024, 6, 1)))

	m.Update(press("esc"))
	assert.Equal(t, paneCategories, m.focus)
	assert.False(t, m.InputFocused())
}

func TestPickerIsClampedToRange(t *testing.T) {
	m := newTestModel(t, &fakeSource{})
	selectHardcoverFiction(t, m)

	m.picker.SetTime(day(2030, 1, 1))
	m.clampPicker()
	assert.True(t, m.picker.Time.Equal(day(2024, 6, 1)))
	assert.True(t, m.state.QueryDate().Equal(day(2024, 6, 1)))

	m.picker.SetTime(day(1999, 1, 1))
	m.clampPicker()
	assert.True(t, m.picker.Time.Equal(day(2008, 1, 1)))

	m.picker.SetTime(day(2015, 7, 19))
	m.clampPicker()
	assert.True(t, m.state.QueryDate().Equal(day(2015, 7, 19)))
}

func TestFetchWithoutCategoryWarns(t *testing.T) {
	m := newTestModel(t, &fakeSource{})

	_, cmd := m.Update(press("f"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(common.NotifyMsg)
	require.True(t, ok)
	assert.Equal(t, common.NotifyWarning, msg.Level)
	assert.False(t, m.state.Fetching())

	_, cmd = m.Update(press("d"))
	require.NotNil(t, cmd)
	assert.Equal(t, paneCategories, m.focus)
}

func TestFetchFillsResults(t *testing.T) {
	src := &fakeSource{list: testList()}
	m := newTestModel(t, src)
	selectHardcoverFiction(t, m)
	fetchNow(t, m)

	assert.Equal(t, []string{"2024-06-01/hardcover-fiction"}, src.calls)
	require.Len(t, m.results.Items(), 3)
	assert.Equal(t, "#1 The Women", m.results.Items()[0].(bookItem).Title())
	assert.Equal(t, paneResults, m.focus)

	_, cmd := m.Update(press("enter"))
	require.NotNil(t, cmd)
	nav, ok := cmd().(NavigateToBookMsg)
	require.True(t, ok)
	assert.Equal(t, "The Women", nav.Book.Title)
	assert.Equal(t, "Hardcover Fiction", nav.List)
	assert.True(t, nav.Date.Equal(day(2024, 6, 1)))
}

func TestFetchIgnoredWhilePending(t *testing.T) {
	m := newTestModel(t, &fakeSource{list: testList()})
	selectHardcoverFiction(t, m)

	_, cmd := m.Update(press("f"))
	require.NotNil(t, cmd)
	_, cmd = m.Update(press("f"))
	assert.Nil(t, cmd)
}

func TestFailedFetchKeepsResults(t *testing.T) {
	src := &fakeSource{list: testList()}
	m := newTestModel(t, src)
	selectHardcoverFiction(t, m)
	fetchNow(t, m)

	src.err = &api.Error{Op: "bestSellers", Err: api.ErrServer}
	m.Update(press("c"))
	m.Update(press("enter"))
	fetchNow(t, m)

	assert.Len(t, m.state.Books, 3)
	assert.Len(t, m.results.Items(), 3)
	assert.ErrorIs(t, m.state.FetchErr, api.ErrServer)
	assert.Contains(t, m.View(), "Fetch failed: the NYT API is unavailable")
}

func TestWeeksLabel(t *testing.T) {
	assert.Equal(t, "NEW", weeksLabel(books.Book{WeeksOnList: 0}))
	assert.Equal(t, "1 week on list", weeksLabel(books.Book{WeeksOnList: 1}))
	assert.Equal(t, "17 weeks on list", weeksLabel(books.Book{WeeksOnList: 17}))
}

func TestReloadOnlyAfterCatalogFailure(t *testing.T) {
	m := newTestModel(t, &fakeSource{})
	_, cmd := m.Update(press("r"))
	assert.Nil(t, cmd)

	m.state.LoadCatalog(nil, api.ErrNetwork)
	m.Refresh()
	_, cmd = m.Update(press("r"))
	require.NotNil(t, cmd)
	assert.Equal(t, ReloadCatalogMsg{}, cmd())
	assert.Contains(t, m.View(), "Could not load categories")
}

func TestViewAfterFetch(t *testing.T) {
	m := newTestModel(t, &fakeSource{list: testList()})
	selectHardcoverFiction(t, m)
	fetchNow(t, m)

	out := m.View()
	assert.Contains(t, out, "Hardcover Fiction, 2024-06-01")
	assert.Contains(t, out, "NEW")
	assert.Contains(t, out, "Weeks on List")
	assert.Contains(t, out, "2008-01-01 to 2024-06-01")
}
