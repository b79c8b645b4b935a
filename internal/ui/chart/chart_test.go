package chart

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NotMugil/nyt-tui/internal/books"
	"github.com/NotMugil/nyt-tui/internal/session"
)

func withWeeks(weeks ...int) []books.Book {
	out := make([]books.Book, len(weeks))
	for i, w := range weeks {
		out[i] = books.Book{Rank: i + 1, Title: "Book", WeeksOnList: w}
	}
	return out
}

func fetchedState(t *testing.T, weeks ...int) *session.State {
	t.Helper()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	s := session.New(func() time.Time { return now })
	s.LoadCatalog([]books.Category{{
		Key:             0,
		DisplayName:     "Hardcover Fiction",
		EncodedName:     "hardcover-fiction",
		ValidFrom:       time.Date(2008, 1, 1, 0, 0, 0, 0, time.Local),
		ValidTo:         now,
		UpdateFrequency: books.Weekly,
	}}, nil)
	require.True(t, s.SelectCategory(0))
	key, err := s.BeginFetch()
	require.NoError(t, err)
	s.ApplyBestsellers(key, withWeeks(weeks...), nil)
	return s
}

func TestPieBar_FillsWidth(t *testing.T) {
	tally := books.Tally(withWeeks(0, 3, 3, 7, 15, 41), books.UnitWeeks)
	assert.Equal(t, 30, lipgloss.Width(pieBar(tally, 30)))

	empty := books.Tally(nil, books.UnitWeeks)
	assert.Equal(t, 30, lipgloss.Width(pieBar(empty, 30)))
}

func TestLegend(t *testing.T) {
	buckets := books.Bucketize(withWeeks(0, 3, 3, 7, 15, 41), books.UnitWeeks)
	out := Legend(buckets, 40)
	assert.Contains(t, out, "1. 1-5 Weeks (2)")
	assert.Contains(t, out, "4. 21-40 Weeks (0)", "empty buckets stay in the chart")
	assert.NotContains(t, out, "6-11")
	assert.Empty(t, Legend(nil, 40))
}

func TestChartWithLegend_Empty(t *testing.T) {
	assert.Contains(t, ChartWithLegend(nil, 60, 10), "No buckets")
}

func TestView_NothingFetched(t *testing.T) {
	m := New(session.New(nil))
	m.SetSize(100, 40)
	assert.Contains(t, m.View(), "No bestseller list fetched yet")
}

func TestView_Fetched(t *testing.T) {
	m := New(fetchedState(t, 0, 3, 3, 7, 15, 41))
	m.SetSize(100, 60)

	out := m.View()
	assert.Contains(t, out, "Hardcover Fiction")
	assert.Contains(t, out, "2024-06-01")
	assert.Contains(t, out, "6 books")
	assert.Contains(t, out, "Distribution")
	assert.Contains(t, out, "41+ Weeks")
}
