package books

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NotMugil/nyt-tui/internal/api"
)

type fakeCatalog struct {
	names []api.ListName
	err   error
}

func (f fakeCatalog) ListNames(context.Context) ([]api.ListName, error) {
	return f.names, f.err
}

type fakeBestsellers struct {
	list    *api.BestSellerList
	err     error
	date    string
	encoded string
	calls   int
}

func (f *fakeBestsellers) BestSellers(_ context.Context, date, encoded string) (*api.BestSellerList, error) {
	f.calls++
	f.date = date
	f.encoded = encoded
	return f.list, f.err
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func intPtr(v int) *int { return &v }

func TestLoadCatalog(t *testing.T) {
	src := fakeCatalog{names: []api.ListName{
		{ListName: "Hardcover Fiction", ListNameEncoded: "hardcover-fiction", OldestPublishedDate: "2008-06-08", NewestPublishedDate: "2024-06-02", Updated: "WEEKLY"},
		{ListName: "Business Books", ListNameEncoded: "business-books", OldestPublishedDate: "2013-11-03", NewestPublishedDate: "2024-05-12", Updated: "MONTHLY"},
	}}

	cats, err := LoadCatalog(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, cats, 2)

	assert.Equal(t, 0, cats[0].Key)
	assert.Equal(t, 1, cats[1].Key)
	assert.Equal(t, "Hardcover Fiction", cats[0].DisplayName)
	assert.Equal(t, "hardcover-fiction", cats[0].EncodedName)
	assert.Equal(t, Weekly, cats[0].UpdateFrequency)
	assert.Equal(t, Monthly, cats[1].UpdateFrequency)
	assert.Equal(t, date(t, "2013-11-03"), cats[1].ValidFrom)
	assert.Equal(t, date(t, "2024-05-12"), cats[1].ValidTo)
}

func TestLoadCatalog_Errors(t *testing.T) {
	valid := api.ListName{ListName: "X", ListNameEncoded: "x", OldestPublishedDate: "2010-01-01", NewestPublishedDate: "2011-01-01", Updated: "WEEKLY"}

	tests := []struct {
		name    string
		src     fakeCatalog
		wantErr error
	}{
		{name: "network", src: fakeCatalog{err: api.ErrServer}, wantErr: api.ErrNetwork},
		{name: "missing encoded name", src: fakeCatalog{names: []api.ListName{func() api.ListName { v := valid; v.ListNameEncoded = ""; return v }()}}, wantErr: api.ErrParse},
		{name: "bad oldest date", src: fakeCatalog{names: []api.ListName{func() api.ListName { v := valid; v.OldestPublishedDate = "06/08/2008"; return v }()}}, wantErr: api.ErrParse},
		{name: "bad newest date", src: fakeCatalog{names: []api.ListName{func() api.ListName { v := valid; v.NewestPublishedDate = ""; return v }()}}, wantErr: api.ErrParse},
		{name: "bad frequency", src: fakeCatalog{names: []api.ListName{func() api.ListName { v := valid; v.Updated = "DAILY"; return v }()}}, wantErr: api.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cats, err := LoadCatalog(context.Background(), tt.src)
			assert.Nil(t, cats)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSortedByName(t *testing.T) {
	cats := []Category{
		{Key: 0, DisplayName: "Hardcover Fiction"},
		{Key: 1, DisplayName: "Business Books"},
		{Key: 2, DisplayName: "Audio Fiction"},
	}

	sorted := SortedByName(cats)
	assert.Equal(t, []int{2, 1, 0}, []int{sorted[0].Key, sorted[1].Key, sorted[2].Key})
	assert.Equal(t, 0, cats[0].Key, "input must not be reordered")

	c, ok := FindByKey(cats, 1)
	require.True(t, ok)
	assert.Equal(t, "Business Books", c.DisplayName)
	_, ok = FindByKey(cats, 9)
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 30, 0, 0, time.Local)

	t.Run("no category", func(t *testing.T) {
		r := Resolve(nil, now)
		assert.Equal(t, now, r.Min)
		assert.Equal(t, now, r.Max)
		assert.Equal(t, now, r.Default)
	})

	cats := []Category{
		{ValidFrom: date(t, "2008-01-01"), ValidTo: date(t, "2024-06-01")},
		{ValidFrom: date(t, "2013-11-03"), ValidTo: date(t, "2013-11-03")},
		{ValidFrom: date(t, "2011-02-13"), ValidTo: date(t, "2024-06-02")},
	}
	for _, c := range cats {
		r := Resolve(&c, now)
		assert.False(t, r.Min.After(r.Max))
		assert.Equal(t, r.Max, r.Default)
		assert.Equal(t, c.ValidFrom, r.Min)
		assert.Equal(t, c.ValidTo, r.Max)
	}
}

func TestDateRange_Clamp(t *testing.T) {
	r := DateRange{Min: date(t, "2008-01-01"), Max: date(t, "2024-06-01")}

	assert.Equal(t, r.Min, r.Clamp(date(t, "2001-05-05")))
	assert.Equal(t, r.Max, r.Clamp(date(t, "2025-01-01")))
	mid := date(t, "2015-07-04")
	assert.Equal(t, mid, r.Clamp(mid))
	assert.True(t, r.Contains(mid))
	assert.True(t, r.Contains(r.Min))
	assert.True(t, r.Contains(r.Max))
	assert.False(t, r.Contains(date(t, "2024-06-02")))
}

func TestFormatQueryDate(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local), "2024-06-01"},
		{time.Date(2008, time.January, 9, 23, 59, 0, 0, time.Local), "2008-01-09"},
		{time.Date(2019, time.December, 31, 12, 0, 0, 0, time.Local), "2019-12-31"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatQueryDate(tt.in))
	}

	// Late evening east of UTC is the previous day in UTC; the local
	// calendar day must win.
	tokyo := time.FixedZone("JST", 9*60*60)
	early := time.Date(2024, time.March, 5, 1, 0, 0, 0, tokyo)
	assert.Equal(t, "2024-03-05", FormatQueryDate(early))
	assert.Equal(t, "2024-03-04", early.UTC().Format(DateLayout))
}

func hardcoverFiction(t *testing.T) *Category {
	return &Category{
		Key:             0,
		DisplayName:     "Hardcover Fiction",
		EncodedName:     "hardcover-fiction",
		ValidFrom:       date(t, "2008-01-01"),
		ValidTo:         date(t, "2024-06-01"),
		UpdateFrequency: Weekly,
	}
}

func TestFetch(t *testing.T) {
	src := &fakeBestsellers{list: &api.BestSellerList{Books: []api.ListBook{
		{
			Rank:        intPtr(1),
			Title:       "THE WOMEN",
			Author:      "Kristin Hannah",
			Description: "A nursing student &amp; her <i>brother</i>.",
			BookImage:   "https://example.com/women.jpg",
			BuyLinks: []api.BuyLink{
				{Name: "Amazon", URL: "https://amazon.example/women"},
				{Name: "Empty", URL: ""},
			},
			WeeksOnList: 17,
		},
		{Title: "FUNNY STORY", Author: "Emily Henry", WeeksOnList: 0},
	}}}

	bks, err := Fetch(context.Background(), src, hardcoverFiction(t), date(t, "2024-06-01"))
	require.NoError(t, err)

	assert.Equal(t, "2024-06-01", src.date)
	assert.Equal(t, "hardcover-fiction", src.encoded)
	require.Len(t, bks, 2)

	assert.Equal(t, 1, bks[0].Rank)
	assert.Equal(t, "The Women", bks[0].Title)
	assert.Equal(t, "A nursing student & her brother.", bks[0].Description)
	assert.Equal(t, []PurchaseLink{{Name: "Amazon", URL: "https://amazon.example/women"}}, bks[0].PurchaseLinks)
	assert.False(t, bks[0].IsNew())

	assert.Equal(t, 2, bks[1].Rank, "missing rank falls back to position")
	assert.Equal(t, "Funny Story", bks[1].Title)
	assert.Empty(t, bks[1].Description)
	assert.Empty(t, bks[1].PurchaseLinks)
	assert.True(t, bks[1].IsNew())
}

func TestFetch_NoCategory(t *testing.T) {
	src := &fakeBestsellers{}
	_, err := Fetch(context.Background(), src, nil, time.Now())
	assert.ErrorIs(t, err, ErrNoCategory)
	assert.Zero(t, src.calls)
}

func TestFetch_Errors(t *testing.T) {
	src := &fakeBestsellers{err: api.ErrUnauthorized}
	_, err := Fetch(context.Background(), src, hardcoverFiction(t), date(t, "2024-06-01"))
	assert.ErrorIs(t, err, api.ErrNetwork)

	src = &fakeBestsellers{list: &api.BestSellerList{Books: []api.ListBook{{Title: "X", WeeksOnList: -1}}}}
	_, err = Fetch(context.Background(), src, hardcoverFiction(t), date(t, "2024-06-01"))
	assert.True(t, errors.Is(err, api.ErrParse))
}

func booksWithWeeks(weeks ...int) []Book {
	out := make([]Book, len(weeks))
	for i, w := range weeks {
		out[i] = Book{WeeksOnList: w}
	}
	return out
}

func TestBucketize_Empty(t *testing.T) {
	got := Bucketize(nil, UnitWeeks)
	require.Len(t, got, 6)
	for i, b := range got {
		assert.Equal(t, i, b.ID)
		assert.Zero(t, b.Count)
	}
	assert.Equal(t, []string{"0 Weeks", "1-5 Weeks", "6-11 Weeks", "11-20 Weeks", "21-40 Weeks", "41+ Weeks"},
		[]string{got[0].RangeLabel, got[1].RangeLabel, got[2].RangeLabel, got[3].RangeLabel, got[4].RangeLabel, got[5].RangeLabel})
}

func TestBucketize_DropsSingletons(t *testing.T) {
	bks := booksWithWeeks(0, 3, 3, 7, 15, 41)

	tally := Tally(bks, UnitWeeks)
	counts := make([]int, len(tally))
	for i, b := range tally {
		counts[i] = b.Count
	}
	assert.Equal(t, []int{1, 2, 1, 1, 0, 1}, counts, "15 lands in 11-20, leaving 21-40 empty")

	// Only buckets holding exactly one book are dropped; empty ones stay.
	got := Bucketize(bks, UnitWeeks)
	assert.Equal(t, []FrequencyBucket{
		{ID: 1, RangeLabel: "1-5 Weeks", Count: 2},
		{ID: 4, RangeLabel: "21-40 Weeks", Count: 0},
	}, got)
}

func TestBucketize_Boundaries(t *testing.T) {
	tests := []struct {
		weeks int
		id    int
	}{
		{0, 0}, {1, 1}, {5, 1}, {6, 2}, {10, 2}, {11, 3}, {20, 3}, {21, 4}, {40, 4}, {41, 5}, {500, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.id, bucketIndex(tt.weeks), "weeks=%d", tt.weeks)
	}
}

func TestBucketize_KeepsZeroAndMultiples(t *testing.T) {
	got := Bucketize(booksWithWeeks(2, 4, 8, 9, 9), UnitWeeks)

	ids := make([]int, len(got))
	for i, b := range got {
		ids[i] = b.ID
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, ids)
	assert.Equal(t, 2, got[1].Count)
	assert.Equal(t, 3, got[2].Count)
	assert.Zero(t, got[0].Count)
}

func TestUnitFor(t *testing.T) {
	weeklyFirst := []Category{{UpdateFrequency: Weekly}, {UpdateFrequency: Monthly}}
	monthlyFirst := []Category{{UpdateFrequency: Monthly}, {UpdateFrequency: Weekly}}

	assert.Equal(t, UnitWeeks, UnitFor(weeklyFirst))
	assert.Equal(t, UnitMonths, UnitFor(monthlyFirst))
	assert.Equal(t, UnitMonths, UnitFor(nil))

	got := Bucketize(booksWithWeeks(1, 2), UnitFor(monthlyFirst))
	assert.Equal(t, "1-5 Months", got[1].RangeLabel)
}

func TestUnitFor_LoadOrderNotName(t *testing.T) {
	cats := []Category{
		{Key: 0, DisplayName: "Hardcover Fiction", UpdateFrequency: Weekly},
		{Key: 1, DisplayName: "Audio Fiction", UpdateFrequency: Monthly},
	}
	assert.Equal(t, UnitWeeks, UnitFor(cats))
	assert.Equal(t, "Audio Fiction", SortedByName(cats)[0].DisplayName)
	assert.Equal(t, "Hardcover Fiction", cats[0].DisplayName, "sorting for display leaves the catalog order alone")
}


func TestParseFrequency(t *testing.T) {
	f, err := ParseFrequency("WEEKLY")
	require.NoError(t, err)
	assert.Equal(t, "WEEKLY", f.String())

	f, err = ParseFrequency("MONTHLY")
	require.NoError(t, err)
	assert.Equal(t, Monthly, f)

	_, err = ParseFrequency("weekly")
	assert.ErrorIs(t, err, api.ErrParse)
}
