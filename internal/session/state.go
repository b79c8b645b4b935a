// Package session owns the application state record and the transitions
// that are the only way to change it.
package session

import (
	"time"

	"github.com/NotMugil/nyt-tui/internal/books"
)

// State is the application state shared by every screen. It is only
// mutated from the UI update loop through the methods below.
type State struct {
	Categories []books.Category
	CatalogErr error

	selected  *books.Category
	queryDate time.Time
	dateRange books.DateRange

	Books      []books.Book
	FetchedFor *FetchKey
	FetchErr   error
	fetching   bool

	now func() time.Time
}

// FetchKey records which list and date the current books belong to.
type FetchKey struct {
	Category books.Category
	Date     time.Time
}

// New returns an empty state. now supplies the current time; nil means time.Now.
func New(now func() time.Time) *State {
	if now == nil {
		now = time.Now
	}
	s := &State{now: now}
	s.dateRange = books.Resolve(nil, now())
	s.queryDate = s.dateRange.Default
	return s
}

// LoadCatalog installs the result of a catalog load. A failed load
// leaves the category list empty, which disables everything downstream.
func (s *State) LoadCatalog(cats []books.Category, err error) {
	s.selected = nil
	s.dateRange = books.Resolve(nil, s.now())
	s.queryDate = s.dateRange.Default
	if err != nil {
		s.Categories = nil
		s.CatalogErr = err
		return
	}
	s.Categories = cats
	s.CatalogErr = nil
}

// SelectCategory selects the category with key and resets the query
// date to that category's default. It reports whether key exists.
func (s *State) SelectCategory(key int) bool {
	c, ok := books.FindByKey(s.Categories, key)
	if !ok {
		return false
	}
	s.selected = c
	s.dateRange = books.Resolve(c, s.now())
	s.queryDate = s.dateRange.Default
	return true
}

// SelectDate sets the query date, pinned into the valid range of the
// selected category, and returns the date actually stored.
func (s *State) SelectDate(t time.Time) time.Time {
	if s.selected == nil {
		return s.queryDate
	}
	s.queryDate = s.dateRange.Clamp(t)
	return s.queryDate
}

// Selected returns the selected category or nil.
func (s *State) Selected() *books.Category {
	return s.selected
}

// QueryDate returns the date the next fetch will request.
func (s *State) QueryDate() time.Time {
	return s.queryDate
}

// DateRange returns the valid query range for the current selection.
func (s *State) DateRange() books.DateRange {
	return s.dateRange
}

// CanFetch reports whether a bestseller fetch may be started.
func (s *State) CanFetch() bool {
	return s.selected != nil && !s.fetching
}

// Fetching reports whether a fetch is in flight.
func (s *State) Fetching() bool {
	return s.fetching
}

// BeginFetch marks a fetch in flight and returns the request to issue.
// It fails with books.ErrNoCategory when nothing is selected.
func (s *State) BeginFetch() (FetchKey, error) {
	if s.selected == nil {
		return FetchKey{}, books.ErrNoCategory
	}
	s.fetching = true
	return FetchKey{Category: *s.selected, Date: s.queryDate}, nil
}

// ApplyBestsellers installs a fetch result. The books replace the whole
// prior collection; on error the previous collection stays as it was.
func (s *State) ApplyBestsellers(key FetchKey, bks []books.Book, err error) {
	s.fetching = false
	if err != nil {
		s.FetchErr = err
		return
	}
	s.FetchErr = nil
	s.Books = bks
	k := key
	s.FetchedFor = &k
}

// Unit is the histogram unit, derived from the first loaded category.
func (s *State) Unit() books.Unit {
	return books.UnitFor(s.Categories)
}

// Buckets returns the chart buckets for the current books.
func (s *State) Buckets() []books.FrequencyBucket {
	return books.Bucketize(s.Books, s.Unit())
}

// Tally returns the unfiltered bucket counts for the current books.
func (s *State) Tally() []books.FrequencyBucket {
	return books.Tally(s.Books, s.Unit())
}
