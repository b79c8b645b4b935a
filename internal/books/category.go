// Package books holds the bestseller domain: the category catalog, query
// date ranges, fetched books and the weeks-on-list histogram.
package books

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/NotMugil/nyt-tui/internal/api"
)

// DateLayout is the calendar date format used by the NYT Books API.
const DateLayout = "2006-01-02"

// Frequency is how often a bestseller list is republished.
type Frequency int

const (
	Weekly Frequency = iota
	Monthly
)

func (f Frequency) String() string {
	switch f {
	case Weekly:
		return "WEEKLY"
	case Monthly:
		return "MONTHLY"
	default:
		return "UNKNOWN"
	}
}

// ParseFrequency parses the "updated" field of a catalog entry.
func ParseFrequency(s string) (Frequency, error) {
	switch s {
	case "WEEKLY":
		return Weekly, nil
	case "MONTHLY":
		return Monthly, nil
	default:
		return 0, fmt.Errorf("%w: unknown update frequency %q", api.ErrParse, s)
	}
}

// Category is one bestseller list and the dates it can be queried for.
type Category struct {
	Key             int
	DisplayName     string
	EncodedName     string
	ValidFrom       time.Time
	ValidTo         time.Time
	UpdateFrequency Frequency
}

// CatalogSource returns the raw list catalog. *api.Client implements it.
type CatalogSource interface {
	ListNames(ctx context.Context) ([]api.ListName, error)
}

// LoadCatalog fetches and normalizes the category catalog. Keys are the
// zero-based positions in the response and stay stable for the session.
func LoadCatalog(ctx context.Context, src CatalogSource) ([]Category, error) {
	raw, err := src.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	cats := make([]Category, 0, len(raw))
	for i, r := range raw {
		c, err := newCategory(i, r)
		if err != nil {
			return nil, fmt.Errorf("load catalog: entry %d: %w", i, err)
		}
		cats = append(cats, c)
	}
	return cats, nil
}

func newCategory(key int, r api.ListName) (Category, error) {
	if r.ListNameEncoded == "" {
		return Category{}, fmt.Errorf("%w: missing list_name_encoded", api.ErrParse)
	}
	from, err := ParseDate(r.OldestPublishedDate)
	if err != nil {
		return Category{}, fmt.Errorf("oldest_published_date: %w", err)
	}
	to, err := ParseDate(r.NewestPublishedDate)
	if err != nil {
		return Category{}, fmt.Errorf("newest_published_date: %w", err)
	}
	freq, err := ParseFrequency(r.Updated)
	if err != nil {
		return Category{}, err
	}

	return Category{
		Key:             key,
		DisplayName:     r.ListName,
		EncodedName:     r.ListNameEncoded,
		ValidFrom:       from,
		ValidTo:         to,
		UpdateFrequency: freq,
	}, nil
}

// ParseDate parses a YYYY-MM-DD date as local midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", api.ErrParse, s)
	}
	return t, nil
}

// FindByKey returns the category with the given key.
func FindByKey(cats []Category, key int) (*Category, bool) {
	for i := range cats {
		if cats[i].Key == key {
			return &cats[i], true
		}
	}
	return nil, false
}

// SortedByName returns a copy of cats ordered by display name. Keys are untouched.
func SortedByName(cats []Category) []Category {
	out := make([]Category, len(cats))
	copy(out, cats)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayName < out[j].DisplayName
	})
	return out
}
