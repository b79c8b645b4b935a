package books

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NotMugil/nyt-tui/internal/api"
)

// PurchaseLink is a retailer offering the book.
type PurchaseLink struct {
	Name string
	URL  string
}

// Book is one entry of a fetched bestseller list.
type Book struct {
	Rank          int
	Title         string
	Author        string
	Description   string
	CoverImageURL string
	PurchaseLinks []PurchaseLink
	WeeksOnList   int
}

// IsNew reports whether this is the book's first week on the list.
func (b Book) IsNew() bool {
	return b.WeeksOnList == 0
}

// BestsellerSource returns a dated bestseller list. *api.Client implements it.
type BestsellerSource interface {
	BestSellers(ctx context.Context, date, encodedName string) (*api.BestSellerList, error)
}

var descriptionPolicy = bluemonday.StrictPolicy()

// FormatQueryDate formats date from its own calendar fields as YYYY-MM-DD.
// No UTC conversion happens, so the picked day is the requested day.
func FormatQueryDate(date time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", date.Year(), int(date.Month()), date.Day())
}

// Fetch retrieves the ranked books of c as published on date.
func Fetch(ctx context.Context, src BestsellerSource, c *Category, date time.Time) ([]Book, error) {
	if c == nil {
		return nil, ErrNoCategory
	}

	list, err := src.BestSellers(ctx, FormatQueryDate(date), c.EncodedName)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.EncodedName, err)
	}

	titler := cases.Title(language.English)
	out := make([]Book, 0, len(list.Books))
	for i, raw := range list.Books {
		if raw.WeeksOnList < 0 {
			return nil, fmt.Errorf("fetch %s: book %d: %w: negative weeks_on_list", c.EncodedName, i, api.ErrParse)
		}
		out = append(out, newBook(i, raw, titler))
	}
	return out, nil
}

func newBook(i int, raw api.ListBook, titler cases.Caser) Book {
	rank := i + 1
	if raw.Rank != nil {
		rank = *raw.Rank
	}

	links := make([]PurchaseLink, 0, len(raw.BuyLinks))
	for _, l := range raw.BuyLinks {
		if strings.TrimSpace(l.URL) == "" {
			continue
		}
		links = append(links, PurchaseLink{Name: l.Name, URL: l.URL})
	}

	return Book{
		Rank:          rank,
		Title:         titler.String(strings.TrimSpace(raw.Title)),
		Author:        strings.TrimSpace(raw.Author),
		Description:   cleanDescription(raw.Description),
		CoverImageURL: raw.BookImage,
		PurchaseLinks: links,
		WeeksOnList:   raw.WeeksOnList,
	}
}

// cleanDescription strips markup and decodes the entities bluemonday escapes.
func cleanDescription(s string) string {
	return strings.TrimSpace(html.UnescapeString(descriptionPolicy.Sanitize(s)))
}
