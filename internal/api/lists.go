package api

import (
	"context"
	"fmt"
	"net/url"
)

// ListNames fetches the catalog of bestseller lists.
func (c *Client) ListNames(ctx context.Context) ([]ListName, error) {
	const op, path = "listNames", "/lists/names.json"

	var resp listNamesResponse
	if err := c.getJSON(ctx, op, path, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return nil, wrapError(op, path, fmt.Errorf("%w: missing results", ErrParse))
	}
	return resp.Results, nil
}

// BestSellers fetches the list identified by encodedName as published on
// date, which must already be formatted as YYYY-MM-DD.
func (c *Client) BestSellers(ctx context.Context, date, encodedName string) (*BestSellerList, error) {
	const op = "bestSellers"
	path := fmt.Sprintf("/lists/%s/%s.json", url.PathEscape(date), url.PathEscape(encodedName))

	var resp bestSellersResponse
	if err := c.getJSON(ctx, op, path, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil || resp.Results.Books == nil {
		return nil, wrapError(op, path, fmt.Errorf("%w: missing results.books", ErrParse))
	}
	return resp.Results, nil
}
