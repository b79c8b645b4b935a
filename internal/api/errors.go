package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for NYT API operations. Every status-specific error
// wraps ErrNetwork, so errors.Is(err, ErrNetwork) holds for any HTTP failure.
var (
	ErrNetwork = errors.New("nyt: network error")
	ErrParse   = errors.New("nyt: malformed response")

	ErrUnauthorized = fmt.Errorf("%w: unauthorized (check the api key)", ErrNetwork)
	ErrNotFound     = fmt.Errorf("%w: not found", ErrNetwork)
	ErrRateLimited  = fmt.Errorf("%w: rate limited by server", ErrNetwork)
	ErrServer       = fmt.Errorf("%w: server error", ErrNetwork)
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op   string // "listNames", "bestSellers"
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("nyt %s [%s]: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op, path string, err error) error {
	return &Error{Op: op, Path: path, Err: err}
}

// statusError maps a non-2xx HTTP status to a sentinel error.
func statusError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case code >= 500:
		return ErrServer
	default:
		return fmt.Errorf("%w: unexpected status %d", ErrNetwork, code)
	}
}
