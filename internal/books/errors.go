package books

import "errors"

// ErrNoCategory is returned when a fetch is attempted with no category selected.
var ErrNoCategory = errors.New("books: no category selected")
