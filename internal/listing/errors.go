package listing

import "errors"

// ErrNotFound is returned when a listing id does not exist.
var ErrNotFound = errors.New("listing not found")
