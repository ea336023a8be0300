package repositories

import "errors"

// ErrNotFound is wrapped by every repository when the requested row does
// not exist, so handlers can map it to a 404 with errors.Is.
var ErrNotFound = errors.New("record not found")
