package library

import "errors"

var ErrNotFound = errors.New("library not found")
