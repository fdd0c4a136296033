package services

import "errors"

// ErrForbidden is returned when a record exists but belongs to a
// different user than the caller.
var ErrForbidden = errors.New("forbidden")
