package domain

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the viewer is not allowed to manage the resource.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidInput is returned when the request is invalid.
var ErrInvalidInput = errors.New("invalid input")
