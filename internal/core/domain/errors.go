package domain

import "errors"

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrInvalidVisitor  = errors.New("invalid visitor id")
	ErrTokenInvalid    = errors.New("invalid visitor token")
	ErrEmptyQuery      = errors.New("search query is empty")
	ErrInvalidQuery    = errors.New("malformed search query")
	ErrLineNotFound    = errors.New("line not found")
)
