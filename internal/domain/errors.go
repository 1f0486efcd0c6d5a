package domain

import "errors"

var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrForbidden           = errors.New("forbidden")
	ErrTooManyAttempts     = errors.New("too many attempts")
	ErrNotFound            = errors.New("not found")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	ErrInvalidID           = errors.New("invalid id")
	ErrVenueRequired       = errors.New("venue required")
	ErrCityRequired        = errors.New("city required")
	ErrDateRequired        = errors.New("date required")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidTicketStatus = errors.New("invalid ticket status")
	ErrInvalidSortOrder    = errors.New("invalid sort order")
	ErrEmptyIDSet          = errors.New("empty id set")
)
