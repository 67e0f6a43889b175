package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrAuctionNotFound = errors.New("auction_not_found")
	ErrResultNotFound  = errors.New("result_not_found")
	ErrResultExists    = errors.New("result_already_archived")
	ErrMalformedEvent  = errors.New("malformed_event")
)

// ValidationError represents an event that failed field validation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
