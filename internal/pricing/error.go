package pricing

import "errors"

var (
	ErrCheckInNotInFuture           = errors.New("check-in must be after today")
	ErrCheckOutBeforeOrEqualCheckIn = errors.New("check-out must be at least one night after check-in")
	ErrInvalidRange                 = errors.New("stay must cover at least one night")
	ErrNegativeRate                 = errors.New("nightly rate must not be negative")
)
