package pricing

import "time"

// Date builds a calendar date at UTC midnight. All engine inputs are
// normalized to this representation before any comparison.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// Normalize strips the time-of-day and timezone from t, keeping only its
// calendar date at UTC midnight.
func Normalize(t time.Time) time.Time {
	y, m, d := t.UTC().Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MinimumBookableDate returns the earliest permitted check-in: the day
// after today.
func MinimumBookableDate(today time.Time) time.Time {
	return Normalize(today).AddDate(0, 0, 1)
}

// NextValidCheckout returns the earliest permitted check-out for the given
// check-in. UI layers use it to auto-correct a checkout field instead of
// rejecting the input.
func NextValidCheckout(checkIn time.Time) time.Time {
	return Normalize(checkIn).AddDate(0, 0, 1)
}

// ValidateDateRange enforces the booking date rules in order: check-in must
// be strictly after today, then check-out must leave at least one night.
// The first violated rule is returned.
func ValidateDateRange(checkIn, checkOut, today time.Time) error {
	checkIn = Normalize(checkIn)
	checkOut = Normalize(checkOut)
	today = Normalize(today)

	if !checkIn.After(today) {
		return ErrCheckInNotInFuture
	}

	if !checkOut.After(checkIn) {
		return ErrCheckOutBeforeOrEqualCheckIn
	}

	return nil
}
