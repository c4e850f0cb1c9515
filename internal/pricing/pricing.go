package pricing

import (
	"fmt"
	"time"
)

// Tier classifies a night into the rate bucket that prices it.
type Tier int

const (
	TierWeekday Tier = iota
	TierWeekend
	TierHoliday
)

func (t Tier) String() string {
	switch t {
	case TierWeekend:
		return "weekend"
	case TierHoliday:
		return "holiday"
	default:
		return "weekday"
	}
}

// RateSchedule holds the three nightly prices of one accommodation. A
// schedule always defines all three tiers.
type RateSchedule struct {
	WeekdayNightly Cents `json:"weekday_nightly"`
	WeekendNightly Cents `json:"weekend_nightly"`
	HolidayNightly Cents `json:"holiday_nightly"`
}

func (r RateSchedule) Validate() error {
	if r.WeekdayNightly < 0 {
		return fmt.Errorf("weekday nightly %d: %w", r.WeekdayNightly, ErrNegativeRate)
	}

	if r.WeekendNightly < 0 {
		return fmt.Errorf("weekend nightly %d: %w", r.WeekendNightly, ErrNegativeRate)
	}

	if r.HolidayNightly < 0 {
		return fmt.Errorf("holiday nightly %d: %w", r.HolidayNightly, ErrNegativeRate)
	}

	return nil
}

// ForTier returns the nightly price of the given tier.
func (r RateSchedule) ForTier(t Tier) Cents {
	switch t {
	case TierWeekend:
		return r.WeekendNightly
	case TierHoliday:
		return r.HolidayNightly
	default:
		return r.WeekdayNightly
	}
}

// HolidaySet designates the asueto dates that override weekday/weekend
// classification. A nil set means no holidays.
type HolidaySet map[time.Time]struct{}

func NewHolidaySet(dates ...time.Time) HolidaySet {
	s := make(HolidaySet, len(dates))
	for _, d := range dates {
		s.Add(d)
	}

	return s
}

func (h HolidaySet) Add(date time.Time) {
	h[Normalize(date)] = struct{}{}
}

func (h HolidaySet) Contains(date time.Time) bool {
	if h == nil {
		return false
	}

	_, ok := h[Normalize(date)]

	return ok
}

// ClassifyNight assigns a night to its rate tier. Holiday membership wins
// over day-of-week; otherwise nights starting Friday or Saturday are weekend
// nights and everything else is a weekday night.
func ClassifyNight(night time.Time, holidays HolidaySet) Tier {
	night = Normalize(night)

	if holidays.Contains(night) {
		return TierHoliday
	}

	switch night.Weekday() {
	case time.Friday, time.Saturday:
		return TierWeekend
	default:
		return TierWeekday
	}
}

// Breakdown is the priced result of a stay: per-tier night counts and
// subtotals plus the grand total. TotalNights always equals the sum of the
// three counts, and TotalPrice the sum of the three subtotals.
type Breakdown struct {
	WeekdayNights int `json:"weekday_nights"`
	WeekendNights int `json:"weekend_nights"`
	HolidayNights int `json:"holiday_nights"`
	TotalNights   int `json:"total_nights"`

	WeekdaySubtotal Cents `json:"weekday_subtotal"`
	WeekendSubtotal Cents `json:"weekend_subtotal"`
	HolidaySubtotal Cents `json:"holiday_subtotal"`
	TotalPrice      Cents `json:"total_price"`
}

// PriceStay walks every night from checkIn (inclusive) to checkOut
// (exclusive), classifies it and accumulates the matching counter and
// subtotal. It fails with ErrInvalidRange on a non-positive-length range
// rather than returning a zero breakdown, so upstream validation bugs are
// not masked.
func PriceStay(checkIn, checkOut time.Time, rates RateSchedule, holidays HolidaySet) (*Breakdown, error) {
	checkIn = Normalize(checkIn)
	checkOut = Normalize(checkOut)

	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf(
			"check-out %s is not after check-in %s: %w",
			checkOut.Format(time.DateOnly),
			checkIn.Format(time.DateOnly),
			ErrInvalidRange,
		)
	}

	var b Breakdown

	for night := checkIn; night.Before(checkOut); night = night.AddDate(0, 0, 1) {
		switch ClassifyNight(night, holidays) {
		case TierHoliday:
			b.HolidayNights++
			b.HolidaySubtotal += rates.HolidayNightly
		case TierWeekend:
			b.WeekendNights++
			b.WeekendSubtotal += rates.WeekendNightly
		default:
			b.WeekdayNights++
			b.WeekdaySubtotal += rates.WeekdayNightly
		}

		b.TotalNights++
	}

	b.TotalPrice = b.WeekdaySubtotal + b.WeekendSubtotal + b.HolidaySubtotal

	return &b, nil
}
