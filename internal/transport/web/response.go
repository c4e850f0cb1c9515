package web

import (
	"time"

	"github.com/clubcorinto/resort/internal/catalog"
	"github.com/clubcorinto/resort/internal/pricing"
	"github.com/clubcorinto/resort/internal/reservation"
)

type quoteLine struct {
	Tier      string        `json:"tier"`
	Nights    int           `json:"nights"`
	Subtotal  pricing.Cents `json:"subtotal"`
	Formatted string        `json:"formatted"`
}

type quoteResponse struct {
	AccommodationID   string             `json:"accommodation_id"`
	CheckIn           string             `json:"check_in"`
	CheckOut          string             `json:"check_out"`
	CheckInLocalized  string             `json:"check_in_localized"`
	CheckOutLocalized string             `json:"check_out_localized"`
	Breakdown         *pricing.Breakdown `json:"breakdown"`
	Lines             []quoteLine        `json:"lines"`
	Discount          pricing.Cents      `json:"discount"`
	DiscountFormatted string             `json:"discount_formatted"`
	Total             pricing.Cents      `json:"total"`
	TotalFormatted    string             `json:"total_formatted"`
}

func newQuoteResponse(q *reservation.Quote) quoteResponse {
	b := q.Breakdown

	return quoteResponse{
		AccommodationID:   q.AccommodationID,
		CheckIn:           q.CheckIn.Format(time.DateOnly),
		CheckOut:          q.CheckOut.Format(time.DateOnly),
		CheckInLocalized:  pricing.FormatDateLocalized(q.CheckIn),
		CheckOutLocalized: pricing.FormatDateLocalized(q.CheckOut),
		Breakdown:         b,
		Lines: []quoteLine{
			{Tier: pricing.TierWeekday.String(), Nights: b.WeekdayNights, Subtotal: b.WeekdaySubtotal, Formatted: pricing.FormatMoney(b.WeekdaySubtotal)},
			{Tier: pricing.TierWeekend.String(), Nights: b.WeekendNights, Subtotal: b.WeekendSubtotal, Formatted: pricing.FormatMoney(b.WeekendSubtotal)},
			{Tier: pricing.TierHoliday.String(), Nights: b.HolidayNights, Subtotal: b.HolidaySubtotal, Formatted: pricing.FormatMoney(b.HolidaySubtotal)},
		},
		Discount:          q.Discount,
		DiscountFormatted: pricing.FormatMoney(q.Discount),
		Total:             q.Total,
		TotalFormatted:    pricing.FormatMoney(q.Total),
	}
}

type reservationResponse struct {
	ID        int               `json:"id"`
	Reference string            `json:"reference"`
	Guest     reservation.Guest `json:"guest"`
	Quote     quoteResponse     `json:"quote"`
	CreatedAt time.Time         `json:"created_at"`
}

func newReservationResponse(res *reservation.Reservation) reservationResponse {
	return reservationResponse{
		ID:        res.ID,
		Reference: res.Reference,
		Guest:     res.Guest,
		Quote:     newQuoteResponse(&res.Quote),
		CreatedAt: res.CreatedAt,
	}
}

type rateResponse struct {
	Weekday          pricing.Cents `json:"weekday"`
	Weekend          pricing.Cents `json:"weekend"`
	Holiday          pricing.Cents `json:"holiday"`
	WeekdayFormatted string        `json:"weekday_formatted"`
	WeekendFormatted string        `json:"weekend_formatted"`
	HolidayFormatted string        `json:"holiday_formatted"`
}

type accommodationResponse struct {
	ID       string       `json:"id"`
	Property string       `json:"property"`
	Name     string       `json:"name"`
	Kind     catalog.Kind `json:"kind"`
	Sleeps   int          `json:"sleeps"`
	Rates    rateResponse `json:"rates"`
}

func newAccommodationResponses(accommodations []catalog.Accommodation) []accommodationResponse {
	out := make([]accommodationResponse, 0, len(accommodations))

	for _, a := range accommodations {
		out = append(out, accommodationResponse{
			ID:       a.ID,
			Property: a.Property,
			Name:     a.Name,
			Kind:     a.Kind,
			Sleeps:   a.Sleeps,
			Rates: rateResponse{
				Weekday:          a.Rates.WeekdayNightly,
				Weekend:          a.Rates.WeekendNightly,
				Holiday:          a.Rates.HolidayNightly,
				WeekdayFormatted: pricing.FormatMoney(a.Rates.WeekdayNightly),
				WeekendFormatted: pricing.FormatMoney(a.Rates.WeekendNightly),
				HolidayFormatted: pricing.FormatMoney(a.Rates.HolidayNightly),
			},
		})
	}

	return out
}
