package reservation

import (
	"time"

	"github.com/clubcorinto/resort/internal/pricing"
)

// NightAvailability is the per-night quota of one accommodation: how many
// more reservations may start a night on that date.
type NightAvailability struct {
	AccommodationID string    `json:"accommodation_id"`
	Date            time.Time `json:"date"`
	Quota           int       `json:"quota"`
}

// GetAvailabilityInput asks for the nights of one stay, from From
// (inclusive) to To (exclusive).
type GetAvailabilityInput struct {
	AccommodationID string
	From            time.Time
	To              time.Time
}

type Guest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type Stay struct {
	AccommodationID string    `json:"accommodation_id"`
	CheckIn         time.Time `json:"check_in"`
	CheckOut        time.Time `json:"check_out"`
}

// QuoteInput is a pricing request for one stay.
type QuoteInput struct {
	AccommodationID string
	CheckIn         time.Time
	CheckOut        time.Time
}

// Quote is the itemized price of a stay: the engine's breakdown plus any
// promotional discount already applied to the payable total.
type Quote struct {
	AccommodationID string             `json:"accommodation_id"`
	CheckIn         time.Time          `json:"check_in"`
	CheckOut        time.Time          `json:"check_out"`
	Breakdown       *pricing.Breakdown `json:"breakdown"`
	Discount        pricing.Cents      `json:"discount"`
	Total           pricing.Cents      `json:"total"`
}

// Strategy adjusts a quote before it is committed, e.g. a promo code or a
// long-stay discount.
type Strategy interface {
	Apply(q *Quote) error
}

type CreateInput struct {
	Guest Guest `json:"guest"`
	Stay  Stay  `json:"stay"`

	Strategies []Strategy `json:"-"`
}

type Reservation struct {
	ID        int       `json:"id"`
	Reference string    `json:"reference"`
	Guest     Guest     `json:"guest"`
	Stay      Stay      `json:"stay"`
	Quote     Quote     `json:"quote"`
	CreatedAt time.Time `json:"created_at"`
}

type Event struct {
	ID            int
	ReservationID int
	CreatedAt     time.Time
}
