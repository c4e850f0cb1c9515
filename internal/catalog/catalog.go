package catalog

import (
	"errors"
	"fmt"

	"github.com/clubcorinto/resort/internal/pricing"
)

var (
	ErrUnknownAccommodation = errors.New("unknown accommodation")
	ErrDuplicateID          = errors.New("duplicate accommodation id")
)

type Kind string

const (
	KindApartment Kind = "apartment"
	KindHouse     Kind = "house"
	KindSuite     Kind = "suite"
)

// Accommodation is one bookable unit of a property, together with its
// static rate schedule.
type Accommodation struct {
	ID       string               `json:"id"`
	Property string               `json:"property"`
	Name     string               `json:"name"`
	Kind     Kind                 `json:"kind"`
	Sleeps   int                  `json:"sleeps"`
	Rates    pricing.RateSchedule `json:"rates"`
}

// Catalog is the lookup from accommodation id to its unit and rate
// schedule. It is built once at startup and read-only afterwards.
type Catalog struct {
	byID  map[string]Accommodation
	order []string
}

func New(accommodations ...Accommodation) (*Catalog, error) {
	c := &Catalog{
		byID:  make(map[string]Accommodation, len(accommodations)),
		order: make([]string, 0, len(accommodations)),
	}

	for _, a := range accommodations {
		if a.ID == "" {
			return nil, fmt.Errorf("accommodation %q: empty id: %w", a.Name, ErrUnknownAccommodation)
		}

		if _, exists := c.byID[a.ID]; exists {
			return nil, fmt.Errorf("accommodation %q: %w", a.ID, ErrDuplicateID)
		}

		if err := a.Rates.Validate(); err != nil {
			return nil, fmt.Errorf("accommodation %q rates: %w", a.ID, err)
		}

		c.byID[a.ID] = a
		c.order = append(c.order, a.ID)
	}

	return c, nil
}

func (c *Catalog) Lookup(id string) (Accommodation, error) {
	a, ok := c.byID[id]
	if !ok {
		return Accommodation{}, fmt.Errorf("accommodation %q: %w", id, ErrUnknownAccommodation)
	}

	return a, nil
}

// Schedule returns the rate schedule for an accommodation id. It is the
// rate source the reservation manager prices against.
func (c *Catalog) Schedule(id string) (pricing.RateSchedule, error) {
	a, err := c.Lookup(id)
	if err != nil {
		return pricing.RateSchedule{}, err
	}

	return a.Rates, nil
}

// All returns the accommodations in registration order.
func (c *Catalog) All() []Accommodation {
	out := make([]Accommodation, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}

	return out
}

func rates(weekday, weekend, holiday pricing.Cents) pricing.RateSchedule {
	return pricing.RateSchedule{
		WeekdayNightly: weekday,
		WeekendNightly: weekend,
		HolidayNightly: holiday,
	}
}

// Default returns the registry of the two properties as they are sold
// today: the Corinto houses and the Mirasol apartments and suites.
func Default() (*Catalog, error) {
	return New(
		Accommodation{ID: "1A", Property: "mirasol", Name: "Apartamento 1A", Kind: KindApartment, Sleeps: 4, Rates: rates(110_00, 230_00, 280_00)},
		Accommodation{ID: "1B", Property: "mirasol", Name: "Apartamento 1B", Kind: KindApartment, Sleeps: 4, Rates: rates(110_00, 230_00, 280_00)},
		Accommodation{ID: "2A", Property: "mirasol", Name: "Apartamento 2A", Kind: KindApartment, Sleeps: 6, Rates: rates(125_00, 250_00, 300_00)},
		Accommodation{ID: "suite1", Property: "mirasol", Name: "Suite 1", Kind: KindSuite, Sleeps: 2, Rates: rates(150_00, 280_00, 330_00)},
		Accommodation{ID: "suite2", Property: "mirasol", Name: "Suite 2", Kind: KindSuite, Sleeps: 2, Rates: rates(150_00, 280_00, 330_00)},
		Accommodation{ID: "corinto-casa-1", Property: "corinto", Name: "Casa 1", Kind: KindHouse, Sleeps: 8, Rates: rates(180_00, 320_00, 380_00)},
		Accommodation{ID: "corinto-casa-2", Property: "corinto", Name: "Casa 2", Kind: KindHouse, Sleeps: 8, Rates: rates(180_00, 320_00, 380_00)},
		Accommodation{ID: "corinto-casa-3", Property: "corinto", Name: "Casa 3", Kind: KindHouse, Sleeps: 10, Rates: rates(200_00, 350_00, 420_00)},
	)
}
