package reservation

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/clubcorinto/resort/internal/logger"
	"github.com/clubcorinto/resort/internal/pricing"
)

type idGenerator interface {
	GetID(ctx context.Context) (int, error)
}

type storageReader interface {
	GetAvailabilities(ctx context.Context, stays []GetAvailabilityInput) ([]*NightAvailability, error)
	GetReservationByIdempotencyKey(ctx context.Context) (*Reservation, error)
}

type storageWriter interface {
	BeginTransaction(ctx context.Context, level string) (context.Context, error)
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
	SaveNightAvailabilities(ctx context.Context, availabilities []*NightAvailability) error
	SaveEvent(ctx context.Context, event *Event) error
	SaveReservation(ctx context.Context, reservation *Reservation) error
}

type storage interface {
	storageReader
	storageWriter
}

type rateSource interface {
	Schedule(accommodationID string) (pricing.RateSchedule, error)
}

type Manager struct {
	l           *logger.Logger
	storage     storage
	idGenerator idGenerator
	rates       rateSource
	holidays    pricing.HolidaySet
	now         func() time.Time
}

func New(l *logger.Logger, storage storage, idGenerator idGenerator, rates rateSource, holidays pricing.HolidaySet) *Manager {
	return &Manager{
		l:           l,
		storage:     storage,
		idGenerator: idGenerator,
		rates:       rates,
		holidays:    holidays,
		now:         time.Now,
	}
}

func dateRangeErrors(inputErr *InputError, checkInField, checkOutField string, err error) {
	switch {
	case errors.Is(err, pricing.ErrCheckInNotInFuture):
		inputErr.addError(checkInField, "check-in must be after today")
	case errors.Is(err, pricing.ErrCheckOutBeforeOrEqualCheckIn):
		inputErr.addError(checkOutField, "check-out must be at least one night after check-in")
	}
}

func (in *CreateInput) validate(today time.Time) error {
	inputErr := newInputError()

	if _, err := mail.ParseAddress(in.Guest.Email); err != nil {
		inputErr.addError("guest.email", "provide valid email")
	}

	if in.Stay.AccommodationID == "" {
		inputErr.addError("stay.accommodation_id", "provide stay.accommodation_id")
	}

	if err := pricing.ValidateDateRange(in.Stay.CheckIn, in.Stay.CheckOut, today); err != nil {
		dateRangeErrors(inputErr, "stay.check_in", "stay.check_out", err)
	}

	if inputErr.fieldsCount() > 0 {
		return inputErr
	}

	return nil
}

func (in *CreateInput) prepareDates() {
	in.Stay.CheckIn = pricing.Normalize(in.Stay.CheckIn)
	in.Stay.CheckOut = pricing.Normalize(in.Stay.CheckOut)
}

// Quote prices a stay without touching availability or storage. It is the
// read path behind the detail and confirmation pages.
func (m *Manager) Quote(input QuoteInput) (*Quote, error) {
	inputErr := newInputError()

	if input.AccommodationID == "" {
		inputErr.addError("accommodation_id", "provide accommodation_id")
	}

	if err := pricing.ValidateDateRange(input.CheckIn, input.CheckOut, m.now()); err != nil {
		dateRangeErrors(inputErr, "check_in", "check_out", err)
	}

	if inputErr.fieldsCount() > 0 {
		return nil, inputErr
	}

	rates, err := m.rates.Schedule(input.AccommodationID)
	if err != nil {
		inputErr.addError("accommodation_id", "unknown accommodation")

		return nil, inputErr
	}

	breakdown, err := pricing.PriceStay(input.CheckIn, input.CheckOut, rates, m.holidays)
	if err != nil {
		return nil, fmt.Errorf("price stay: %w", err)
	}

	return &Quote{
		AccommodationID: input.AccommodationID,
		CheckIn:         pricing.Normalize(input.CheckIn),
		CheckOut:        pricing.Normalize(input.CheckOut),
		Breakdown:       breakdown,
		Discount:        0,
		Total:           breakdown.TotalPrice,
	}, nil
}

func (m *Manager) getNightAvailabilities(ctx context.Context, stay Stay) ([]*NightAvailability, error) {
	req := []GetAvailabilityInput{{
		AccommodationID: stay.AccommodationID,
		From:            stay.CheckIn,
		To:              stay.CheckOut,
	}}

	availabilities, err := m.storage.GetAvailabilities(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("get availabilities from storage: %w", err)
	}

	return availabilities, nil
}

func (m *Manager) claimNights(stay Stay, availabilities []*NightAvailability) ([]*NightAvailability, error) {
	availabilityMap := make(map[string]*NightAvailability)

	for _, availability := range availabilities {
		key := fmt.Sprintf("%s_%s", availability.AccommodationID, availability.Date.Format(time.DateOnly))
		availabilityMap[key] = availability
	}

	var claimed []*NightAvailability

	for night := stay.CheckIn; night.Before(stay.CheckOut); night = night.AddDate(0, 0, 1) {
		key := fmt.Sprintf("%s_%s", stay.AccommodationID, night.Format(time.DateOnly))

		availability, ok := availabilityMap[key]
		if !ok {
			return nil, fmt.Errorf(
				"data are not the same. Check storage. Stay %+v | NightAvailabilities %+v: %w",
				stay,
				availabilities,
				ErrLogic,
			)
		}

		availability.Quota--
		claimed = append(claimed, availability)
	}

	return claimed, nil
}

func (m *Manager) buildReservation(ctx context.Context, input *CreateInput, quote *Quote) (*Reservation, *Event, error) {
	id, err := m.idGenerator.GetID(ctx)
	if err != nil {
		return nil, nil, ErrNextID
	}

	reservation := &Reservation{
		ID:        id,
		Reference: uuid.NewString(),
		Guest:     input.Guest,
		Stay:      input.Stay,
		Quote:     *quote,
		CreatedAt: m.now().UTC(),
	}

	event, err := m.buildEvent(ctx, reservation.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("build event for reservation %v: %w", reservation.ID, err)
	}

	return reservation, event, nil
}

func (m *Manager) buildEvent(ctx context.Context, reservationID int) (*Event, error) {
	id, err := m.idGenerator.GetID(ctx)
	if err != nil {
		return nil, ErrNextID
	}

	return &Event{
		ID:            id,
		ReservationID: reservationID,
		CreatedAt:     m.now().UTC(),
	}, nil
}

//nolint:funlen,cyclop // it's linear simple code
func (m *Manager) Create(ctx context.Context, input *CreateInput) (_ *Reservation, err error) {
	if err := input.validate(m.now()); err != nil {
		return nil, err
	}

	existing, err := m.storage.GetReservationByIdempotencyKey(ctx)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return nil, fmt.Errorf("get reservation by idempotency key: %w", err)
	}

	if err == nil {
		return existing, nil
	}

	input.prepareDates()

	quote, err := m.Quote(QuoteInput{
		AccommodationID: input.Stay.AccommodationID,
		CheckIn:         input.Stay.CheckIn,
		CheckOut:        input.Stay.CheckOut,
	})
	if err != nil {
		return nil, err
	}

	availabilities, err := m.getNightAvailabilities(ctx, input.Stay)
	if err != nil {
		return nil, err
	}

	availabilities, err = m.claimNights(input.Stay, availabilities)
	if err != nil {
		return nil, fmt.Errorf("claim nights: %w", err)
	}

	for _, strategy := range input.Strategies {
		if err := strategy.Apply(quote); err != nil {
			return nil, fmt.Errorf("apply strategy to quote: %w", err)
		}
	}

	reservation, event, err := m.buildReservation(ctx, input, quote)
	if err != nil {
		return nil, fmt.Errorf("build reservation: %w", err)
	}

	ctx, err = m.storage.BeginTransaction(ctx, "READ COMMITTED")
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if err = m.storage.RollbackTransaction(ctx); err != nil {
				m.l.LogErrorf("Could not rollback reservation transaction after panic %v", p)
			}

			m.l.LogInfo("Transaction has been roll backed after panic")

			panic(p)
		}

		if err != nil {
			if err = m.storage.RollbackTransaction(ctx); err != nil {
				m.l.LogErrorf("Could not rollback reservation transaction after error %v", err.Error())
			}

			m.l.LogInfo("Transaction has been roll backed after error")

			return
		}

		if err = m.storage.CommitTransaction(ctx); err != nil {
			m.l.LogErrorf("Could not commit reservation transaction, err %v", err.Error())
		}

		m.l.LogInfo("Transaction has been committed")
	}()

	if err = m.storage.SaveReservation(ctx, reservation); err != nil {
		return nil, fmt.Errorf("save reservation to storage: %w", err)
	}

	if err = m.storage.SaveNightAvailabilities(ctx, availabilities); err != nil {
		return nil, fmt.Errorf("save night availabilities to storage: %w", err)
	}

	if err = m.storage.SaveEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("save event to storage: %w", err)
	}

	return reservation, nil
}
