package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/clubcorinto/resort/internal/logger"
	"github.com/clubcorinto/resort/internal/promo"
	"github.com/clubcorinto/resort/internal/reservation"
)

type Config struct {
	L *logger.Logger
}

type transaction struct {
	id                        string
	availabilityModifications map[string]*reservation.NightAvailability
	reservationModifications  map[int]*reservation.Reservation
	eventModifications        map[int]*reservation.Event
	promoModifications        []*promo.PromoCode
	rollbackActions           []func()
}

type DB struct {
	mu                         sync.Mutex
	l                          *logger.Logger
	nightAvailabilities        map[string]*reservation.NightAvailability
	events                     map[int]*reservation.Event
	reservations               map[int]*reservation.Reservation
	promoCodes                 []*promo.PromoCode
	transactions               map[string]*transaction
	nextTrxID                  int64
	reservationIdempotencyKeys map[string]*reservation.Reservation
}

func New(conf Config) *DB {
	//nolint:exhaustruct
	return &DB{
		l:                          conf.L,
		nightAvailabilities:        make(map[string]*reservation.NightAvailability),
		events:                     make(map[int]*reservation.Event),
		reservations:               make(map[int]*reservation.Reservation),
		transactions:               make(map[string]*transaction),
		reservationIdempotencyKeys: make(map[string]*reservation.Reservation),
	}
}

func availabilityKey(accommodationID string, date time.Time) string {
	return fmt.Sprintf("%s_%s", accommodationID, date.Format(time.DateOnly))
}

func (db *DB) BeginTransaction(ctx context.Context, _ string) (context.Context, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID := fmt.Sprintf("trx-%d", db.nextTrxID)
	db.nextTrxID++

	db.transactions[trxID] = &transaction{
		id:                        trxID,
		availabilityModifications: make(map[string]*reservation.NightAvailability),
		reservationModifications:  make(map[int]*reservation.Reservation),
		eventModifications:        make(map[int]*reservation.Event),
		promoModifications:        nil,
		rollbackActions:           []func(){},
	}

	return withTransactionID(ctx, trxID), nil
}

func (db *DB) CommitTransaction(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID, ok := transactionIDFromContext(ctx)
	if !ok || trxID == "" {
		return ErrTransactionIDNotFoundInCtx
	}

	trx, exists := db.transactions[trxID]
	if !exists {
		return fmt.Errorf("transaction %s not found: %w", trxID, ErrTransactionNotFound)
	}

	idempotencyKey, ok := reservation.IdempotencyKeyFromContext(ctx)
	if !ok || idempotencyKey == "" {
		return reservation.ErrIdempotencyKey
	}

	for key, availability := range trx.availabilityModifications {
		db.nightAvailabilities[key] = availability
	}

	for _, res := range trx.reservationModifications {
		db.reservations[res.ID] = res
		db.reservationIdempotencyKeys[idempotencyKey] = res
	}

	for _, event := range trx.eventModifications {
		db.events[event.ID] = event
	}

	db.promoCodes = append(db.promoCodes, trx.promoModifications...)

	delete(db.transactions, trxID)

	return nil
}

func (db *DB) RollbackTransaction(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID, ok := transactionIDFromContext(ctx)
	if !ok || trxID == "" {
		return ErrTransactionIDNotFoundInCtx
	}

	trx, exists := db.transactions[trxID]
	if !exists {
		return fmt.Errorf("transaction %s not found: %w", trxID, ErrTransactionNotFound)
	}

	for _, action := range trx.rollbackActions {
		action()
	}

	delete(db.transactions, trxID)

	return nil
}

func (db *DB) SaveNightAvailabilities(ctx context.Context, availabilities []*reservation.NightAvailability) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID, ok := transactionIDFromContext(ctx)
	if !ok || trxID == "" {
		return ErrTransactionIDNotFoundInCtx
	}

	trx, exists := db.transactions[trxID]
	if !exists {
		return fmt.Errorf("transaction %s not found: %w", trxID, ErrTransactionNotFound)
	}

	for _, availability := range availabilities {
		key := availabilityKey(availability.AccommodationID, availability.Date)
		if _, ok := trx.availabilityModifications[key]; ok {
			continue
		}

		trx.availabilityModifications[key] = availability

		originalAvailability, exists := db.nightAvailabilities[key]
		if exists {
			trx.rollbackActions = append(trx.rollbackActions, func() {
				db.nightAvailabilities[key] = originalAvailability
			})

			continue
		}

		trx.rollbackActions = append(trx.rollbackActions, func() {
			delete(db.nightAvailabilities, key)
		})
	}

	return nil
}

func (db *DB) SaveReservation(ctx context.Context, res *reservation.Reservation) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID, ok := transactionIDFromContext(ctx)
	if !ok || trxID == "" {
		return ErrTransactionIDNotFoundInCtx
	}

	trx, exists := db.transactions[trxID]
	if !exists {
		return fmt.Errorf("transaction %s not found: %w", trxID, ErrTransactionNotFound)
	}

	if _, ok = trx.reservationModifications[res.ID]; ok {
		return nil
	}

	trx.reservationModifications[res.ID] = res
	trx.rollbackActions = append(trx.rollbackActions, func() {
		delete(db.reservations, res.ID)
	})

	return nil
}

func (db *DB) SaveEvent(ctx context.Context, event *reservation.Event) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID, ok := transactionIDFromContext(ctx)
	if !ok || trxID == "" {
		return ErrTransactionIDNotFoundInCtx
	}

	trx, exists := db.transactions[trxID]
	if !exists {
		return fmt.Errorf("transaction %s not found: %w", trxID, ErrTransactionNotFound)
	}

	if _, ok = trx.eventModifications[event.ID]; ok {
		return nil
	}

	trx.eventModifications[event.ID] = event
	trx.rollbackActions = append(trx.rollbackActions, func() {
		delete(db.events, event.ID)
	})

	return nil
}

func (db *DB) SavePromoCodes(ctx context.Context, codes []*promo.PromoCode) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID, ok := transactionIDFromContext(ctx)
	if !ok || trxID == "" {
		return ErrTransactionIDNotFoundInCtx
	}

	trx, exists := db.transactions[trxID]
	if !exists {
		return fmt.Errorf("transaction %s not found: %w", trxID, ErrTransactionNotFound)
	}

	trx.promoModifications = append(trx.promoModifications, codes...)

	return nil
}

// GetAvailabilities returns one copy per requested night of [From, To).
// Nights without a record or with an exhausted quota are collected into an
// AvailabilityError covering the whole request.
func (db *DB) GetAvailabilities(_ context.Context, stays []reservation.GetAvailabilityInput) ([]*reservation.NightAvailability, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var unavailableNights []time.Time

	availabilityErr := reservation.NewAvailabilityError()

	var result []*reservation.NightAvailability

	for _, stay := range stays {
		for d := stay.From; d.Before(stay.To); d = d.AddDate(0, 0, 1) {
			key := availabilityKey(stay.AccommodationID, d)

			nightAvailability, ok := db.nightAvailabilities[key]
			if !ok || nightAvailability.Quota < 1 {
				unavailableNights = append(unavailableNights, d)

				continue
			}

			cp := *nightAvailability
			result = append(result, &cp)
		}

		if len(unavailableNights) > 0 {
			availabilityErr.AddUnavailableNights(stay.AccommodationID, unavailableNights)
			unavailableNights = nil
		}
	}

	if availabilityErr.UnavailableNightsCount() > 0 {
		return nil, availabilityErr
	}

	return result, nil
}

func (db *DB) GetReservationByIdempotencyKey(ctx context.Context) (*reservation.Reservation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	key, ok := reservation.IdempotencyKeyFromContext(ctx)
	if !ok || key == "" {
		return nil, reservation.ErrIdempotencyKey
	}

	res, exists := db.reservationIdempotencyKeys[key]
	if exists {
		return res, nil
	}

	return nil, reservation.ErrRecordNotFound
}

func (db *DB) GetActivePromoCodes(_ context.Context, from time.Time) ([]*promo.PromoCode, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var active []*promo.PromoCode

	for _, code := range db.promoCodes {
		if code.ValidThrough.After(from) {
			active = append(active, code)
		}
	}

	return active, nil
}
