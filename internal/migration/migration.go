package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/clubcorinto/resort/internal/catalog"
	"github.com/clubcorinto/resort/internal/logger"
	"github.com/clubcorinto/resort/internal/pricing"
	"github.com/clubcorinto/resort/internal/promo"
	"github.com/clubcorinto/resort/internal/reservation"
)

type storage interface {
	BeginTransaction(ctx context.Context, level string) (context.Context, error)
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
	SaveNightAvailabilities(ctx context.Context, availabilities []*reservation.NightAvailability) error
	SavePromoCodes(ctx context.Context, codes []*promo.PromoCode) error
}

// Up seeds one bookable unit per accommodation per night over the window
// [from, from+days), plus the promo codes currently running. Everything
// goes through one storage transaction.
func Up(ctx context.Context, l *logger.Logger, storage storage, accommodations []catalog.Accommodation, from time.Time, days int) (err error) {
	from = pricing.Normalize(from)

	availabilities := make([]*reservation.NightAvailability, 0, len(accommodations)*days)

	for _, a := range accommodations {
		for i := 0; i < days; i++ {
			availabilities = append(availabilities, &reservation.NightAvailability{
				AccommodationID: a.ID,
				Date:            from.AddDate(0, 0, i),
				Quota:           1,
			})
		}
	}

	promoCodes := []*promo.PromoCode{
		{
			Code:            "socio10",
			DiscountPercent: 10,
			ValidThrough:    from.AddDate(0, 0, days),
		},
	}

	ctx, err = storage.BeginTransaction(ctx, "")
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	ctx = reservation.NewContextWithIdempotencyKey(ctx, "migration")

	defer func() {
		if p := recover(); p != nil {
			if err = storage.RollbackTransaction(ctx); err != nil {
				l.LogErrorf("Could not rollback migration transaction after panic %v", p)
			}

			l.LogInfo("Migration transaction has been roll backed after panic")

			panic(p)
		}

		if err != nil {
			if err = storage.RollbackTransaction(ctx); err != nil {
				l.LogErrorf("Could not rollback migration transaction after error %v", err.Error())
			}

			l.LogInfo("Migration transaction has been roll backed after error")

			return
		}

		if err = storage.CommitTransaction(ctx); err != nil {
			l.LogErrorf("Could not commit migration transaction, err %v", err.Error())
		}

		l.LogInfo("Migration transaction has been committed")
	}()

	if err = storage.SaveNightAvailabilities(ctx, availabilities); err != nil {
		return fmt.Errorf("save night availabilities to storage: %w", err)
	}

	if err = storage.SavePromoCodes(ctx, promoCodes); err != nil {
		return fmt.Errorf("save promo codes to storage: %w", err)
	}

	return nil
}
