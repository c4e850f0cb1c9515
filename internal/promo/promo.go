package promo

import (
	"context"
	"fmt"
	"time"

	"github.com/clubcorinto/resort/internal/pricing"
	"github.com/clubcorinto/resort/internal/reservation"
)

type storage interface {
	GetActivePromoCodes(ctx context.Context, from time.Time) ([]*PromoCode, error)
}

type Manager struct {
	storage storage
}

func New(storage storage) *Manager {
	return &Manager{storage: storage}
}

// PromoCode takes a percentage off the payable total until it expires.
type PromoCode struct {
	Code            string
	DiscountPercent int
	ValidThrough    time.Time
}

func (p *PromoCode) Apply(quote *reservation.Quote) error {
	if time.Now().UTC().After(p.ValidThrough) {
		return fmt.Errorf("promo code %s expired: %w", p.Code, ErrPromoCodeExpired)
	}

	discount := quote.Total * pricing.Cents(p.DiscountPercent) / 100 //nolint:gomnd

	applyDiscount(quote, discount)

	return nil
}

// LongStay takes a flat amount off stays of at least MinNights nights.
type LongStay struct {
	MinNights int
	AmountOff pricing.Cents
}

func (l *LongStay) Apply(quote *reservation.Quote) error {
	if quote.Breakdown == nil || quote.Breakdown.TotalNights < l.MinNights {
		return nil
	}

	applyDiscount(quote, l.AmountOff)

	return nil
}

// applyDiscount never drives the payable total below zero.
func applyDiscount(quote *reservation.Quote, discount pricing.Cents) {
	if discount > quote.Total {
		discount = quote.Total
	}

	quote.Discount += discount
	quote.Total -= discount
}

func (m *Manager) Strategies(ctx context.Context) ([]reservation.Strategy, error) {
	now := time.Now().UTC()

	codes, err := m.storage.GetActivePromoCodes(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("get active promo codes from storage starting from %v: %w", now, err)
	}

	strategies := make([]reservation.Strategy, 0, len(codes)+1)

	for _, code := range codes {
		strategies = append(strategies, code)
	}

	strategies = append(strategies, &LongStay{
		MinNights: 7,     //nolint:gomnd
		AmountOff: 75_00, //nolint:gomnd
	})

	return strategies, nil
}
