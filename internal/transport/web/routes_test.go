package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clubcorinto/resort/internal/catalog"
	"github.com/clubcorinto/resort/internal/idgen/simple"
	"github.com/clubcorinto/resort/internal/logger"
	"github.com/clubcorinto/resort/internal/migration"
	"github.com/clubcorinto/resort/internal/pricing"
	"github.com/clubcorinto/resort/internal/reservation"
	"github.com/clubcorinto/resort/internal/storage/memory"
)

const seedDays = 30

func newTestServer(t *testing.T) (*Server, pricing.HolidaySet) {
	t.Helper()

	l := logger.NewNop()

	cat, err := catalog.Default()
	require.NoError(t, err)

	storage := memory.New(memory.Config{L: l})

	now := time.Now().UTC()
	seedFrom := pricing.MinimumBookableDate(now)

	require.NoError(t, migration.Up(context.Background(), l, storage, cat.All(), seedFrom, seedDays))

	holidays := catalog.Holidays(now.Year(), now.Year()+1)
	manager := reservation.New(l, storage, simple.New(), cat, holidays)

	conf := Conf{
		L:                 l,
		ServerLogger:      log.Default(),
		Host:              "localhost",
		Port:              "0",
		ReadHeaderTimeout: 20 * time.Second,
		LivenessEndpoint:  "/liveness",
	}

	srv, err := New(context.Background(), conf, manager, cat, nil)
	require.NoError(t, err)

	return srv, holidays
}

func doRequest(srv *Server, method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	srv.Srv().Handler.ServeHTTP(rec, req)

	return rec
}

func stayBody(t *testing.T, accommodationID string, checkIn, checkOut time.Time) []byte {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"accommodation_id": accommodationID,
		"check_in":         checkIn.Format(time.DateOnly),
		"check_out":        checkOut.Format(time.DateOnly),
	})
	require.NoError(t, err)

	return body
}

func TestLiveness(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/liveness", nil, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListAccommodations(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/accommodations/v1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []accommodationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&items))
	require.Len(t, items, 8)

	require.Equal(t, "1A", items[0].ID)
	require.Equal(t, "$110.00", items[0].Rates.WeekdayFormatted)
}

func TestQuoteEndpoint(t *testing.T) {
	t.Parallel()

	srv, holidays := newTestServer(t)

	// One day past the minimum keeps the request valid even if the UTC day
	// rolls over mid-test.
	checkIn := pricing.MinimumBookableDate(time.Now().UTC()).AddDate(0, 0, 1)
	checkOut := checkIn.AddDate(0, 0, 3)

	rec := doRequest(srv, http.MethodPost, "/api/quotes/v1", stayBody(t, "suite1", checkIn, checkOut), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got quoteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

	rates := pricing.RateSchedule{WeekdayNightly: 150_00, WeekendNightly: 280_00, HolidayNightly: 330_00}
	want, err := pricing.PriceStay(checkIn, checkOut, rates, holidays)
	require.NoError(t, err)

	require.Equal(t, 3, got.Breakdown.TotalNights)
	require.Equal(t, want.TotalPrice, got.Total)
	require.Equal(t, pricing.FormatMoney(want.TotalPrice), got.TotalFormatted)
	require.Equal(t, pricing.FormatDateLocalized(checkIn), got.CheckInLocalized)
	require.Len(t, got.Lines, 3)
}

func TestQuoteEndpointValidation(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	body, err := json.Marshal(map[string]any{
		"accommodation_id": "suite1",
		"check_in":         "15/01/2024",
		"check_out":        "17/01/2024",
	})
	require.NoError(t, err)

	rec := doRequest(srv, http.MethodPost, "/api/quotes/v1", body, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var fields map[string][]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fields))
	require.Contains(t, fields, "check_in")
	require.Contains(t, fields, "check_out")
}

func TestQuoteEndpointPastCheckIn(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	checkIn := pricing.Normalize(time.Now().UTC()).AddDate(0, 0, -7)

	rec := doRequest(srv, http.MethodPost, "/api/quotes/v1", stayBody(t, "suite1", checkIn, checkIn.AddDate(0, 0, 2)), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var fields map[string][]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fields))
	require.Contains(t, fields, "check_in")
}

func reservationBody(t *testing.T, accommodationID string, checkIn, checkOut time.Time) []byte {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"guest": map[string]string{
			"email":     "socia@example.com",
			"full_name": "Marta Rivas",
		},
		"accommodation_id": accommodationID,
		"check_in":         checkIn.Format(time.DateOnly),
		"check_out":        checkOut.Format(time.DateOnly),
	})
	require.NoError(t, err)

	return body
}

func TestCreateReservationRequiresIdempotencyKey(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	checkIn := pricing.MinimumBookableDate(time.Now().UTC()).AddDate(0, 0, 1)

	rec := doRequest(srv, http.MethodPost, "/api/reservations/v1", reservationBody(t, "1A", checkIn, checkIn.AddDate(0, 0, 2)), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReservationEndpoint(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	checkIn := pricing.MinimumBookableDate(time.Now().UTC()).AddDate(0, 0, 1)
	body := reservationBody(t, "1A", checkIn, checkIn.AddDate(0, 0, 2))
	headers := map[string]string{"Idempotency-Key": "req-1"}

	rec := doRequest(srv, http.MethodPost, "/api/reservations/v1", body, headers)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got reservationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.NotEmpty(t, got.Reference)
	require.Equal(t, 2, got.Quote.Breakdown.TotalNights)

	// Replaying the same key returns the same reservation.
	rec = doRequest(srv, http.MethodPost, "/api/reservations/v1", body, headers)
	require.Equal(t, http.StatusCreated, rec.Code)

	var replay reservationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&replay))
	require.Equal(t, got.Reference, replay.Reference)
	require.Equal(t, got.ID, replay.ID)

	// The same nights cannot be reserved again under a fresh key.
	rec = doRequest(srv, http.MethodPost, "/api/reservations/v1", body, map[string]string{"Idempotency-Key": "req-2"})
	require.Equal(t, http.StatusPreconditionFailed, rec.Code)
}

func TestCreateReservationOutsideSeededWindow(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	checkIn := pricing.MinimumBookableDate(time.Now().UTC()).AddDate(0, 0, seedDays+10)
	body := reservationBody(t, "1A", checkIn, checkIn.AddDate(0, 0, 2))

	rec := doRequest(srv, http.MethodPost, "/api/reservations/v1", body, map[string]string{"Idempotency-Key": fmt.Sprintf("req-%d", seedDays)})
	require.Equal(t, http.StatusPreconditionFailed, rec.Code)
}
