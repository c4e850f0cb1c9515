package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clubcorinto/resort/internal/reservation"
)

func (s *Server) writeFieldErrors(w http.ResponseWriter, fields map[string][]string) {
	w.WriteHeader(http.StatusBadRequest)

	if err := json.NewEncoder(w).Encode(fields); err != nil {
		s.l.LogErrorf("Could not encode validation err: %v", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// parseStayDates parses the YYYY-MM-DD date fields of a request. On failure
// it writes the field-level 400 itself and reports ok=false.
func (s *Server) parseStayDates(w http.ResponseWriter, checkInRaw, checkOutRaw string) (checkIn, checkOut time.Time, ok bool) {
	fields := make(map[string][]string)

	checkIn, err := time.Parse(time.DateOnly, checkInRaw)
	if err != nil {
		fields["check_in"] = append(fields["check_in"], "provide date as YYYY-MM-DD")
	}

	checkOut, err = time.Parse(time.DateOnly, checkOutRaw)
	if err != nil {
		fields["check_out"] = append(fields["check_out"], "provide date as YYYY-MM-DD")
	}

	if len(fields) > 0 {
		s.writeFieldErrors(w, fields)

		return time.Time{}, time.Time{}, false
	}

	return checkIn, checkOut, true
}

type quoteRequest struct {
	AccommodationID string `json:"accommodation_id"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
}

func (s *Server) quoteHandler(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	checkIn, checkOut, ok := s.parseStayDates(w, req.CheckIn, req.CheckOut)
	if !ok {
		return
	}

	out, err := s.rManager.Quote(reservation.QuoteInput{
		AccommodationID: req.AccommodationID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
	})
	if inputErr := reservation.IsInputError(err); inputErr != nil {
		s.writeFieldErrors(w, inputErr.Fields())

		return
	}

	if err != nil {
		s.l.LogErrorf("Could not quote a stay: %v", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusOK)

	if err = json.NewEncoder(w).Encode(newQuoteResponse(out)); err != nil {
		s.l.LogErrorf("Could not encode quote: %v", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

type createReservationRequest struct {
	Guest           reservation.Guest `json:"guest"`
	AccommodationID string            `json:"accommodation_id"`
	CheckIn         string            `json:"check_in"`
	CheckOut        string            `json:"check_out"`
}

func (s *Server) checkCreateRequest(w http.ResponseWriter, r *http.Request) (*reservation.CreateInput, string) {
	idempotencyKey := r.Header.Get("Idempotency-Key")
	if idempotencyKey == "" {
		http.Error(w, "Idempotency-Key header is missing", http.StatusBadRequest)

		return nil, ""
	}

	var req createReservationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return nil, ""
	}

	checkIn, checkOut, ok := s.parseStayDates(w, req.CheckIn, req.CheckOut)
	if !ok {
		return nil, ""
	}

	input := &reservation.CreateInput{
		Guest: req.Guest,
		Stay: reservation.Stay{
			AccommodationID: req.AccommodationID,
			CheckIn:         checkIn,
			CheckOut:        checkOut,
		},
		Strategies: nil,
	}

	if s.promo != nil {
		strategies, err := s.promo.Strategies(r.Context())
		if err != nil {
			s.l.LogErrorf("Could not get promo strategies: %v", err.Error())
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

			return nil, ""
		}

		input.Strategies = strategies
	}

	return input, idempotencyKey
}

func (s *Server) createReservationHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	input, idempotencyKey := s.checkCreateRequest(w, r)
	if idempotencyKey == "" {
		return
	}

	ctx = reservation.NewContextWithIdempotencyKey(ctx, idempotencyKey)

	out, err := s.rManager.Create(ctx, input)
	if inputErr := reservation.IsInputError(err); inputErr != nil {
		s.writeFieldErrors(w, inputErr.Fields())

		return
	}

	if availabilityErr := reservation.IsAvailabilityError(err); availabilityErr != nil {
		w.WriteHeader(http.StatusPreconditionFailed)

		if err = json.NewEncoder(w).Encode(availabilityErr.Fields()); err != nil {
			s.l.LogErrorf("Could not encode availability err: %v", err.Error())
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}

		return
	}

	if err != nil {
		s.l.LogErrorf("Could not create a reservation: %v", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusCreated)

	if err = json.NewEncoder(w).Encode(newReservationResponse(out)); err != nil {
		s.l.LogErrorf("Could not encode result of reservation creating: %v", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) listAccommodationsHandler(w http.ResponseWriter, _ *http.Request) {
	items := newAccommodationResponses(s.catalog.All())

	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(items); err != nil {
		s.l.LogErrorf("Could not encode accommodations: %v", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) livenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addRoutes(r chi.Router) {
	r.Use(s.loggerMiddleware(), s.recoverMiddleware())

	r.Post("/api/quotes/v1", s.quoteHandler)
	r.Post("/api/reservations/v1", s.createReservationHandler)
	r.Get("/api/accommodations/v1", s.listAccommodationsHandler)
	r.Get(s.conf.LivenessEndpoint, s.livenessHandler)
}
