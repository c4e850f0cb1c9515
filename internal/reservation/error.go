package reservation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrIdempotencyKey = errors.New("idempotency key not found")
	ErrNextID         = errors.New("get next id from generator")
	ErrLogic          = errors.New("logic error")
	ErrRecordNotFound = errors.New("record not found")
)

// AvailabilityError reports the nights of a requested stay that cannot be
// reserved anymore.
type AvailabilityError struct {
	errors []string
}

func NewAvailabilityError() *AvailabilityError {
	//nolint:exhaustruct
	return &AvailabilityError{}
}

func IsAvailabilityError(err error) *AvailabilityError {
	if err == nil {
		return nil
	}

	var availabilityError *AvailabilityError

	if errors.As(err, &availabilityError) {
		return availabilityError
	}

	return nil
}

func (e *AvailabilityError) AddUnavailableNights(accommodationID string, dates []time.Time) {
	nights := make([]string, 0, len(dates))
	for _, d := range dates {
		nights = append(nights, d.Format(time.DateOnly))
	}

	e.errors = append(e.errors, fmt.Sprintf("accommodation '%v' is unavailable on following nights %v", accommodationID, nights))
}

func (e *AvailabilityError) Error() string {
	return fmt.Sprintf("%+v", e.errors)
}

func (e *AvailabilityError) Fields() []string {
	return e.errors
}

func (e *AvailabilityError) UnavailableNightsCount() int {
	return len(e.errors)
}

// InputError carries field-level validation messages so the caller can
// render them inline instead of failing the whole request opaquely.
type InputError struct {
	fields map[string][]string
}

func newInputError() *InputError {
	return &InputError{
		fields: make(map[string][]string),
	}
}

func IsInputError(err error) *InputError {
	if err == nil {
		return nil
	}

	var inputError *InputError

	if errors.As(err, &inputError) {
		return inputError
	}

	return nil
}

func (ie *InputError) fieldsCount() int {
	return len(ie.fields)
}

func (ie *InputError) addError(field, msg string) {
	ie.fields[field] = append(ie.fields[field], msg)
}

func (ie *InputError) Error() string {
	return fmt.Sprintf("%+v", ie.fields)
}

func (ie *InputError) Fields() map[string][]string {
	return ie.fields
}
