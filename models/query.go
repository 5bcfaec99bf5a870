package models

import (
	"errors"
	"time"
)

const (
	MinGuests = 1
	MaxGuests = 20
)

// Input errors. These are the only failures that cross the service
// boundary; everything downstream is absorbed per listing.
var (
	ErrCheckoutNotAfterCheckin = errors.New("checkout date must be after checkin date")
	ErrGuestsOutOfRange        = errors.New("guest count must be between 1 and 20")
)

// IsInputError reports whether err should be rejected as a caller
// mistake rather than an internal failure.
func IsInputError(err error) bool {
	return errors.Is(err, ErrCheckoutNotAfterCheckin) || errors.Is(err, ErrGuestsOutOfRange)
}

// StayQuery is one validated availability request. Dates are calendar
// days; any time-of-day component is ignored.
type StayQuery struct {
	Checkin  time.Time
	Checkout time.Time
	Guests   int
}

func NewStayQuery(checkin, checkout time.Time, guests int) (StayQuery, error) {
	q := StayQuery{Checkin: checkin, Checkout: checkout, Guests: guests}
	return q, q.Validate()
}

func (q StayQuery) Validate() error {
	if q.Guests < MinGuests || q.Guests > MaxGuests {
		return ErrGuestsOutOfRange
	}
	if !q.Checkout.After(q.Checkin) {
		return ErrCheckoutNotAfterCheckin
	}
	return nil
}

// Nights is the whole-day stay length, always >= 1 once validated.
func (q StayQuery) Nights() int {
	return int(q.Checkout.Sub(q.Checkin).Hours() / 24)
}
