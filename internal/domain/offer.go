package domain

import (
	"math"
	"time"
)

// Offer represents a bookable travel package
type Offer struct {
	ID    int64
	Title string

	// PlacesAvailable is the nominal capacity as stored by the backend
	PlacesAvailable int
	PricePerPerson  float64

	DepartureDate time.Time
	ReturnDate    time.Time
	DurationDays  int
}

// HeldPlaces sums the headcount of reservations against this offer that still hold seats at now
func (o *Offer) HeldPlaces(reservations []*Reservation, now time.Time) int {
	held := 0
	for _, r := range reservations {
		if r == nil || r.OfferID != o.ID || r.PersonCount <= 0 {
			continue
		}
		if r.EffectiveStatus(now).HoldsSeat() {
			held += r.PersonCount
		}
	}
	return held
}

// RemainingCapacity returns nominal capacity minus held places, never negative.
// Expired pending reservations do not count.
func (o *Offer) RemainingCapacity(reservations []*Reservation, now time.Time) int {
	remaining := o.PlacesAvailable - o.HeldPlaces(reservations, now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// TotalAmount computes montantTotal rounded to cents
func TotalAmount(personCount int, pricePerPerson float64) float64 {
	return math.Round(float64(personCount)*pricePerPerson*100) / 100
}
