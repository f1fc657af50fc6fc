package domain

import (
	"slices"
	"strings"
	"time"
)

// ReservationStatus represents the stored status of a reservation
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "EN_ATTENTE"
	ReservationConfirmed ReservationStatus = "CONFIRMEE"
	ReservationCancelled ReservationStatus = "ANNULEE"

	// ReservationUnknown marks legacy or invalid stored values (boolean statut, empty, unknown strings)
	ReservationUnknown ReservationStatus = "INCONNU"
)

// ParseReservationStatus decodes a stored status, mapping anything unrecognised to ReservationUnknown
func ParseReservationStatus(raw string) ReservationStatus {
	switch status := ReservationStatus(strings.ToUpper(strings.TrimSpace(raw))); status {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return status
	default:
		return ReservationUnknown
	}
}

// IsValid reports whether the status is one of the three known states
func (s ReservationStatus) IsValid() bool {
	return s == ReservationPending || s == ReservationConfirmed || s == ReservationCancelled
}

// HoldsSeat reports whether a reservation in this status counts against capacity
func (s ReservationStatus) HoldsSeat() bool {
	return slices.Contains(SeatHoldingStatuses, s)
}

// Reservation represents a user's claim on seats within an offer
type Reservation struct {
	ID     int64
	Status ReservationStatus

	// ReservedAt is zero when the backend sent no date or an unparsable one
	ReservedAt time.Time
	ExpiresAt  *time.Time

	PersonCount    int
	PricePerPerson float64
	TotalAmount    float64

	UserID  int64
	OfferID int64

	// Denormalized from the offer for display
	OfferTitle string
}

// ExpirationBoundary returns the moment a pending reservation stops holding its seats.
// An explicit expiration wins; otherwise ReservedAt + ReservationTTL.
// Returns false when neither date is usable.
func (r *Reservation) ExpirationBoundary() (time.Time, bool) {
	if r.ExpiresAt != nil && !r.ExpiresAt.IsZero() {
		return *r.ExpiresAt, true
	}
	if r.ReservedAt.IsZero() {
		return time.Time{}, false
	}
	return r.ReservedAt.Add(ReservationTTL), true
}

// EffectiveStatus returns the status presented to users.
// A pending reservation past its expiration boundary is presented as cancelled;
// the stored value is never changed. Missing dates count as not expired.
func (r *Reservation) EffectiveStatus(now time.Time) ReservationStatus {
	if r.Status != ReservationPending {
		return r.Status
	}

	boundary, ok := r.ExpirationBoundary()
	if !ok {
		return ReservationPending
	}

	if !now.Before(boundary) {
		return ReservationCancelled
	}
	return ReservationPending
}

// IsExpiredPending returns true for a stored pending reservation whose boundary has passed
func (r *Reservation) IsExpiredPending(now time.Time) bool {
	return r.Status == ReservationPending && r.EffectiveStatus(now) == ReservationCancelled
}

// TimeRemaining returns the time left before a pending reservation expires.
// The duration is zero once expired. Returns false for non-pending reservations
// and for reservations without a usable date.
func (r *Reservation) TimeRemaining(now time.Time) (time.Duration, bool) {
	if r.Status != ReservationPending {
		return 0, false
	}

	boundary, ok := r.ExpirationBoundary()
	if !ok {
		return 0, false
	}

	remaining := boundary.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// BelongsTo returns true if the reservation is owned by the given user
func (r *Reservation) BelongsTo(userID int64) bool {
	return r.UserID == userID
}
