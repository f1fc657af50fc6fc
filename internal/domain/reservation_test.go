package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func TestReservation_EffectiveStatus_PendingExpiration(t *testing.T) {
	reservedAt := mustTime(t, "2024-01-01T00:00:00Z")
	r := &Reservation{ID: 1, Status: ReservationPending, ReservedAt: reservedAt}

	tests := []struct {
		name string
		now  time.Time
		want ReservationStatus
	}{
		{"one second before boundary", mustTime(t, "2024-01-01T23:59:59Z"), ReservationPending},
		{"exactly at boundary", mustTime(t, "2024-01-02T00:00:00Z"), ReservationCancelled},
		{"one second after boundary", mustTime(t, "2024-01-02T00:00:01Z"), ReservationCancelled},
		{"long after boundary", mustTime(t, "2024-03-01T00:00:00Z"), ReservationCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.EffectiveStatus(tt.now))
		})
	}

	assert.Equal(t, ReservationPending, r.Status, "stored status must not change")
}

func TestReservation_EffectiveStatus_ExplicitExpirationWins(t *testing.T) {
	reservedAt := mustTime(t, "2024-01-01T00:00:00Z")
	expiresAt := mustTime(t, "2024-01-01T02:00:00Z")
	r := &Reservation{Status: ReservationPending, ReservedAt: reservedAt, ExpiresAt: &expiresAt}

	assert.Equal(t, ReservationPending, r.EffectiveStatus(mustTime(t, "2024-01-01T01:59:59Z")))
	assert.Equal(t, ReservationCancelled, r.EffectiveStatus(mustTime(t, "2024-01-01T02:00:00Z")))
}

func TestReservation_EffectiveStatus_NonPendingUnaffected(t *testing.T) {
	reservedAt := mustTime(t, "2020-01-01T00:00:00Z")
	instants := []time.Time{
		mustTime(t, "2019-12-31T00:00:00Z"),
		mustTime(t, "2020-01-01T12:00:00Z"),
		mustTime(t, "2030-01-01T00:00:00Z"),
	}

	for _, status := range []ReservationStatus{ReservationConfirmed, ReservationCancelled, ReservationUnknown} {
		r := &Reservation{Status: status, ReservedAt: reservedAt}
		for _, now := range instants {
			assert.Equal(t, status, r.EffectiveStatus(now), "status=%s now=%s", status, now)
		}
	}
}

func TestReservation_EffectiveStatus_MissingDateIsNotExpired(t *testing.T) {
	r := &Reservation{Status: ReservationPending}

	_, ok := r.ExpirationBoundary()
	assert.False(t, ok)
	assert.Equal(t, ReservationPending, r.EffectiveStatus(mustTime(t, "2099-01-01T00:00:00Z")))
	assert.False(t, r.IsExpiredPending(mustTime(t, "2099-01-01T00:00:00Z")))
}

func TestReservation_TimeRemaining(t *testing.T) {
	reservedAt := mustTime(t, "2024-01-01T00:00:00Z")
	r := &Reservation{Status: ReservationPending, ReservedAt: reservedAt}

	remaining, ok := r.TimeRemaining(mustTime(t, "2024-01-01T20:30:00Z"))
	assert.True(t, ok)
	assert.Equal(t, 3*time.Hour+30*time.Minute, remaining)

	remaining, ok = r.TimeRemaining(mustTime(t, "2024-01-03T00:00:00Z"))
	assert.True(t, ok)
	assert.Zero(t, remaining)

	confirmed := &Reservation{Status: ReservationConfirmed, ReservedAt: reservedAt}
	_, ok = confirmed.TimeRemaining(mustTime(t, "2024-01-01T01:00:00Z"))
	assert.False(t, ok)
}

func TestParseReservationStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want ReservationStatus
	}{
		{"EN_ATTENTE", ReservationPending},
		{"confirmee", ReservationConfirmed},
		{" ANNULEE ", ReservationCancelled},
		{"", ReservationUnknown},
		{"false", ReservationUnknown},
		{"PAYEE", ReservationUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseReservationStatus(tt.raw))
		})
	}
}

func TestReservationStatus_HoldsSeat(t *testing.T) {
	assert.True(t, ReservationPending.HoldsSeat())
	assert.True(t, ReservationConfirmed.HoldsSeat())
	assert.False(t, ReservationCancelled.HoldsSeat())
	assert.False(t, ReservationUnknown.HoldsSeat())

	for _, status := range SeatHoldingStatuses {
		assert.True(t, status.HoldsSeat(), status)
	}
}
