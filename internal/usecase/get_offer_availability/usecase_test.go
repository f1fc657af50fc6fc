package get_offer_availability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/backend"
)

func newTestUseCase(client BackendClient, now time.Time) *UseCase {
	uc := NewUseCase(client, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func TestExecute_ExpiredReservationFreesPlaces(t *testing.T) {
	t0 := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	client := &MockBackendClient{
		Offers: []*domain.Offer{{ID: 9, PlacesAvailable: 5}},
		Reservations: []*domain.Reservation{
			{ID: 42, OfferID: 9, Status: domain.ReservationPending, PersonCount: 2, ReservedAt: t0},
		},
	}

	availability, err := newTestUseCase(client, t0.Add(time.Hour)).Execute(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 3, availability.RemainingPlaces)
	assert.Equal(t, 2, availability.HeldPlaces)

	availability, err = newTestUseCase(client, t0.Add(25*time.Hour)).Execute(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 5, availability.RemainingPlaces)
	assert.Equal(t, 0, availability.HeldPlaces)

	assert.Equal(t, int32(2), client.ReservationCall.Load(), "availability must be recomputed on every call")
}

func TestExecute_Errors(t *testing.T) {
	now := time.Now()

	_, err := newTestUseCase(&MockBackendClient{}, now).Execute(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	client := &MockBackendClient{OfferErr: fmt.Errorf("%w: GET /offre/3", backend.ErrNotFound)}
	_, err = newTestUseCase(client, now).Execute(context.Background(), 3)
	assert.ErrorIs(t, err, ErrOfferNotFound)

	client = &MockBackendClient{
		Offers:          []*domain.Offer{{ID: 3}},
		ReservationsErr: fmt.Errorf("%w: dial tcp", backend.ErrUnavailable),
	}
	_, err = newTestUseCase(client, now).Execute(context.Background(), 3)
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestExecuteAll(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	client := &MockBackendClient{
		Offers: []*domain.Offer{
			{ID: 1, PlacesAvailable: 10},
			{ID: 2, PlacesAvailable: 3},
		},
		Reservations: []*domain.Reservation{
			{OfferID: 1, Status: domain.ReservationConfirmed, PersonCount: 4},
			{OfferID: 1, Status: domain.ReservationPending, PersonCount: 4, ReservedAt: now.Add(-30 * time.Hour)},
			{OfferID: 2, Status: domain.ReservationConfirmed, PersonCount: 5},
		},
	}

	result, err := newTestUseCase(client, now).ExecuteAll(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, 6, result[0].RemainingPlaces)
	assert.Equal(t, 0, result[1].RemainingPlaces)
	assert.Equal(t, now, result[1].ComputedAt)
}
