package get_offer_availability

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/backend"
)

// MockBackendClient implements BackendClient for testing
type MockBackendClient struct {
	Offers          []*domain.Offer
	Reservations    []*domain.Reservation
	OfferErr        error
	ReservationsErr error
	ReservationCall atomic.Int32
}

func (m *MockBackendClient) GetOffer(_ context.Context, id int64) (*domain.Offer, error) {
	if m.OfferErr != nil {
		return nil, m.OfferErr
	}
	for _, o := range m.Offers {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, backend.ErrNotFound
}

func (m *MockBackendClient) ListOffers(_ context.Context) ([]*domain.Offer, error) {
	return m.Offers, m.OfferErr
}

func (m *MockBackendClient) ListReservations(_ context.Context) ([]*domain.Reservation, error) {
	m.ReservationCall.Add(1)
	return m.Reservations, m.ReservationsErr
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
