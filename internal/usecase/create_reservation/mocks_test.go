package create_reservation

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

type MockBackendClient struct {
	mock.Mock
}

func (m *MockBackendClient) GetOffer(ctx context.Context, id int64) (*domain.Offer, error) {
	args := m.Called(ctx, id)
	offer, _ := args.Get(0).(*domain.Offer)
	return offer, args.Error(1)
}

func (m *MockBackendClient) ListReservations(ctx context.Context) ([]*domain.Reservation, error) {
	args := m.Called(ctx)
	reservations, _ := args.Get(0).([]*domain.Reservation)
	return reservations, args.Error(1)
}

func (m *MockBackendClient) CreateReservation(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	args := m.Called(ctx, reservation)
	created, _ := args.Get(0).(*domain.Reservation)
	return created, args.Error(1)
}

type recordingMetrics struct {
	results []string
}

func (m *recordingMetrics) IncReservationCreated(result string) {
	m.results = append(m.results, result)
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
