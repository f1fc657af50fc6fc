package initiate_payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/backend"
)

type fakeBackend struct {
	reservation *domain.Reservation
	getErr      error
	createErr   error
	created     []backend.CreatePaymentInput
}

func (f *fakeBackend) GetReservation(_ context.Context, _ int64) (*domain.Reservation, error) {
	return f.reservation, f.getErr
}

func (f *fakeBackend) CreatePayment(_ context.Context, input backend.CreatePaymentInput) (*domain.PaymentIntent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, input)
	return &domain.PaymentIntent{PaymentID: 7, ClientSecret: "pi_secret"}, nil
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestUseCase(client BackendClient) *UseCase {
	uc := NewUseCase(client, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}
	return uc
}

func pendingReservation() *domain.Reservation {
	return &domain.Reservation{
		ID: 42, UserID: 5, OfferID: 9, Status: domain.ReservationPending,
		PersonCount: 2, PricePerPerson: 150, TotalAmount: 999, ReservedAt: testNow.Add(-time.Hour),
	}
}

func TestExecute_CreatesPaymentWithRecomputedAmount(t *testing.T) {
	client := &fakeBackend{reservation: pendingReservation()}

	resp, err := newTestUseCase(client).Execute(context.Background(), &Request{
		Session:       domain.Session{UserID: 5, Role: domain.RoleClient},
		ReservationID: 42,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.PaymentID)
	assert.Equal(t, "pi_secret", resp.ClientSecret)
	assert.Equal(t, 300.0, resp.Amount)
	assert.Equal(t, testNow.Add(23*time.Hour), resp.ExpiresAt)

	require.Len(t, client.created, 1)
	assert.Equal(t, 300.0, client.created[0].Amount)
	assert.Equal(t, defaultMethod, client.created[0].Method)
	assert.Equal(t, "Paiement de la réservation #42", client.created[0].Description)
}

func TestExecute_Rejections(t *testing.T) {
	expired := pendingReservation()
	expired.ReservedAt = testNow.Add(-25 * time.Hour)

	confirmed := pendingReservation()
	confirmed.Status = domain.ReservationConfirmed

	cancelled := pendingReservation()
	cancelled.Status = domain.ReservationCancelled

	tests := []struct {
		name        string
		reservation *domain.Reservation
		getErr      error
		session     domain.Session
		wantErr     error
	}{
		{"not owner", pendingReservation(), nil, domain.Session{UserID: 6, Role: domain.RoleClient}, ErrAccessDenied},
		{"expired", expired, nil, domain.Session{UserID: 5, Role: domain.RoleClient}, ErrReservationExpired},
		{"confirmed", confirmed, nil, domain.Session{UserID: 5, Role: domain.RoleClient}, ErrAlreadyConfirmed},
		{"cancelled", cancelled, nil, domain.Session{UserID: 5, Role: domain.RoleClient}, ErrReservationNotPayable},
		{"not found", nil, backend.ErrNotFound, domain.Session{UserID: 5, Role: domain.RoleClient}, ErrReservationNotFound},
		{"backend down", nil, backend.ErrUnavailable, domain.Session{UserID: 5, Role: domain.RoleClient}, ErrBackendUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeBackend{reservation: tt.reservation, getErr: tt.getErr}
			_, err := newTestUseCase(client).Execute(context.Background(), &Request{
				Session:       tt.session,
				ReservationID: 42,
			})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, client.created)
		})
	}
}
