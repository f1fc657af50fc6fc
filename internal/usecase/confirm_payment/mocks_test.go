package confirm_payment

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/infra/storage/confirmation"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/backend"
)

// fakeBackend бэкенд в памяти; ConfirmPayment переводит бронирование в CONFIRMEE
type fakeBackend struct {
	mu            sync.Mutex
	payments      map[int64]*domain.Payment
	reservations  map[int64]*domain.Reservation
	gatewayStatus domain.PaymentStatus
	confirmErr    error
	confirmDelay  time.Duration
	ConfirmCalls  atomic.Int32
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		payments: map[int64]*domain.Payment{
			7: {ID: 7, Amount: 300, Status: domain.PaymentSucceeded, ReservationID: 42, UserID: 5},
		},
		reservations: map[int64]*domain.Reservation{
			42: {ID: 42, UserID: 5, OfferID: 9, Status: domain.ReservationPending,
				PersonCount: 2, PricePerPerson: 150, TotalAmount: 300, ReservedAt: testNow.Add(-time.Hour)},
		},
		gatewayStatus: domain.PaymentSucceeded,
	}
}

func (f *fakeBackend) GetPayment(_ context.Context, id int64) (*domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[id]
	if !ok {
		return nil, backend.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeBackend) GetPaymentStatus(_ context.Context, _ int64) (domain.PaymentStatus, error) {
	return f.gatewayStatus, nil
}

func (f *fakeBackend) GetReservation(_ context.Context, id int64) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok {
		return nil, backend.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeBackend) ConfirmPayment(_ context.Context, reservationID int64, _ string) error {
	f.ConfirmCalls.Add(1)
	if f.confirmDelay > 0 {
		time.Sleep(f.confirmDelay)
	}
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reservations[reservationID].Status = domain.ReservationConfirmed
	return nil
}

// fakeLedger журнал в памяти с семантикой репозитория
type fakeLedger struct {
	mu   sync.Mutex
	rows map[int64]*domain.PaymentConfirmation
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{rows: make(map[int64]*domain.PaymentConfirmation)}
}

func (l *fakeLedger) Claim(_ context.Context, paymentID, reservationID int64, gatewayID string) (*domain.PaymentConfirmation, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if row, ok := l.rows[paymentID]; ok {
		cp := *row
		return &cp, false, nil
	}
	row := &domain.PaymentConfirmation{
		PaymentID: paymentID, ReservationID: reservationID, GatewayConfirmationID: gatewayID,
		State: domain.ConfirmationPending, Attempts: 1, UpdatedAt: testNow,
	}
	l.rows[paymentID] = row
	cp := *row
	return &cp, true, nil
}

func (l *fakeLedger) Reclaim(_ context.Context, paymentID int64, gatewayID string, staleBefore time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	row, ok := l.rows[paymentID]
	if !ok {
		return false, nil
	}
	stale := row.State == domain.ConfirmationPending && row.UpdatedAt.Before(staleBefore)
	if row.State != domain.ConfirmationFailed && !stale {
		return false, nil
	}
	row.State = domain.ConfirmationPending
	row.GatewayConfirmationID = gatewayID
	row.Attempts++
	return true, nil
}

func (l *fakeLedger) MarkConfirmed(ctx context.Context, paymentID int64) error {
	return l.set(paymentID, domain.ConfirmationConfirmed, "")
}

func (l *fakeLedger) MarkFailed(ctx context.Context, paymentID int64, reason string) error {
	return l.set(paymentID, domain.ConfirmationFailed, reason)
}

func (l *fakeLedger) set(paymentID int64, state domain.ConfirmationState, reason string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	row, ok := l.rows[paymentID]
	if !ok {
		return confirmation.ErrConfirmationNotFound
	}
	row.State = state
	row.LastError = reason
	return nil
}

func (l *fakeLedger) Record(_ context.Context, c *domain.PaymentConfirmation) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if row, ok := l.rows[c.PaymentID]; ok && row.State == domain.ConfirmationConfirmed {
		return nil
	}
	cp := *c
	l.rows[c.PaymentID] = &cp
	return nil
}

func (l *fakeLedger) GetByPaymentID(_ context.Context, paymentID int64) (*domain.PaymentConfirmation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	row, ok := l.rows[paymentID]
	if !ok {
		return nil, confirmation.ErrConfirmationNotFound
	}
	cp := *row
	return &cp, nil
}

func (l *fakeLedger) state(paymentID int64) domain.ConfirmationState {
	l.mu.Lock()
	defer l.mu.Unlock()
	if row, ok := l.rows[paymentID]; ok {
		return row.State
	}
	return ""
}

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *recordingMetrics) IncPaymentConfirmation(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
