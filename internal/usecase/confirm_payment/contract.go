package confirm_payment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// BackendClient интерфейс клиента REST бэкенда
type BackendClient interface {
	GetPayment(ctx context.Context, id int64) (*domain.Payment, error)
	GetPaymentStatus(ctx context.Context, id int64) (domain.PaymentStatus, error)
	GetReservation(ctx context.Context, id int64) (*domain.Reservation, error)
	ConfirmPayment(ctx context.Context, reservationID int64, gatewayConfirmationID string) error
}

// ConfirmationRepository интерфейс журнала подтверждений платежей
type ConfirmationRepository interface {
	Claim(ctx context.Context, paymentID, reservationID int64, gatewayID string) (*domain.PaymentConfirmation, bool, error)
	Reclaim(ctx context.Context, paymentID int64, gatewayID string, staleBefore time.Time) (bool, error)
	MarkConfirmed(ctx context.Context, paymentID int64) error
	MarkFailed(ctx context.Context, paymentID int64, reason string) error
	Record(ctx context.Context, c *domain.PaymentConfirmation) error
	GetByPaymentID(ctx context.Context, paymentID int64) (*domain.PaymentConfirmation, error)
}

// Metrics интерфейс для метрик подтверждений
type Metrics interface {
	IncPaymentConfirmation(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
