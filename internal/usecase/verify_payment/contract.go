package verify_payment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/usecase/confirm_payment"
)

// BackendClient интерфейс клиента REST бэкенда
type BackendClient interface {
	GetPayment(ctx context.Context, id int64) (*domain.Payment, error)
	GetPaymentStatus(ctx context.Context, id int64) (domain.PaymentStatus, error)
	GetReservation(ctx context.Context, id int64) (*domain.Reservation, error)
}

// ConfirmationRepository интерфейс журнала подтверждений платежей
type ConfirmationRepository interface {
	GetByPaymentID(ctx context.Context, paymentID int64) (*domain.PaymentConfirmation, error)
	ListByState(ctx context.Context, state domain.ConfirmationState) ([]*domain.PaymentConfirmation, error)
}

// PaymentConfirmer мост "платеж -> бронирование", используется для повторной попытки
type PaymentConfirmer interface {
	Execute(ctx context.Context, req *confirm_payment.Request) (*confirm_payment.Response, error)
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
