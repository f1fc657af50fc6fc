package initiate_payment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/backend"
)

// BackendClient интерфейс клиента REST бэкенда
type BackendClient interface {
	GetReservation(ctx context.Context, id int64) (*domain.Reservation, error)
	CreatePayment(ctx context.Context, input backend.CreatePaymentInput) (*domain.PaymentIntent, error)
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
