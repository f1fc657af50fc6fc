package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// BackendClient интерфейс клиента REST бэкенда
type BackendClient interface {
	ListReservations(ctx context.Context) ([]*domain.Reservation, error)
	GetReservation(ctx context.Context, id int64) (*domain.Reservation, error)
	ListOffers(ctx context.Context) ([]*domain.Offer, error)
	GetOffer(ctx context.Context, id int64) (*domain.Offer, error)
	ListPayments(ctx context.Context) ([]*domain.Payment, error)
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
