package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// BackendClient интерфейс клиента REST бэкенда
type BackendClient interface {
	GetOffer(ctx context.Context, id int64) (*domain.Offer, error)
	ListReservations(ctx context.Context) ([]*domain.Reservation, error)
	CreateReservation(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// Metrics интерфейс для учета созданных бронирований
type Metrics interface {
	IncReservationCreated(result string)
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
