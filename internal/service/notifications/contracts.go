package notifications

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// BackendClient интерфейс клиента REST бэкенда
type BackendClient interface {
	ListReservations(ctx context.Context) ([]*domain.Reservation, error)
	ListMessages(ctx context.Context) ([]*domain.Message, error)
	ListPayments(ctx context.Context) ([]*domain.Payment, error)
}

// ReadStore интерфейс хранилища прочитанных ID
type ReadStore interface {
	ReadIDs(ctx context.Context, scope domain.Session, kind domain.ReadKind) (map[int64]struct{}, error)
	MarkRead(ctx context.Context, scope domain.Session, kind domain.ReadKind, id int64) error
}

// Metrics интерфейс для метрик опроса
type Metrics interface {
	IncPollCycle(result string)
	SetActivePollers(n int)
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
