package get_notifications

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/service/notifications/models"
)

type FeedService interface {
	GetFeed(ctx context.Context, session domain.Session) (*models.FeedResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
