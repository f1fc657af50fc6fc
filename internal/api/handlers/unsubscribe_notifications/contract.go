package unsubscribe_notifications

import "github.com/m04kA/SMC-TourBookingService/internal/domain"

type FeedService interface {
	Unsubscribe(session domain.Session) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
