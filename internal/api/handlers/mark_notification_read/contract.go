package mark_notification_read

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

type ReadMarker interface {
	MarkNotificationRead(ctx context.Context, session domain.Session, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
