package get_unreconciled_payments

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

type UnreconciledLister interface {
	ListUnreconciled(ctx context.Context, session domain.Session) ([]*domain.PaymentConfirmation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
