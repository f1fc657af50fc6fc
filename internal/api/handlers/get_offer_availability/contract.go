package get_offer_availability

import (
	"context"

	getOfferAvailability "github.com/m04kA/SMC-TourBookingService/internal/usecase/get_offer_availability"
)

type GetOfferAvailabilityUseCase interface {
	Execute(ctx context.Context, offerID int64) (*getOfferAvailability.Availability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
