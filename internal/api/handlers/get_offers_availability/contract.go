package get_offers_availability

import (
	"context"

	getOfferAvailability "github.com/m04kA/SMC-TourBookingService/internal/usecase/get_offer_availability"
)

type GetOffersAvailabilityUseCase interface {
	ExecuteAll(ctx context.Context) ([]*getOfferAvailability.Availability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
