package create_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Session.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.OfferID <= 0 {
		return fmt.Errorf("%w: offerID must be positive", ErrInvalidInput)
	}

	if req.PersonCount < domain.MinPersonCount {
		return fmt.Errorf("%w: personCount must be at least %d", ErrInvalidInput, domain.MinPersonCount)
	}

	if req.PersonCount > domain.MaxPersonCount {
		return fmt.Errorf("%w: personCount must not exceed %d", ErrInvalidInput, domain.MaxPersonCount)
	}

	return nil
}
