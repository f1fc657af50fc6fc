package get_offer_availability

import "fmt"

// validateOfferID валидирует ID предложения
func validateOfferID(offerID int64) error {
	if offerID <= 0 {
		return fmt.Errorf("%w: offerID must be positive", ErrInvalidInput)
	}
	return nil
}
