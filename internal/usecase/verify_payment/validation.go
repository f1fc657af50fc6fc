package verify_payment

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Session.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.PaymentID <= 0 {
		return fmt.Errorf("%w: paymentID must be positive", ErrInvalidInput)
	}

	return nil
}
