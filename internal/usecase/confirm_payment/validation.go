package confirm_payment

import (
	"fmt"
	"strings"
)

const maxGatewayConfirmationIDLength = 255

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Session.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.PaymentID <= 0 {
		return fmt.Errorf("%w: paymentID must be positive", ErrInvalidInput)
	}

	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	gatewayID := strings.TrimSpace(req.GatewayConfirmationID)
	if gatewayID == "" {
		return fmt.Errorf("%w: gatewayConfirmationId is required", ErrInvalidInput)
	}

	if len(gatewayID) > maxGatewayConfirmationIDLength {
		return fmt.Errorf("%w: gatewayConfirmationId must not exceed %d characters", ErrInvalidInput, maxGatewayConfirmationIDLength)
	}

	return nil
}
