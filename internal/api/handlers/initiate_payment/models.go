package initiate_payment

import (
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	initiatePayment "github.com/m04kA/SMC-TourBookingService/internal/usecase/initiate_payment"
)

// InitiatePaymentRequest HTTP request model
type InitiatePaymentRequest struct {
	ReservationID int64  `json:"reservationId"`
	Method        string `json:"methode,omitempty"`
	Description   string `json:"description,omitempty"`
}

// PaymentIntentResponse HTTP response model
type PaymentIntentResponse struct {
	PaymentID     int64   `json:"paiementId"`
	ClientSecret  string  `json:"clientSecret"`
	ReservationID int64   `json:"reservationId"`
	Amount        float64 `json:"montant"`
	ExpiresAt     *string `json:"expireLe,omitempty"`
}

func (r *InitiatePaymentRequest) ToUseCaseRequest(session domain.Session) *initiatePayment.Request {
	return &initiatePayment.Request{
		Session:       session,
		ReservationID: r.ReservationID,
		Method:        r.Method,
		Description:   r.Description,
	}
}

func FromUseCaseResponse(resp *initiatePayment.Response) *PaymentIntentResponse {
	out := &PaymentIntentResponse{
		PaymentID:     resp.PaymentID,
		ClientSecret:  resp.ClientSecret,
		ReservationID: resp.ReservationID,
		Amount:        resp.Amount,
	}
	if !resp.ExpiresAt.IsZero() {
		expiresAt := resp.ExpiresAt.Format(time.RFC3339)
		out.ExpiresAt = &expiresAt
	}
	return out
}
