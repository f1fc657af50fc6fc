package confirm_payment

import (
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	confirmPayment "github.com/m04kA/SMC-TourBookingService/internal/usecase/confirm_payment"
)

// ConfirmPaymentRequest HTTP request model
type ConfirmPaymentRequest struct {
	ReservationID         int64  `json:"reservationId"`
	GatewayConfirmationID string `json:"gatewayConfirmationId"`
}

// ReservationSummary состояние бронирования после подтверждения
type ReservationSummary struct {
	ID          int64   `json:"id"`
	Status      string  `json:"statut"`
	PersonCount int     `json:"nombrePers"`
	TotalAmount float64 `json:"montantTotal"`
	OfferID     int64   `json:"offreId"`
}

// ConfirmPaymentResponse HTTP response model
type ConfirmPaymentResponse struct {
	Outcome     string              `json:"resultat"`
	PaymentID   int64               `json:"paiementId"`
	Reservation *ReservationSummary `json:"reservation,omitempty"`
}

func (r *ConfirmPaymentRequest) ToUseCaseRequest(session domain.Session, paymentID int64) *confirmPayment.Request {
	return &confirmPayment.Request{
		Session:               session,
		PaymentID:             paymentID,
		ReservationID:         r.ReservationID,
		GatewayConfirmationID: r.GatewayConfirmationID,
	}
}

func FromUseCaseResponse(resp *confirmPayment.Response) *ConfirmPaymentResponse {
	out := &ConfirmPaymentResponse{
		Outcome:   string(resp.Outcome),
		PaymentID: resp.PaymentID,
	}
	if r := resp.Reservation; r != nil {
		out.Reservation = &ReservationSummary{
			ID:          r.ID,
			Status:      string(r.Status),
			PersonCount: r.PersonCount,
			TotalAmount: r.TotalAmount,
			OfferID:     r.OfferID,
		}
	}
	return out
}
