package verify_payment

import (
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	verifyPayment "github.com/m04kA/SMC-TourBookingService/internal/usecase/verify_payment"
)

// VerifyPaymentRequest HTTP request model, тело необязательно
type VerifyPaymentRequest struct {
	Retry                 bool   `json:"retry,omitempty"`
	GatewayConfirmationID string `json:"gatewayConfirmationId,omitempty"`
}

// VerifyPaymentResponse HTTP response model
type VerifyPaymentResponse struct {
	PaymentID         int64  `json:"paiementId"`
	ReservationID     int64  `json:"reservationId"`
	PaymentStatus     string `json:"statutPaiement"`
	ReservationStatus string `json:"statutReservation"`
	EffectiveStatus   string `json:"statutAffiche"`
	LedgerState       string `json:"etatJournal,omitempty"`
	LastError         string `json:"derniereErreur,omitempty"`
	Consistent        bool   `json:"coherent"`
	Retried           bool   `json:"relance"`
	RetryOutcome      string `json:"resultatRelance,omitempty"`
}

func (r *VerifyPaymentRequest) ToUseCaseRequest(session domain.Session, paymentID int64) *verifyPayment.Request {
	return &verifyPayment.Request{
		Session:               session,
		PaymentID:             paymentID,
		Retry:                 r.Retry,
		GatewayConfirmationID: r.GatewayConfirmationID,
	}
}

func FromUseCaseResponse(resp *verifyPayment.Response) *VerifyPaymentResponse {
	return &VerifyPaymentResponse{
		PaymentID:         resp.PaymentID,
		ReservationID:     resp.ReservationID,
		PaymentStatus:     string(resp.PaymentStatus),
		ReservationStatus: string(resp.ReservationStatus),
		EffectiveStatus:   string(resp.EffectiveStatus),
		LedgerState:       string(resp.LedgerState),
		LastError:         resp.LastError,
		Consistent:        resp.Consistent,
		Retried:           resp.Retried,
		RetryOutcome:      string(resp.RetryOutcome),
	}
}
