package get_unreconciled_payments

import (
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// ConfirmationResponse запись журнала подтверждений
type ConfirmationResponse struct {
	PaymentID             int64  `json:"paiementId"`
	ReservationID         int64  `json:"reservationId"`
	GatewayConfirmationID string `json:"gatewayConfirmationId"`
	State                 string `json:"etat"`
	Attempts              int    `json:"tentatives"`
	LastError             string `json:"derniereErreur,omitempty"`
	UpdatedAt             string `json:"misAJour"`
}

// UnreconciledResponse HTTP response model
type UnreconciledResponse struct {
	Payments []ConfirmationResponse `json:"paiements"`
	Total    int                    `json:"total"`
}

func FromDomain(entries []*domain.PaymentConfirmation) *UnreconciledResponse {
	resp := &UnreconciledResponse{
		Payments: make([]ConfirmationResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Payments = append(resp.Payments, ConfirmationResponse{
			PaymentID:             e.PaymentID,
			ReservationID:         e.ReservationID,
			GatewayConfirmationID: e.GatewayConfirmationID,
			State:                 string(e.State),
			Attempts:              e.Attempts,
			LastError:             e.LastError,
			UpdatedAt:             e.UpdatedAt.Format(time.RFC3339),
		})
	}
	resp.Total = len(resp.Payments)
	return resp
}
