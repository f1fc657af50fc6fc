package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	createReservation "github.com/m04kA/SMC-TourBookingService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	OfferID     int64 `json:"offreId"`
	PersonCount int   `json:"nombrePers"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID                int64   `json:"id"`
	Status            string  `json:"statut"`
	EffectiveStatus   string  `json:"statutAffiche"`
	ReservedAt        *string `json:"dateReservation,omitempty"`
	ExpiresAt         *string `json:"dateExpiration,omitempty"`
	PersonCount       int     `json:"nombrePers"`
	PricePerPerson    float64 `json:"prixParPersonne"`
	TotalAmount       float64 `json:"montantTotal"`
	UserID            int64   `json:"utilisateurId"`
	OfferID           int64   `json:"offreId"`
	RemainingCapacity int     `json:"placesRestantes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(session domain.Session) *createReservation.Request {
	return &createReservation.Request{
		Session:     session,
		OfferID:     r.OfferID,
		PersonCount: r.PersonCount,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	reservation := resp.Reservation
	out := &ReservationResponse{
		ID:                reservation.ID,
		Status:            string(reservation.Status),
		EffectiveStatus:   string(resp.EffectiveStatus),
		PersonCount:       reservation.PersonCount,
		PricePerPerson:    reservation.PricePerPerson,
		TotalAmount:       reservation.TotalAmount,
		UserID:            reservation.UserID,
		OfferID:           reservation.OfferID,
		RemainingCapacity: resp.RemainingCapacity,
	}

	if !reservation.ReservedAt.IsZero() {
		reservedAt := reservation.ReservedAt.Format(time.RFC3339)
		out.ReservedAt = &reservedAt
	}
	if !resp.ExpiresAt.IsZero() {
		expiresAt := resp.ExpiresAt.Format(time.RFC3339)
		out.ExpiresAt = &expiresAt
	}

	return out
}
