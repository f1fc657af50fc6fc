package get_offer_availability

import (
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	getOfferAvailability "github.com/m04kA/SMC-TourBookingService/internal/usecase/get_offer_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	OfferID         int64   `json:"offreId"`
	Title           string  `json:"titre"`
	NominalPlaces   int     `json:"placesNominales"`
	HeldPlaces      int     `json:"placesReservees"`
	RemainingPlaces int     `json:"placesRestantes"`
	PricePerPerson  float64 `json:"prixParPersonne"`
	DepartureDate   *string `json:"dateDepart,omitempty"`
	ReturnDate      *string `json:"dateRetour,omitempty"`
	DurationDays    int     `json:"dureeJours,omitempty"`
	Full            bool    `json:"complet"`
	ComputedAt      string  `json:"calculeLe"`
}

// FromUseCaseResponse конвертирует остаток мест в HTTP response
func FromUseCaseResponse(a *getOfferAvailability.Availability) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		NominalPlaces:   a.NominalPlaces,
		HeldPlaces:      a.HeldPlaces,
		RemainingPlaces: a.RemainingPlaces,
		Full:            a.RemainingPlaces == 0,
		ComputedAt:      a.ComputedAt.Format(time.RFC3339),
	}

	if a.Offer != nil {
		resp.OfferID = a.Offer.ID
		resp.Title = a.Offer.Title
		resp.PricePerPerson = a.Offer.PricePerPerson
		resp.DurationDays = a.Offer.DurationDays
		resp.DepartureDate = formatDate(a.Offer.DepartureDate)
		resp.ReturnDate = formatDate(a.Offer.ReturnDate)
	}

	return resp
}

func formatDate(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(domain.DateFormat)
	return &s
}
