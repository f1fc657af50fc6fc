package get_offers_availability

import (
	offerAvailability "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_offer_availability"
	getOfferAvailability "github.com/m04kA/SMC-TourBookingService/internal/usecase/get_offer_availability"
)

// AvailabilityListResponse остаток мест по всем предложениям
type AvailabilityListResponse struct {
	Offers []*offerAvailability.AvailabilityResponse `json:"offres"`
	Total  int                                       `json:"total"`
}

func FromUseCaseResponse(items []*getOfferAvailability.Availability) *AvailabilityListResponse {
	resp := &AvailabilityListResponse{
		Offers: make([]*offerAvailability.AvailabilityResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Offers = append(resp.Offers, offerAvailability.FromUseCaseResponse(item))
	}
	resp.Total = len(resp.Offers)
	return resp
}
