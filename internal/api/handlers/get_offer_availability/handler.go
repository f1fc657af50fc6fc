package get_offer_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	getOfferAvailability "github.com/m04kA/SMC-TourBookingService/internal/usecase/get_offer_availability"
)

const (
	msgInvalidOfferID     = "identifiant d'offre invalide"
	msgOfferNotFound      = "offre introuvable"
	msgBackendUnavailable = "service de réservation indisponible, réessayez plus tard"
)

type Handler struct {
	useCase GetOfferAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetOfferAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/offers/{offerId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	offerID, err := strconv.ParseInt(mux.Vars(r)["offerId"], 10, 64)
	if err != nil || offerID <= 0 {
		h.logger.Warn("GET /offers/{id}/availability - Invalid offer ID: %s", mux.Vars(r)["offerId"])
		handlers.RespondBadRequest(w, msgInvalidOfferID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), offerID)
	if err != nil {
		switch {
		case errors.Is(err, getOfferAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidOfferID)

		case errors.Is(err, getOfferAvailability.ErrOfferNotFound):
			h.logger.Warn("GET /offers/{id}/availability - Offer not found: offer_id=%d", offerID)
			handlers.RespondNotFound(w, msgOfferNotFound)

		case errors.Is(err, getOfferAvailability.ErrBackendUnavailable):
			h.logger.Error("GET /offers/{id}/availability - Backend unavailable: offer_id=%d, error=%v", offerID, err)
			handlers.RespondBadGateway(w, msgBackendUnavailable)

		default:
			h.logger.Error("GET /offers/{id}/availability - Failed to compute availability: offer_id=%d, error=%v", offerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /offers/{id}/availability - offer_id=%d, remaining=%d", offerID, result.RemainingPlaces)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
