package get_offers_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	getOfferAvailability "github.com/m04kA/SMC-TourBookingService/internal/usecase/get_offer_availability"
)

const msgBackendUnavailable = "service de réservation indisponible, réessayez plus tard"

type Handler struct {
	useCase GetOffersAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetOffersAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/offers/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.ExecuteAll(r.Context())
	if err != nil {
		if errors.Is(err, getOfferAvailability.ErrBackendUnavailable) {
			h.logger.Error("GET /offers/availability - Backend unavailable: %v", err)
			handlers.RespondBadGateway(w, msgBackendUnavailable)
			return
		}
		h.logger.Error("GET /offers/availability - Failed to compute availability: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /offers/availability - %d offers", len(result))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
