package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/backend"
	createReservation "github.com/m04kA/SMC-TourBookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgMissingSession     = "utilisateur non authentifié"
	msgInvalidInput       = "offre et nombre de personnes (1 à 100) requis"
	msgOfferNotFound      = "offre introuvable"
	msgNotEnoughPlaces    = "pas assez de places disponibles pour cette offre"
	msgRejected           = "réservation refusée"
	msgBackendUnavailable = "service de réservation indisponible, réessayez plus tard"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(session))
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrOfferNotFound):
			h.logger.Warn("POST /reservations - Offer not found: offer_id=%d", req.OfferID)
			handlers.RespondNotFound(w, msgOfferNotFound)

		case errors.Is(err, createReservation.ErrNotEnoughPlaces):
			h.logger.Warn("POST /reservations - Not enough places: offer_id=%d, persons=%d", req.OfferID, req.PersonCount)
			handlers.RespondConflict(w, msgNotEnoughPlaces)

		case errors.Is(err, createReservation.ErrRejected):
			h.logger.Warn("POST /reservations - Rejected by backend: offer_id=%d, error=%v", req.OfferID, err)
			message, ok := backend.RejectionMessage(err)
			if !ok {
				message = msgRejected
			}
			handlers.RespondConflict(w, message)

		case errors.Is(err, createReservation.ErrBackendUnavailable):
			h.logger.Error("POST /reservations - Backend unavailable: %v", err)
			handlers.RespondBadGateway(w, msgBackendUnavailable)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, offer_id=%d, error=%v",
				session.UserID, req.OfferID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, user_id=%d, offer_id=%d",
		result.Reservation.ID, session.UserID, req.OfferID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
