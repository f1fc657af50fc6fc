package get_reservation_stats

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TourBookingService/internal/service/reservations"
)

const (
	msgMissingSession     = "utilisateur non authentifié"
	msgBackendUnavailable = "service de réservation indisponible, réessayez plus tard"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations/stats - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	stats, err := h.service.Stats(r.Context(), session)
	if err != nil {
		if errors.Is(err, reservations.ErrBackendUnavailable) {
			h.logger.Error("GET /reservations/stats - Backend unavailable: %v", err)
			handlers.RespondBadGateway(w, msgBackendUnavailable)
			return
		}
		h.logger.Error("GET /reservations/stats - Failed to compute stats: user_id=%d, error=%v", session.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}
