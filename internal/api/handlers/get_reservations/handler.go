package get_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TourBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-TourBookingService/internal/service/reservations/models"
)

const (
	msgMissingSession     = "utilisateur non authentifié"
	msgInvalidFilter      = "filtre invalide"
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

// Handle GET /api/v1/reservations?status=&search=&expired=&sortBy=&sortOrder=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	query := r.URL.Query()
	req := &models.ListRequest{
		Search:    query.Get("search"),
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if expired := query.Get("expired"); expired != "" {
		expiredOnly, err := strconv.ParseBool(expired)
		if err != nil {
			h.logger.Warn("GET /reservations - Invalid expired flag: %s", expired)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.ExpiredOnly = expiredOnly
	}

	result, err := h.service.List(r.Context(), session, req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /reservations - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		case errors.Is(err, reservations.ErrBackendUnavailable):
			h.logger.Error("GET /reservations - Backend unavailable: %v", err)
			handlers.RespondBadGateway(w, msgBackendUnavailable)

		default:
			h.logger.Error("GET /reservations - Failed to list reservations: user_id=%d, error=%v", session.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations - %d reservations for %s", result.Total, session.Key())
	handlers.RespondJSON(w, http.StatusOK, result)
}
