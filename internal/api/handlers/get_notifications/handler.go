package get_notifications

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TourBookingService/internal/service/notifications"
)

const (
	msgMissingSession  = "utilisateur non authentifié"
	msgInvalidSession  = "session invalide"
	msgFeedUnavailable = "notifications momentanément indisponibles, réessayez plus tard"
)

type Handler struct {
	service FeedService
	logger  Logger
}

func NewHandler(service FeedService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	feed, err := h.service.GetFeed(r.Context(), session)
	if err != nil {
		switch {
		case errors.Is(err, notifications.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSession)

		case errors.Is(err, notifications.ErrFeedUnavailable), errors.Is(err, notifications.ErrRegistryClosed):
			h.logger.Warn("GET /notifications - Feed unavailable for %s: %v", session.Key(), err)
			handlers.RespondServiceUnavailable(w, msgFeedUnavailable)

		default:
			h.logger.Error("GET /notifications - Failed to build feed for %s: %v", session.Key(), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, feed)
}
