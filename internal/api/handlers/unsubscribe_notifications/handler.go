package unsubscribe_notifications

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TourBookingService/internal/service/notifications"
)

const (
	msgMissingSession = "utilisateur non authentifié"
	msgInvalidSession = "session invalide"
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

// Handle DELETE /api/v1/notifications/subscription
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	if err := h.service.Unsubscribe(session); err != nil {
		if errors.Is(err, notifications.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidSession)
			return
		}
		h.logger.Error("DELETE /notifications/subscription - Failed for %s: %v", session.Key(), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /notifications/subscription - %s unsubscribed", session.Key())
	w.WriteHeader(http.StatusNoContent)
}
