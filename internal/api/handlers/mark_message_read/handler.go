package mark_message_read

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TourBookingService/internal/service/notifications"
)

const (
	msgInvalidID      = "identifiant de message invalide"
	msgMissingSession = "utilisateur non authentifié"
)

type Handler struct {
	service ReadMarker
	logger  Logger
}

func NewHandler(service ReadMarker, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/messages/{messageId}/read
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["messageId"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("POST /messages/{id}/read - Invalid ID: %s", mux.Vars(r)["messageId"])
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	if err := h.service.MarkMessageRead(r.Context(), session, id); err != nil {
		if errors.Is(err, notifications.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidID)
			return
		}
		h.logger.Error("POST /messages/{id}/read - Failed to mark read: id=%d, session=%s, error=%v", id, session.Key(), err)
		handlers.RespondInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
