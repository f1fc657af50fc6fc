package get_unreconciled_payments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	verifyPayment "github.com/m04kA/SMC-TourBookingService/internal/usecase/verify_payment"
)

const (
	msgMissingSession = "utilisateur non authentifié"
	msgForbidden      = "accès réservé aux administrateurs"
)

type Handler struct {
	useCase UnreconciledLister
	logger  Logger
}

func NewHandler(useCase UnreconciledLister, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/payments/unreconciled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	entries, err := h.useCase.ListUnreconciled(r.Context(), session)
	if err != nil {
		if errors.Is(err, verifyPayment.ErrAccessDenied) {
			h.logger.Warn("GET /payments/unreconciled - Access denied: user_id=%d", session.UserID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /payments/unreconciled - Failed to list ledger: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /payments/unreconciled - %d entries", len(entries))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(entries))
}
