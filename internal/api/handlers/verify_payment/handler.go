package verify_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	verifyPayment "github.com/m04kA/SMC-TourBookingService/internal/usecase/verify_payment"
)

const (
	msgInvalidPaymentID    = "identifiant de paiement invalide"
	msgInvalidRequestBody  = "corps de requête invalide"
	msgMissingSession      = "utilisateur non authentifié"
	msgPaymentNotFound     = "paiement introuvable"
	msgReservationNotFound = "réservation introuvable"
	msgForbidden           = "accès refusé"
	msgMissingGatewayID    = "confirmation de la passerelle inconnue, indiquez gatewayConfirmationId"
	msgRetryFailed         = "la nouvelle tentative de confirmation a échoué, réessayez plus tard"
	msgBackendUnavailable  = "service de paiement indisponible, réessayez plus tard"
)

type Handler struct {
	useCase VerifyPaymentUseCase
	logger  Logger
}

func NewHandler(useCase VerifyPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/{paymentId}/verify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	paymentID, err := strconv.ParseInt(mux.Vars(r)["paymentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /payments/{id}/verify - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("POST /payments/{id}/verify - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req VerifyPaymentRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /payments/{id}/verify - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(session, paymentID))
	if err != nil {
		switch {
		case errors.Is(err, verifyPayment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidPaymentID)

		case errors.Is(err, verifyPayment.ErrPaymentNotFound):
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, verifyPayment.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, verifyPayment.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, verifyPayment.ErrMissingGatewayID):
			h.logger.Warn("POST /payments/{id}/verify - Retry without gateway confirmation: payment_id=%d", paymentID)
			handlers.RespondConflict(w, msgMissingGatewayID)

		case errors.Is(err, verifyPayment.ErrRetryFailed):
			h.logger.Error("POST /payments/{id}/verify - Retry failed: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondBadGateway(w, msgRetryFailed)

		case errors.Is(err, verifyPayment.ErrBackendUnavailable):
			h.logger.Error("POST /payments/{id}/verify - Backend unavailable: %v", err)
			handlers.RespondBadGateway(w, msgBackendUnavailable)

		default:
			h.logger.Error("POST /payments/{id}/verify - Failed to verify payment: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.Consistent {
		h.logger.Warn("POST /payments/{id}/verify - Inconsistent pair: payment_id=%d, reservation_id=%d",
			paymentID, result.ReservationID)
	}
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
