package confirm_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	confirmPayment "github.com/m04kA/SMC-TourBookingService/internal/usecase/confirm_payment"
)

const (
	msgInvalidPaymentID     = "identifiant de paiement invalide"
	msgInvalidRequestBody   = "corps de requête invalide"
	msgMissingSession       = "utilisateur non authentifié"
	msgInvalidInput         = "réservation et confirmation de la passerelle requises"
	msgPaymentNotFound      = "paiement introuvable"
	msgReservationNotFound  = "réservation introuvable"
	msgPaymentMismatch      = "le paiement ne correspond pas à cette réservation"
	msgForbidden            = "accès refusé"
	msgPaymentNotSucceeded  = "paiement non validé par la passerelle"
	msgReservationCancelled = "réservation annulée, le paiement doit être remboursé"
	msgReservationExpired   = "réservation expirée avant la confirmation du paiement"
	msgReservationUnknown   = "statut de réservation inconnu, contactez le support"
	msgBackendNotifyFailed  = "paiement reçu, réservation toujours en attente, vérifiez le statut"
	msgBackendUnavailable   = "service de paiement indisponible, réessayez plus tard"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/{paymentId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	paymentID, err := strconv.ParseInt(mux.Vars(r)["paymentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /payments/{id}/confirm - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("POST /payments/{id}/confirm - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(session, paymentID))
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, confirmPayment.ErrPaymentNotFound):
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, confirmPayment.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, confirmPayment.ErrPaymentMismatch):
			h.logger.Warn("POST /payments/{id}/confirm - Payment mismatch: payment_id=%d, reservation_id=%d",
				paymentID, req.ReservationID)
			handlers.RespondBadRequest(w, msgPaymentMismatch)

		case errors.Is(err, confirmPayment.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, confirmPayment.ErrPaymentNotSucceeded):
			handlers.RespondConflict(w, msgPaymentNotSucceeded)

		case errors.Is(err, confirmPayment.ErrReservationCancelled):
			h.logger.Warn("POST /payments/{id}/confirm - Paid cancelled reservation: payment_id=%d, reservation_id=%d",
				paymentID, req.ReservationID)
			handlers.RespondConflict(w, msgReservationCancelled)

		case errors.Is(err, confirmPayment.ErrReservationExpired):
			h.logger.Warn("POST /payments/{id}/confirm - Paid expired reservation: payment_id=%d, reservation_id=%d",
				paymentID, req.ReservationID)
			handlers.RespondConflict(w, msgReservationExpired)

		case errors.Is(err, confirmPayment.ErrReservationUnknownState):
			handlers.RespondConflict(w, msgReservationUnknown)

		case errors.Is(err, confirmPayment.ErrBackendNotifyFailed):
			h.logger.Error("POST /payments/{id}/confirm - Payment succeeded but reservation not confirmed: payment_id=%d, reservation_id=%d, error=%v",
				paymentID, req.ReservationID, err)
			handlers.RespondBadGateway(w, msgBackendNotifyFailed)

		case errors.Is(err, confirmPayment.ErrBackendUnavailable):
			h.logger.Error("POST /payments/{id}/confirm - Backend unavailable: %v", err)
			handlers.RespondBadGateway(w, msgBackendUnavailable)

		default:
			h.logger.Error("POST /payments/{id}/confirm - Failed to confirm payment: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if result.Outcome == confirmPayment.OutcomeInProgress {
		status = http.StatusAccepted
	}

	h.logger.Info("POST /payments/{id}/confirm - payment_id=%d, reservation_id=%d, outcome=%s",
		paymentID, req.ReservationID, result.Outcome)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
