package initiate_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/backend"
	initiatePayment "github.com/m04kA/SMC-TourBookingService/internal/usecase/initiate_payment"
)

const (
	msgInvalidRequestBody    = "corps de requête invalide"
	msgMissingSession        = "utilisateur non authentifié"
	msgInvalidInput          = "réservation invalide"
	msgReservationNotFound   = "réservation introuvable"
	msgForbidden             = "seul le titulaire de la réservation peut la payer"
	msgAlreadyConfirmed      = "réservation déjà confirmée"
	msgReservationExpired    = "réservation expirée, veuillez en créer une nouvelle"
	msgReservationNotPayable = "cette réservation ne peut pas être payée"
	msgInvalidAmount         = "montant de la réservation invalide"
	msgRejected              = "paiement refusé"
	msgBackendUnavailable    = "service de paiement indisponible, réessayez plus tard"
)

type Handler struct {
	useCase InitiatePaymentUseCase
	logger  Logger
}

func NewHandler(useCase InitiatePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("POST /payments - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req InitiatePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(session))
	if err != nil {
		switch {
		case errors.Is(err, initiatePayment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, initiatePayment.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, initiatePayment.ErrAccessDenied):
			h.logger.Warn("POST /payments - Access denied: reservation_id=%d, user_id=%d", req.ReservationID, session.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, initiatePayment.ErrAlreadyConfirmed):
			handlers.RespondConflict(w, msgAlreadyConfirmed)

		case errors.Is(err, initiatePayment.ErrReservationExpired):
			handlers.RespondConflict(w, msgReservationExpired)

		case errors.Is(err, initiatePayment.ErrReservationNotPayable):
			handlers.RespondConflict(w, msgReservationNotPayable)

		case errors.Is(err, initiatePayment.ErrInvalidAmount):
			h.logger.Warn("POST /payments - Invalid amount: reservation_id=%d", req.ReservationID)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, initiatePayment.ErrRejected):
			message, ok := backend.RejectionMessage(err)
			if !ok {
				message = msgRejected
			}
			h.logger.Warn("POST /payments - Rejected by backend: reservation_id=%d, error=%v", req.ReservationID, err)
			handlers.RespondBadRequest(w, message)

		case errors.Is(err, initiatePayment.ErrBackendUnavailable):
			h.logger.Error("POST /payments - Backend unavailable: %v", err)
			handlers.RespondBadGateway(w, msgBackendUnavailable)

		default:
			h.logger.Error("POST /payments - Failed to initiate payment: reservation_id=%d, error=%v", req.ReservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments - Payment initiated: payment_id=%d, reservation_id=%d", result.PaymentID, result.ReservationID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
