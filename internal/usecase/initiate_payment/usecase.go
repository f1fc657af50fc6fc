package initiate_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/backend"
)

const defaultMethod = "CARTE"

// UseCase use case для создания платежа по неоплаченному бронированию
type UseCase struct {
	backendClient BackendClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(backendClient BackendClient, logger Logger) *UseCase {
	return &UseCase{
		backendClient: backendClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания платежа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("InitiatePayment: user=%d, reservation=%d", req.Session.UserID, req.ReservationID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("InitiatePayment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	reservation, err := uc.backendClient.GetReservation(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			uc.logger.Warn("InitiatePayment: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		return nil, uc.wrapBackendError("failed to get reservation", err)
	}

	// 3. Оплатить бронирование может только его владелец
	if !reservation.BelongsTo(req.Session.UserID) {
		uc.logger.Warn("InitiatePayment: user=%d is not the owner of reservation id=%d",
			req.Session.UserID, req.ReservationID)
		return nil, ErrAccessDenied
	}

	// 4. Проверяем эффективный статус
	now := uc.timeProvider.Now()
	switch reservation.EffectiveStatus(now) {
	case domain.ReservationPending:
		// Можно оплачивать
	case domain.ReservationConfirmed:
		uc.logger.Warn("InitiatePayment: reservation id=%d already confirmed", req.ReservationID)
		return nil, ErrAlreadyConfirmed
	default:
		if reservation.IsExpiredPending(now) {
			uc.logger.Warn("InitiatePayment: reservation id=%d expired", req.ReservationID)
			return nil, ErrReservationExpired
		}
		uc.logger.Warn("InitiatePayment: reservation id=%d has status %s", req.ReservationID, reservation.Status)
		return nil, ErrReservationNotPayable
	}

	// 5. Сумма пересчитывается из количества человек и цены
	amount := domain.TotalAmount(reservation.PersonCount, reservation.PricePerPerson)
	if amount <= 0 {
		amount = reservation.TotalAmount
	}
	if amount <= 0 {
		uc.logger.Warn("InitiatePayment: reservation id=%d has no payable amount", req.ReservationID)
		return nil, ErrInvalidAmount
	}

	method := req.Method
	if method == "" {
		method = defaultMethod
	}
	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Paiement de la réservation #%d", reservation.ID)
	}

	// 6. Создаем платеж в бэкенде
	intent, err := uc.backendClient.CreatePayment(ctx, backend.CreatePaymentInput{
		Amount:        amount,
		ReservationID: reservation.ID,
		UserID:        reservation.UserID,
		Method:        method,
		Description:   description,
	})
	if err != nil {
		if errors.Is(err, backend.ErrRejected) {
			uc.logger.Warn("InitiatePayment: backend rejected payment for reservation id=%d: %v", req.ReservationID, err)
			return nil, fmt.Errorf("%w: %w", ErrRejected, err)
		}
		return nil, uc.wrapBackendError("failed to create payment", err)
	}

	boundary, _ := reservation.ExpirationBoundary()

	uc.logger.Info("InitiatePayment: payment id=%d created for reservation id=%d, amount=%.2f",
		intent.PaymentID, reservation.ID, amount)

	return &Response{
		PaymentID:     intent.PaymentID,
		ClientSecret:  intent.ClientSecret,
		ReservationID: reservation.ID,
		Amount:        amount,
		ExpiresAt:     boundary,
	}, nil
}

func (uc *UseCase) wrapBackendError(msg string, err error) error {
	uc.logger.Error("InitiatePayment: %s: %v", msg, err)
	if errors.Is(err, backend.ErrUnavailable) {
		return fmt.Errorf("%w: %s: %v", ErrBackendUnavailable, msg, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, msg, err)
}
