package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/infra/storage/confirmation"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/backend"
)

// claimStaleAfter время, после которого незавершенная запись журнала считается брошенной
const claimStaleAfter = 2 * time.Minute

// UseCase мост "платеж -> бронирование": единственный переход EN_ATTENTE -> CONFIRMEE на платеж
type UseCase struct {
	backendClient BackendClient
	ledger        ConfirmationRepository
	metrics       Metrics
	timeProvider  TimeProvider
	logger        Logger
	flights       singleflight.Group
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(backendClient BackendClient, ledger ConfirmationRepository, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		backendClient: backendClient,
		ledger:        ledger,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case подтверждения оплаты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: payment=%d, reservation=%d, user=%d",
		req.PaymentID, req.ReservationID, req.Session.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmPayment: validation failed: %v", err)
		return nil, err
	}
	gatewayID := strings.TrimSpace(req.GatewayConfirmationID)

	// 2. Проверяем платеж и права доступа
	payment, err := uc.backendClient.GetPayment(ctx, req.PaymentID)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			uc.logger.Warn("ConfirmPayment: payment id=%d not found", req.PaymentID)
			return nil, ErrPaymentNotFound
		}
		return nil, uc.wrapBackendError("failed to get payment", err)
	}

	if payment.ReservationID != req.ReservationID {
		uc.logger.Warn("ConfirmPayment: payment id=%d belongs to reservation id=%d, not %d",
			payment.ID, payment.ReservationID, req.ReservationID)
		return nil, ErrPaymentMismatch
	}

	if !req.Session.CanAccess(payment.UserID) {
		uc.logger.Warn("ConfirmPayment: user=%d cannot confirm payment id=%d", req.Session.UserID, payment.ID)
		return nil, ErrAccessDenied
	}

	// 3. Повторные одновременные вызовы для одной пары схлопываются в один
	key := fmt.Sprintf("%d:%d", req.PaymentID, req.ReservationID)
	result, err, shared := uc.flights.Do(key, func() (interface{}, error) {
		return uc.confirm(context.WithoutCancel(ctx), req.PaymentID, req.ReservationID, gatewayID)
	})
	if shared {
		uc.logger.Info("ConfirmPayment: payment id=%d joined an in-flight confirmation", req.PaymentID)
	}
	if err != nil {
		uc.metrics.IncPaymentConfirmation(metricLabel(err))
		return nil, err
	}

	resp := result.(*Response)
	uc.metrics.IncPaymentConfirmation(string(resp.Outcome))

	return resp, nil
}

func (uc *UseCase) confirm(ctx context.Context, paymentID, reservationID int64, gatewayID string) (*Response, error) {
	// 1. Журнал уже знает об успешном подтверждении
	existing, err := uc.ledger.GetByPaymentID(ctx, paymentID)
	if err != nil && !errors.Is(err, confirmation.ErrConfirmationNotFound) {
		uc.logger.Error("ConfirmPayment: failed to read ledger for payment id=%d: %v", paymentID, err)
		return nil, fmt.Errorf("%w: failed to read ledger: %v", ErrInternal, err)
	}

	// 2. Получаем бронирование
	reservation, err := uc.backendClient.GetReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			uc.logger.Warn("ConfirmPayment: reservation id=%d not found", reservationID)
			return nil, ErrReservationNotFound
		}
		return nil, uc.wrapBackendError("failed to get reservation", err)
	}

	if existing != nil && existing.State == domain.ConfirmationConfirmed {
		uc.logger.Info("ConfirmPayment: payment id=%d already confirmed", paymentID)
		return alreadyConfirmed(paymentID, reservation), nil
	}

	// 3. Перепроверяем статус платежа у шлюза до любых записей в журнал
	status, err := uc.backendClient.GetPaymentStatus(ctx, paymentID)
	if err != nil {
		return nil, uc.wrapBackendError("failed to get payment status", err)
	}
	if status != domain.PaymentSucceeded {
		uc.logger.Warn("ConfirmPayment: payment id=%d has gateway status %s", paymentID, status)
		return nil, fmt.Errorf("%w: status %s", ErrPaymentNotSucceeded, status)
	}

	// 4. Проверяем состояние бронирования
	now := uc.timeProvider.Now()
	switch {
	case reservation.Status == domain.ReservationConfirmed:
		uc.record(ctx, paymentID, reservationID, gatewayID, domain.ConfirmationConfirmed, "")
		uc.logger.Info("ConfirmPayment: reservation id=%d already confirmed by backend", reservationID)
		return alreadyConfirmed(paymentID, reservation), nil

	case reservation.Status == domain.ReservationCancelled:
		uc.record(ctx, paymentID, reservationID, gatewayID, domain.ConfirmationFailed, "reservation cancelled")
		uc.logger.Warn("ConfirmPayment: reservation id=%d is cancelled", reservationID)
		return nil, ErrReservationCancelled

	case reservation.IsExpiredPending(now):
		uc.record(ctx, paymentID, reservationID, gatewayID, domain.ConfirmationFailed, "reservation expired")
		uc.logger.Warn("ConfirmPayment: reservation id=%d expired before confirmation", reservationID)
		return nil, ErrReservationExpired

	case reservation.Status != domain.ReservationPending:
		uc.logger.Warn("ConfirmPayment: reservation id=%d has status %s", reservationID, reservation.Status)
		return nil, ErrReservationUnknownState
	}

	// 5. Захватываем запись журнала
	claimed, created, err := uc.ledger.Claim(ctx, paymentID, reservationID, gatewayID)
	if err != nil {
		uc.logger.Error("ConfirmPayment: failed to claim ledger for payment id=%d: %v", paymentID, err)
		return nil, fmt.Errorf("%w: failed to claim ledger: %v", ErrInternal, err)
	}

	if !created {
		if claimed.State == domain.ConfirmationConfirmed {
			return alreadyConfirmed(paymentID, reservation), nil
		}

		reclaimed, err := uc.ledger.Reclaim(ctx, paymentID, gatewayID, now.Add(-claimStaleAfter))
		if err != nil {
			uc.logger.Error("ConfirmPayment: failed to reclaim ledger for payment id=%d: %v", paymentID, err)
			return nil, fmt.Errorf("%w: failed to reclaim ledger: %v", ErrInternal, err)
		}
		if !reclaimed {
			uc.logger.Info("ConfirmPayment: payment id=%d is being confirmed by another call", paymentID)
			return &Response{Outcome: OutcomeInProgress, PaymentID: paymentID, Reservation: reservation}, nil
		}
		uc.logger.Info("ConfirmPayment: payment id=%d reclaimed from state %s", paymentID, claimed.State)
	}

	// 6. Уведомляем бэкенд
	if err := uc.backendClient.ConfirmPayment(ctx, reservationID, gatewayID); err != nil {
		uc.logger.Error("ConfirmPayment: backend notification failed for payment id=%d, reservation id=%d: %v",
			paymentID, reservationID, err)
		if markErr := uc.ledger.MarkFailed(ctx, paymentID, err.Error()); markErr != nil {
			uc.logger.Error("ConfirmPayment: failed to mark ledger failed for payment id=%d: %v", paymentID, markErr)
		}
		return nil, fmt.Errorf("%w: %w", ErrBackendNotifyFailed, err)
	}

	// 7. Фиксируем успех
	if err := uc.ledger.MarkConfirmed(ctx, paymentID); err != nil {
		// Бэкенд идемпотентен по gatewayConfirmationId, повтор не создаст второго перехода
		uc.logger.Error("ConfirmPayment: failed to mark ledger confirmed for payment id=%d: %v", paymentID, err)
	}

	confirmed := *reservation
	confirmed.Status = domain.ReservationConfirmed

	uc.logger.Info("ConfirmPayment: reservation id=%d confirmed by payment id=%d", reservationID, paymentID)

	return &Response{Outcome: OutcomeConfirmed, PaymentID: paymentID, Reservation: &confirmed}, nil
}

func (uc *UseCase) record(ctx context.Context, paymentID, reservationID int64, gatewayID string, state domain.ConfirmationState, reason string) {
	err := uc.ledger.Record(ctx, &domain.PaymentConfirmation{
		PaymentID:             paymentID,
		ReservationID:         reservationID,
		GatewayConfirmationID: gatewayID,
		State:                 state,
		LastError:             reason,
	})
	if err != nil {
		uc.logger.Error("ConfirmPayment: failed to record %s for payment id=%d: %v", state, paymentID, err)
	}
}

func (uc *UseCase) wrapBackendError(msg string, err error) error {
	uc.logger.Error("ConfirmPayment: %s: %v", msg, err)
	if errors.Is(err, backend.ErrUnavailable) {
		return fmt.Errorf("%w: %s: %v", ErrBackendUnavailable, msg, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, msg, err)
}

func alreadyConfirmed(paymentID int64, reservation *domain.Reservation) *Response {
	confirmed := *reservation
	confirmed.Status = domain.ReservationConfirmed
	return &Response{Outcome: OutcomeAlreadyConfirmed, PaymentID: paymentID, Reservation: &confirmed}
}

func metricLabel(err error) string {
	switch {
	case errors.Is(err, ErrBackendNotifyFailed):
		return metricNotifyFailed
	case errors.Is(err, ErrBackendUnavailable), errors.Is(err, ErrInternal):
		return metricError
	default:
		return metricRejected
	}
}
