package verify_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/infra/storage/confirmation"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/backend"
	"github.com/m04kA/SMC-TourBookingService/internal/usecase/confirm_payment"
)

// UseCase ручная проверка "платеж прошел, бронирование не подтверждено" и повтор подтверждения
type UseCase struct {
	backendClient BackendClient
	ledger        ConfirmationRepository
	confirmer     PaymentConfirmer
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(backendClient BackendClient, ledger ConfirmationRepository, confirmer PaymentConfirmer, logger Logger) *UseCase {
	return &UseCase{
		backendClient: backendClient,
		ledger:        ledger,
		confirmer:     confirmer,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute сверяет статус платежа у шлюза, статус бронирования и журнал подтверждений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("VerifyPayment: payment=%d, user=%d, retry=%t", req.PaymentID, req.Session.UserID, req.Retry)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("VerifyPayment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем платеж и проверяем права доступа
	payment, err := uc.backendClient.GetPayment(ctx, req.PaymentID)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			uc.logger.Warn("VerifyPayment: payment id=%d not found", req.PaymentID)
			return nil, ErrPaymentNotFound
		}
		return nil, uc.wrapBackendError("failed to get payment", err)
	}

	if !req.Session.CanAccess(payment.UserID) {
		uc.logger.Warn("VerifyPayment: user=%d cannot verify payment id=%d", req.Session.UserID, payment.ID)
		return nil, ErrAccessDenied
	}

	// 3. Параллельно перечитываем статус шлюза, бронирование и журнал
	var (
		gatewayStatus domain.PaymentStatus
		reservation   *domain.Reservation
		entry         *domain.PaymentConfirmation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		gatewayStatus, err = uc.backendClient.GetPaymentStatus(gctx, payment.ID)
		if errors.Is(err, backend.ErrNotFound) {
			return fmt.Errorf("%w: gateway status of payment id=%d", ErrPaymentNotFound, payment.ID)
		}
		return err
	})
	g.Go(func() error {
		var err error
		reservation, err = uc.backendClient.GetReservation(gctx, payment.ReservationID)
		if errors.Is(err, backend.ErrNotFound) {
			return fmt.Errorf("%w: reservation id=%d of payment id=%d", ErrReservationNotFound, payment.ReservationID, payment.ID)
		}
		return err
	})
	g.Go(func() error {
		var err error
		entry, err = uc.ledger.GetByPaymentID(gctx, payment.ID)
		if errors.Is(err, confirmation.ErrConfirmationNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: failed to read ledger: %v", ErrInternal, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("VerifyPayment: %v", err)
			return nil, err
		}
		if errors.Is(err, ErrPaymentNotFound) || errors.Is(err, ErrReservationNotFound) {
			uc.logger.Warn("VerifyPayment: %v", err)
			return nil, err
		}
		return nil, uc.wrapBackendError("failed to fetch verification data", err)
	}

	// 4. Сверяем состояния
	now := uc.timeProvider.Now()
	resp := &Response{
		PaymentID:         payment.ID,
		ReservationID:     reservation.ID,
		PaymentStatus:     gatewayStatus,
		ReservationStatus: reservation.Status,
		EffectiveStatus:   reservation.EffectiveStatus(now),
	}
	if entry != nil {
		resp.LedgerState = entry.State
		resp.LastError = entry.LastError
	}
	resp.Consistent = !(gatewayStatus == domain.PaymentSucceeded && reservation.Status == domain.ReservationPending)

	if resp.Consistent || !req.Retry {
		if !resp.Consistent {
			uc.logger.Warn("VerifyPayment: payment id=%d succeeded but reservation id=%d is still %s",
				payment.ID, reservation.ID, reservation.Status)
		}
		return resp, nil
	}

	// 5. Повторяем подтверждение через мост
	gatewayID := strings.TrimSpace(req.GatewayConfirmationID)
	if gatewayID == "" && entry != nil {
		gatewayID = entry.GatewayConfirmationID
	}
	if gatewayID == "" {
		uc.logger.Warn("VerifyPayment: no gateway confirmation id known for payment id=%d", payment.ID)
		return nil, ErrMissingGatewayID
	}

	confirmed, err := uc.confirmer.Execute(ctx, &confirm_payment.Request{
		Session:               req.Session,
		PaymentID:             payment.ID,
		ReservationID:         reservation.ID,
		GatewayConfirmationID: gatewayID,
	})
	if err != nil {
		uc.logger.Error("VerifyPayment: retry failed for payment id=%d: %v", payment.ID, err)
		return nil, fmt.Errorf("%w: %w", ErrRetryFailed, err)
	}

	resp.Retried = true
	resp.RetryOutcome = confirmed.Outcome
	if confirmed.Outcome != confirm_payment.OutcomeInProgress {
		resp.ReservationStatus = domain.ReservationConfirmed
		resp.EffectiveStatus = domain.ReservationConfirmed
		resp.LedgerState = domain.ConfirmationConfirmed
		resp.LastError = ""
		resp.Consistent = true
	}

	uc.logger.Info("VerifyPayment: retry for payment id=%d finished with outcome %s", payment.ID, confirmed.Outcome)

	return resp, nil
}

// ListUnreconciled возвращает записи журнала, для которых бэкенд не подтвердил бронирование
func (uc *UseCase) ListUnreconciled(ctx context.Context, session domain.Session) ([]*domain.PaymentConfirmation, error) {
	if !session.IsAdmin() {
		uc.logger.Warn("VerifyPayment: user=%d is not allowed to list unreconciled payments", session.UserID)
		return nil, ErrAccessDenied
	}

	entries, err := uc.ledger.ListByState(ctx, domain.ConfirmationFailed)
	if err != nil {
		uc.logger.Error("VerifyPayment: failed to list unreconciled payments: %v", err)
		return nil, fmt.Errorf("%w: ListUnreconciled - %v", ErrInternal, err)
	}

	return entries, nil
}

func (uc *UseCase) wrapBackendError(msg string, err error) error {
	uc.logger.Error("VerifyPayment: %s: %v", msg, err)
	if errors.Is(err, backend.ErrUnavailable) {
		return fmt.Errorf("%w: %s: %v", ErrBackendUnavailable, msg, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, msg, err)
}
