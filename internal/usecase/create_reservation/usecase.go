package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/backend"
)

// Результаты создания бронирования для метрик
const (
	resultCreated      = "created"
	resultNoPlaces     = "not_enough_places"
	resultRejected     = "rejected"
	resultBackendError = "error"
)

// UseCase use case для создания бронирования
type UseCase struct {
	backendClient BackendClient
	metrics       Metrics
	ttl           time.Duration
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
// ttl задает dateExpiration нового бронирования
func NewUseCase(backendClient BackendClient, metrics Metrics, ttl time.Duration, logger Logger) *UseCase {
	if ttl <= 0 {
		ttl = domain.ReservationTTL
	}
	return &UseCase{
		backendClient: backendClient,
		metrics:       metrics,
		ttl:           ttl,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Вместимость проверяется по свежим данным до отправки в бэкенд; итоговое решение за бэкендом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, offer=%d, persons=%d",
		req.Session.UserID, req.OfferID, req.PersonCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем предложение и все бронирования
	var (
		offer        *domain.Offer
		reservations []*domain.Reservation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		offer, err = uc.backendClient.GetOffer(gctx, req.OfferID)
		return err
	})
	g.Go(func() error {
		var err error
		reservations, err = uc.backendClient.ListReservations(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			uc.logger.Warn("CreateReservation: offer id=%d not found", req.OfferID)
			return nil, ErrOfferNotFound
		}
		uc.metrics.IncReservationCreated(resultBackendError)
		return nil, uc.wrapBackendError("failed to fetch offer and reservations", err)
	}

	// 3. Получаем текущее время
	now := uc.timeProvider.Now()

	// 4. Проверяем остаток мест; запрос сверх остатка отклоняется, а не урезается
	remaining := offer.RemainingCapacity(reservations, now)
	if req.PersonCount > remaining {
		uc.logger.Warn("CreateReservation: not enough places on offer id=%d: requested=%d, remaining=%d",
			req.OfferID, req.PersonCount, remaining)
		uc.metrics.IncReservationCreated(resultNoPlaces)
		return nil, fmt.Errorf("%w: requested %d, remaining %d", ErrNotEnoughPlaces, req.PersonCount, remaining)
	}

	// 5. Формируем бронирование; montantTotal всегда пересчитывается на сервере
	expiresAt := now.Add(uc.ttl)
	reservation := &domain.Reservation{
		Status:         domain.ReservationPending,
		ReservedAt:     now,
		ExpiresAt:      &expiresAt,
		PersonCount:    req.PersonCount,
		PricePerPerson: offer.PricePerPerson,
		TotalAmount:    domain.TotalAmount(req.PersonCount, offer.PricePerPerson),
		UserID:         req.Session.UserID,
		OfferID:        offer.ID,
		OfferTitle:     offer.Title,
	}

	// 6. Создаем бронирование в бэкенде
	created, err := uc.backendClient.CreateReservation(ctx, reservation)
	if err != nil {
		if errors.Is(err, backend.ErrRejected) {
			uc.logger.Warn("CreateReservation: backend rejected reservation for offer id=%d: %v", req.OfferID, err)
			uc.metrics.IncReservationCreated(resultRejected)
			return nil, fmt.Errorf("%w: %w", ErrRejected, err)
		}
		uc.metrics.IncReservationCreated(resultBackendError)
		return nil, uc.wrapBackendError("failed to create reservation", err)
	}

	if created.OfferTitle == "" {
		created.OfferTitle = offer.Title
	}
	if created.ExpiresAt == nil && created.ReservedAt.IsZero() {
		// Бэкенд не вернул даты: граница считается от отправленных значений
		created.ReservedAt = reservation.ReservedAt
		created.ExpiresAt = reservation.ExpiresAt
	}

	// 7. Пересчитываем остаток с учетом нового бронирования
	boundary, _ := created.ExpirationBoundary()
	remainingAfter := offer.RemainingCapacity(append(reservations, created), now)

	uc.metrics.IncReservationCreated(resultCreated)
	uc.logger.Info("CreateReservation: reservation id=%d created, user=%d, offer=%d, total=%.2f, remaining=%d",
		created.ID, req.Session.UserID, req.OfferID, created.TotalAmount, remainingAfter)

	return &Response{
		Reservation:       created,
		EffectiveStatus:   created.EffectiveStatus(now),
		ExpiresAt:         boundary,
		RemainingCapacity: remainingAfter,
	}, nil
}

func (uc *UseCase) wrapBackendError(msg string, err error) error {
	uc.logger.Error("CreateReservation: %s: %v", msg, err)
	if errors.Is(err, backend.ErrUnavailable) {
		return fmt.Errorf("%w: %s: %v", ErrBackendUnavailable, msg, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, msg, err)
}
