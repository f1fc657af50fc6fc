package get_offer_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/backend"
)

// UseCase use case для расчета остатка мест по предложениям
// Результат пересчитывается при каждом вызове и никогда не кешируется
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

// Execute рассчитывает остаток мест по одному предложению
func (uc *UseCase) Execute(ctx context.Context, offerID int64) (*Availability, error) {
	uc.logger.Info("GetOfferAvailability: offer=%d", offerID)

	// 1. Валидация входных данных
	if err := validateOfferID(offerID); err != nil {
		uc.logger.Warn("GetOfferAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Параллельно получаем предложение и бронирования
	var (
		offer        *domain.Offer
		reservations []*domain.Reservation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		offer, err = uc.backendClient.GetOffer(gctx, offerID)
		return err
	})
	g.Go(func() error {
		var err error
		reservations, err = uc.backendClient.ListReservations(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			uc.logger.Warn("GetOfferAvailability: offer id=%d not found", offerID)
			return nil, ErrOfferNotFound
		}
		return nil, uc.wrapBackendError("failed to fetch offer and reservations", err)
	}

	// 3. Пересчитываем остаток
	now := uc.timeProvider.Now()
	availability := computeAvailability(offer, reservations, now)

	uc.logger.Info("GetOfferAvailability: offer=%d, nominal=%d, held=%d, remaining=%d",
		offerID, availability.NominalPlaces, availability.HeldPlaces, availability.RemainingPlaces)

	return availability, nil
}

// ExecuteAll рассчитывает остаток мест по всем предложениям
func (uc *UseCase) ExecuteAll(ctx context.Context) ([]*Availability, error) {
	uc.logger.Info("GetOfferAvailability: all offers")

	var (
		offers       []*domain.Offer
		reservations []*domain.Reservation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		offers, err = uc.backendClient.ListOffers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		reservations, err = uc.backendClient.ListReservations(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, uc.wrapBackendError("failed to fetch offers and reservations", err)
	}

	now := uc.timeProvider.Now()
	result := make([]*Availability, 0, len(offers))
	for _, offer := range offers {
		result = append(result, computeAvailability(offer, reservations, now))
	}

	uc.logger.Info("GetOfferAvailability: computed availability for %d offers", len(result))

	return result, nil
}

func (uc *UseCase) wrapBackendError(msg string, err error) error {
	if errors.Is(err, backend.ErrUnavailable) {
		uc.logger.Error("GetOfferAvailability: %s: %v", msg, err)
		return fmt.Errorf("%w: %s: %v", ErrBackendUnavailable, msg, err)
	}
	uc.logger.Error("GetOfferAvailability: %s: %v", msg, err)
	return fmt.Errorf("%w: %s: %v", ErrInternal, msg, err)
}

func computeAvailability(offer *domain.Offer, reservations []*domain.Reservation, now time.Time) *Availability {
	return &Availability{
		Offer:           offer,
		NominalPlaces:   offer.PlacesAvailable,
		HeldPlaces:      offer.HeldPlaces(reservations, now),
		RemainingPlaces: offer.RemainingCapacity(reservations, now),
		ComputedAt:      now,
	}
}
