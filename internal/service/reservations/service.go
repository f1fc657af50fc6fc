package reservations

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/backend"
	"github.com/m04kA/SMC-TourBookingService/internal/service/reservations/models"
)

// Service сервис для чтения бронирований с производным статусом
type Service struct {
	backendClient BackendClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(backendClient BackendClient, logger Logger) *Service {
	return &Service{
		backendClient: backendClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// List получает бронирования, видимые сессии
// Администратор видит все бронирования, клиент только свои.
// Фильтр по статусу применяется к эффективному статусу.
func (s *Service) List(ctx context.Context, session domain.Session, req *models.ListRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("List: fetching reservations for %s", session.Key())

	filter, err := req.ToFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for %s: %v", session.Key(), err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len([]rune(filter.Search)) > domain.MaxSearchLength {
		return nil, fmt.Errorf("%w: search must not exceed %d characters", ErrInvalidInput, domain.MaxSearchLength)
	}

	// Бронирования и предложения запрашиваются одновременно
	var (
		reservations []*domain.Reservation
		offers       []*domain.Offer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reservations, err = s.backendClient.ListReservations(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		offers, err = s.backendClient.ListOffers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.wrapBackendError("List", err)
	}

	titles := make(map[int64]string, len(offers))
	for _, offer := range offers {
		titles[offer.ID] = offer.Title
	}

	now := s.timeProvider.Now()
	visible := make([]*domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r == nil || !session.CanAccess(r.UserID) {
			continue
		}
		if !matchesFilter(r, titles[r.OfferID], filter, now) {
			continue
		}
		visible = append(visible, r)
	}

	sortReservations(visible, filter.SortBy, filter.SortOrder)

	resp := &models.ReservationListResponse{
		Reservations: make([]models.ReservationResponse, 0, len(visible)),
		Total:        len(visible),
	}
	for _, r := range visible {
		resp.Reservations = append(resp.Reservations, *models.FromDomainReservation(r, titles[r.OfferID], now))
	}

	s.logger.Info("List: returning %d reservations for %s", resp.Total, session.Key())
	return resp, nil
}

// GetByID получает бронирование по ID
// Клиент может видеть только своё бронирование, администратор любое
func (s *Service) GetByID(ctx context.Context, session domain.Session, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for %s", id, session.Key())

	if id <= 0 {
		return nil, fmt.Errorf("%w: reservation id must be positive", ErrInvalidInput)
	}

	reservation, err := s.backendClient.GetReservation(ctx, id)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		return nil, s.wrapBackendError("GetByID", err)
	}

	if !session.CanAccess(reservation.UserID) {
		s.logger.Warn("GetByID: access denied for %s to reservation id=%d", session.Key(), id)
		return nil, ErrAccessDenied
	}

	// Название предложения необязательно: при ошибке используется заглушка
	title := reservation.OfferTitle
	if title == "" && reservation.OfferID > 0 {
		offer, err := s.backendClient.GetOffer(ctx, reservation.OfferID)
		if err != nil {
			s.logger.Warn("GetByID: failed to get offer id=%d for reservation id=%d: %v", reservation.OfferID, id, err)
		} else {
			title = offer.Title
		}
	}

	return models.FromDomainReservation(reservation, title, s.timeProvider.Now()), nil
}

// Stats считает сводку по эффективным статусам и выручке по успешным платежам
func (s *Service) Stats(ctx context.Context, session domain.Session) (*models.StatsResponse, error) {
	s.logger.Info("Stats: computing dashboard for %s", session.Key())

	var (
		reservations []*domain.Reservation
		payments     []*domain.Payment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reservations, err = s.backendClient.ListReservations(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.backendClient.ListPayments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.wrapBackendError("Stats", err)
	}

	now := s.timeProvider.Now()
	stats := &models.StatsResponse{}

	for _, r := range reservations {
		if r == nil || !session.CanAccess(r.UserID) {
			continue
		}
		stats.Total++

		effective := r.EffectiveStatus(now)
		switch effective {
		case domain.ReservationPending:
			stats.Pending++
		case domain.ReservationConfirmed:
			stats.Confirmed++
		case domain.ReservationCancelled:
			stats.Cancelled++
			if r.IsExpiredPending(now) {
				stats.Expired++
			}
		default:
			stats.Unknown++
		}

		if effective.HoldsSeat() && r.PersonCount > 0 {
			stats.HeldPlaces += r.PersonCount
		}
	}

	if stats.Total > 0 {
		stats.ConfirmationRate = math.Round(float64(stats.Confirmed)/float64(stats.Total)*1000) / 10
	}

	weekStart := now.Add(-7 * 24 * time.Hour)
	for _, p := range payments {
		if p == nil || !p.IsSucceeded() || !session.CanAccess(p.UserID) {
			continue
		}
		stats.RevenueTotal += p.Amount
		if p.Date.Year() == now.Year() && p.Date.Month() == now.Month() {
			stats.RevenueMonth += p.Amount
		}
		if !p.Date.Before(weekStart) && !p.Date.After(now) {
			stats.RevenueWeek += p.Amount
		}
	}
	stats.RevenueTotal = roundCents(stats.RevenueTotal)
	stats.RevenueMonth = roundCents(stats.RevenueMonth)
	stats.RevenueWeek = roundCents(stats.RevenueWeek)

	s.logger.Info("Stats: %d reservations for %s, confirmation rate %.1f%%", stats.Total, session.Key(), stats.ConfirmationRate)
	return stats, nil
}

// Вспомогательные методы

func (s *Service) wrapBackendError(op string, err error) error {
	s.logger.Error("%s: backend error: %v", op, err)
	if errors.Is(err, backend.ErrUnavailable) {
		return fmt.Errorf("%w: %s - %v", ErrBackendUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s - backend error: %v", ErrInternal, op, err)
}

func matchesFilter(r *domain.Reservation, offerTitle string, filter models.Filter, now time.Time) bool {
	if filter.Status != nil && r.EffectiveStatus(now) != *filter.Status {
		return false
	}

	if filter.ExpiredOnly && !r.IsExpiredPending(now) {
		return false
	}

	if filter.Search != "" {
		if offerTitle == "" {
			offerTitle = r.OfferTitle
		}
		inID := strings.Contains(strconv.FormatInt(r.ID, 10), filter.Search)
		inTitle := strings.Contains(strings.ToLower(offerTitle), filter.Search)
		if !inID && !inTitle {
			return false
		}
	}

	return true
}

func sortReservations(items []*domain.Reservation, sortBy, order string) {
	less := func(a, b *domain.Reservation) bool {
		switch sortBy {
		case models.SortByAmount:
			ta := domain.TotalAmount(a.PersonCount, a.PricePerPerson)
			tb := domain.TotalAmount(b.PersonCount, b.PricePerPerson)
			if ta != tb {
				return ta < tb
			}
		case models.SortByDate:
			if !a.ReservedAt.Equal(b.ReservedAt) {
				return a.ReservedAt.Before(b.ReservedAt)
			}
		}
		return a.ID < b.ID
	}

	sort.SliceStable(items, func(i, j int) bool {
		if order == models.SortDesc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
