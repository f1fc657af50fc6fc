package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidSort возвращается при некорректном поле или порядке сортировки
	ErrInvalidSort = errors.New("invalid sort")
)

// UnknownOfferTitle подставляется, когда предложение бронирования не найдено
const UnknownOfferTitle = "Offre inconnue"

// ExpiredLabel подпись для истекшего неоплаченного бронирования
const ExpiredLabel = "Expirée"

// Поля сортировки списка
const (
	SortByDate   = "date"
	SortByAmount = "montant"
	SortByID     = "id"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Request модели

// ListRequest запрос на получение списка бронирований
type ListRequest struct {
	Status      *string `json:"status,omitempty"` // Фильтр по эффективному статусу
	Search      string  `json:"search,omitempty"` // Подстрока ID или названия предложения
	ExpiredOnly bool    `json:"expiredOnly,omitempty"`
	SortBy      string  `json:"sortBy,omitempty"`    // date | montant | id
	SortOrder   string  `json:"sortOrder,omitempty"` // asc | desc
}

// Filter проверенный фильтр списка
type Filter struct {
	Status      *domain.ReservationStatus
	Search      string
	ExpiredOnly bool
	SortBy      string
	SortOrder   string
}

// ToFilter валидирует запрос и конвертирует его в фильтр
func (r *ListRequest) ToFilter() (Filter, error) {
	filter := Filter{
		Search:      strings.ToLower(strings.TrimSpace(r.Search)),
		ExpiredOnly: r.ExpiredOnly,
		SortBy:      r.SortBy,
		SortOrder:   r.SortOrder,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if filter.SortBy == "" {
		filter.SortBy = SortByDate
	}
	if filter.SortOrder == "" {
		filter.SortOrder = SortAsc
	}

	switch filter.SortBy {
	case SortByDate, SortByAmount, SortByID:
	default:
		return filter, fmt.Errorf("%w: field %q", ErrInvalidSort, filter.SortBy)
	}
	if filter.SortOrder != SortAsc && filter.SortOrder != SortDesc {
		return filter, fmt.Errorf("%w: order %q", ErrInvalidSort, filter.SortOrder)
	}

	return filter, nil
}

// Response модели

// ReservationResponse бронирование с производными полями
type ReservationResponse struct {
	ID              int64   `json:"id"`
	Status          string  `json:"statut"`          // Хранимый статус
	EffectiveStatus string  `json:"statutAffiche"`   // Статус с учетом истечения срока
	Expired         bool    `json:"expire"`          // EN_ATTENTE с истекшим сроком
	TimeRemaining   string  `json:"tempsRestant,omitempty"`
	ReservedAt      *string `json:"dateReservation,omitempty"`
	ExpiresAt       *string `json:"dateExpiration,omitempty"`
	PersonCount     int     `json:"nombrePers"`
	PricePerPerson  float64 `json:"prixParPersonne"`
	TotalAmount     float64 `json:"montantTotal"`
	UserID          int64   `json:"utilisateurId"`
	OfferID         int64   `json:"offreId"`
	OfferTitle      string  `json:"offreTitre"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
}

// StatsResponse сводка для панели управления
type StatsResponse struct {
	Total            int     `json:"total"`
	Pending          int     `json:"enAttente"`
	Confirmed        int     `json:"confirmees"`
	Cancelled        int     `json:"annulees"`
	Expired          int     `json:"expirees"` // Входят в annulees
	Unknown          int     `json:"inconnues"`
	ConfirmationRate float64 `json:"tauxConfirmation"` // Проценты, один знак после запятой
	RevenueTotal     float64 `json:"revenusTotaux"`
	RevenueMonth     float64 `json:"revenusMois"`
	RevenueWeek      float64 `json:"revenusSemaine"`
	HeldPlaces       int     `json:"placesReservees"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO на момент now
func FromDomainReservation(r *domain.Reservation, offerTitle string, now time.Time) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:              r.ID,
		Status:          string(r.Status),
		EffectiveStatus: string(r.EffectiveStatus(now)),
		Expired:         r.IsExpiredPending(now),
		PersonCount:     r.PersonCount,
		PricePerPerson:  r.PricePerPerson,
		TotalAmount:     r.TotalAmount,
		UserID:          r.UserID,
		OfferID:         r.OfferID,
		OfferTitle:      offerTitle,
	}

	if resp.OfferTitle == "" {
		resp.OfferTitle = r.OfferTitle
	}
	if resp.OfferTitle == "" {
		resp.OfferTitle = UnknownOfferTitle
	}

	if !r.ReservedAt.IsZero() {
		reservedAt := r.ReservedAt.Format(time.RFC3339)
		resp.ReservedAt = &reservedAt
	}

	if boundary, ok := r.ExpirationBoundary(); ok && r.Status == domain.ReservationPending {
		expiresAt := boundary.Format(time.RFC3339)
		resp.ExpiresAt = &expiresAt
	}

	if remaining, ok := r.TimeRemaining(now); ok {
		resp.TimeRemaining = FormatTimeRemaining(remaining)
	}

	return resp
}

// FormatTimeRemaining форматирует оставшееся время: "5h 12m restantes" или "Expirée"
func FormatTimeRemaining(d time.Duration) string {
	if d <= 0 {
		return ExpiredLabel
	}
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%dh %dm restantes", hours, minutes)
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(strings.ToUpper(strings.TrimSpace(status)))
	if s.IsValid() {
		return s, nil
	}
	return "", ErrInvalidStatus
}
