package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Session     domain.Session // Владелец бронирования
	OfferID     int64          // ID предложения
	PersonCount int            // Количество человек
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reservation       *domain.Reservation
	EffectiveStatus   domain.ReservationStatus
	ExpiresAt         time.Time // Граница истечения неоплаченного бронирования
	RemainingCapacity int       // Остаток мест с учетом нового бронирования
}
