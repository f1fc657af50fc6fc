package initiate_payment

import (
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// Request модель запроса на создание платежа
type Request struct {
	Session       domain.Session
	ReservationID int64
	Method        string // Способ оплаты, например "CARTE"
	Description   string // Необязательное описание
}

// Response данные для шага оплаты на стороне клиента
type Response struct {
	PaymentID     int64
	ClientSecret  string
	ReservationID int64
	Amount        float64
	ExpiresAt     time.Time // Оплатить нужно до этого момента
}
