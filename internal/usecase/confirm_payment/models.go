package confirm_payment

import "github.com/m04kA/SMC-TourBookingService/internal/domain"

// Outcome результат вызова подтверждения
type Outcome string

const (
	// OutcomeConfirmed бронирование подтверждено этим вызовом
	OutcomeConfirmed Outcome = "confirmed"

	// OutcomeAlreadyConfirmed бронирование было подтверждено ранее, вызов ничего не изменил
	OutcomeAlreadyConfirmed Outcome = "already_confirmed"

	// OutcomeInProgress подтверждение выполняется другим вызовом
	OutcomeInProgress Outcome = "in_progress"
)

// Метки метрики для неуспешных вызовов
const (
	metricRejected     = "rejected"
	metricNotifyFailed = "notify_failed"
	metricError        = "error"
)

// Request модель запроса на подтверждение оплаты
type Request struct {
	Session               domain.Session
	PaymentID             int64
	ReservationID         int64
	GatewayConfirmationID string
}

// Response результат подтверждения
type Response struct {
	Outcome     Outcome
	PaymentID   int64
	Reservation *domain.Reservation // Бронирование в состоянии после вызова
}
