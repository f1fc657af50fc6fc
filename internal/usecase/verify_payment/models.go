package verify_payment

import (
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/usecase/confirm_payment"
)

// Request модель запроса на проверку платежа
type Request struct {
	Session   domain.Session
	PaymentID int64
	Retry     bool // Повторить подтверждение, если состояние рассогласовано

	// GatewayConfirmationID необязателен; по умолчанию берется из журнала
	GatewayConfirmationID string
}

// Response сверка платежа и бронирования
type Response struct {
	PaymentID         int64
	ReservationID     int64
	PaymentStatus     domain.PaymentStatus
	ReservationStatus domain.ReservationStatus
	EffectiveStatus   domain.ReservationStatus
	LedgerState       domain.ConfirmationState // Пусто, если журнал не знает о платеже
	LastError         string

	// Consistent ложно, когда шлюз подтвердил оплату, а бронирование все еще EN_ATTENTE
	Consistent bool

	Retried      bool
	RetryOutcome confirm_payment.Outcome
}
