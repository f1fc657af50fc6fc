package verify_payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("verify_payment: payment not found")

	// ErrReservationNotFound возвращается, когда бронирование платежа не найдено
	ErrReservationNotFound = errors.New("verify_payment: reservation not found")

	// ErrAccessDenied возвращается, когда платеж принадлежит другому пользователю
	ErrAccessDenied = errors.New("verify_payment: access denied")

	// ErrMissingGatewayID возвращается, когда для повтора неизвестен идентификатор подтверждения шлюза
	ErrMissingGatewayID = errors.New("verify_payment: gateway confirmation id unknown")

	// ErrRetryFailed возвращается, когда повторное подтверждение не удалось
	ErrRetryFailed = errors.New("verify_payment: retry failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("verify_payment: invalid input data")

	// ErrBackendUnavailable возвращается, когда бэкенд недоступен
	ErrBackendUnavailable = errors.New("verify_payment: backend unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("verify_payment: internal error")
)
