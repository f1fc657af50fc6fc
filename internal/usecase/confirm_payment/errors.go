package confirm_payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("confirm_payment: payment not found")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("confirm_payment: reservation not found")

	// ErrPaymentMismatch возвращается, когда платеж относится к другому бронированию
	ErrPaymentMismatch = errors.New("confirm_payment: payment does not belong to reservation")

	// ErrAccessDenied возвращается, когда платеж принадлежит другому пользователю
	ErrAccessDenied = errors.New("confirm_payment: access denied")

	// ErrPaymentNotSucceeded возвращается, когда шлюз не подтвердил платеж
	ErrPaymentNotSucceeded = errors.New("confirm_payment: payment not succeeded")

	// ErrReservationCancelled возвращается для отмененного бронирования
	ErrReservationCancelled = errors.New("confirm_payment: reservation cancelled")

	// ErrReservationExpired возвращается, когда срок неоплаченного бронирования истек до подтверждения
	ErrReservationExpired = errors.New("confirm_payment: reservation expired")

	// ErrReservationUnknownState возвращается для бронирования с устаревшим или неизвестным статусом
	ErrReservationUnknownState = errors.New("confirm_payment: reservation has unknown status")

	// ErrBackendNotifyFailed возвращается, когда платеж прошел, но бэкенд не подтвердил бронирование
	ErrBackendNotifyFailed = errors.New("confirm_payment: backend notification failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrBackendUnavailable возвращается, когда бэкенд недоступен
	ErrBackendUnavailable = errors.New("confirm_payment: backend unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
