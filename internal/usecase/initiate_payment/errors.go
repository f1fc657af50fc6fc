package initiate_payment

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("initiate_payment: reservation not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("initiate_payment: access denied")

	// ErrAlreadyConfirmed возвращается, когда бронирование уже оплачено
	ErrAlreadyConfirmed = errors.New("initiate_payment: reservation already confirmed")

	// ErrReservationExpired возвращается, когда срок неоплаченного бронирования истек
	ErrReservationExpired = errors.New("initiate_payment: reservation expired")

	// ErrReservationNotPayable возвращается для отмененных бронирований и бронирований с неизвестным статусом
	ErrReservationNotPayable = errors.New("initiate_payment: reservation cannot be paid")

	// ErrInvalidAmount возвращается, когда сумма к оплате не положительна
	ErrInvalidAmount = errors.New("initiate_payment: invalid amount")

	// ErrRejected возвращается, когда бэкенд отклонил создание платежа
	ErrRejected = errors.New("initiate_payment: rejected by backend")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("initiate_payment: invalid input data")

	// ErrBackendUnavailable возвращается, когда бэкенд недоступен
	ErrBackendUnavailable = errors.New("initiate_payment: backend unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("initiate_payment: internal error")
)
