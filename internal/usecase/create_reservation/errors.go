package create_reservation

import "errors"

var (
	// ErrOfferNotFound возвращается, когда предложение не найдено
	ErrOfferNotFound = errors.New("create_reservation: offer not found")

	// ErrNotEnoughPlaces возвращается, когда запрошенных мест больше, чем осталось
	ErrNotEnoughPlaces = errors.New("create_reservation: not enough places left")

	// ErrRejected возвращается, когда бэкенд отклонил бронирование
	ErrRejected = errors.New("create_reservation: rejected by backend")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrBackendUnavailable возвращается, когда бэкенд недоступен
	ErrBackendUnavailable = errors.New("create_reservation: backend unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
