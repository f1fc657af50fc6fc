package get_offer_availability

import "errors"

var (
	// ErrOfferNotFound возвращается, когда предложение не найдено
	ErrOfferNotFound = errors.New("get_offer_availability: offer not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_offer_availability: invalid input data")

	// ErrBackendUnavailable возвращается, когда бэкенд недоступен
	ErrBackendUnavailable = errors.New("get_offer_availability: backend unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_offer_availability: internal error")
)
