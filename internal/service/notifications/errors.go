package notifications

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("notifications: invalid input data")

	// ErrFeedUnavailable возвращается, когда ни один цикл опроса еще не завершился успешно
	ErrFeedUnavailable = errors.New("notifications: feed unavailable")

	// ErrRegistryClosed возвращается после остановки реестра опросчиков
	ErrRegistryClosed = errors.New("notifications: registry closed")

	// ErrReadStore возвращается при ошибке хранилища прочитанных ID
	ErrReadStore = errors.New("notifications: read store error")
)
