package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound возвращается, когда бэкенд ответил 404
	ErrNotFound = errors.New("backend client: resource not found")

	// ErrRejected возвращается, когда бэкенд отклонил запрос (400, 409, 422)
	ErrRejected = errors.New("backend client: request rejected")

	// ErrUnavailable возвращается при сетевой ошибке или ответе 5xx
	ErrUnavailable = errors.New("backend client: backend unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от бэкенда
	ErrInvalidResponse = errors.New("backend client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("backend client: internal error")
)

// RejectedError отказ бэкенда с его сообщением для пользователя
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%v: status %d: %s", ErrRejected, e.StatusCode, e.Message)
}

func (e *RejectedError) Unwrap() error {
	return ErrRejected
}

// RejectionMessage извлекает сообщение бэкенда из цепочки ошибок
func RejectionMessage(err error) (string, bool) {
	var rejected *RejectedError
	if errors.As(err, &rejected) && rejected.Message != "" {
		return rejected.Message, true
	}
	return "", false
}
