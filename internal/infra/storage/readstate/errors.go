package readstate

import "errors"

var (
	// ErrInvalidScope возвращается при пустой или некорректной области (роль + пользователь)
	ErrInvalidScope = errors.New("readstate.repository: invalid scope")

	// ErrInvalidKind возвращается при неизвестном типе набора прочитанных ID
	ErrInvalidKind = errors.New("readstate.repository: invalid kind")

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("readstate.repository: redis error")
)
