package admit_reservation

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase (хранилище, транзакция)
	ErrInternal = errors.New("admit_reservation: internal error")
)
