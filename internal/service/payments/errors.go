package payments

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж с таким intent не найден
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
