package paymentgateway

import "errors"

var (
	// ErrCreateIntent возвращается при ошибке создания payment intent
	ErrCreateIntent = errors.New("paymentgateway: failed to create payment intent")

	// ErrCreateRefund возвращается при ошибке создания возврата
	ErrCreateRefund = errors.New("paymentgateway: failed to create refund")

	// ErrInvalidWebhook возвращается при некорректной или неподписанной
	// нотификации от шлюза
	ErrInvalidWebhook = errors.New("paymentgateway: invalid webhook payload")
)
