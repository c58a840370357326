package paymentgateway

// IntentRequest запрос на создание payment intent
type IntentRequest struct {
	Amount         float64 // сумма в основной валюте (не в центах)
	Currency       string
	ReservationID  int64
	TransactionRef string // внутренняя ссылка платежа, кладется в metadata
}

// Intent результат создания payment intent
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

// EventType тип нотификации платежного шлюза
type EventType string

const (
	EventPaymentSucceeded EventType = "payment_succeeded"
	EventPaymentFailed    EventType = "payment_failed"
	EventRefunded         EventType = "refunded"
	EventIgnored          EventType = "ignored"
)

// WebhookEvent нормализованная нотификация шлюза.
// Ядро сервиса видит только intent и тип события; протокольные детали
// остаются внутри этого пакета.
type WebhookEvent struct {
	Type     EventType
	IntentID string
}
