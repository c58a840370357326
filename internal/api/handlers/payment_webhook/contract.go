package payment_webhook

import (
	"context"

	"github.com/kovaldn/ArenaBookingService/internal/integrations/paymentgateway"
)

type WebhookParser interface {
	ParseWebhook(payload []byte, signature string) (*paymentgateway.WebhookEvent, error)
}

type PaymentService interface {
	HandleEvent(ctx context.Context, event *paymentgateway.WebhookEvent) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
