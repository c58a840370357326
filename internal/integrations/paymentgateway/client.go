package paymentgateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/refund"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент платежного шлюза (Stripe).
// Для ядра сервиса шлюз непрозрачен: наружу отдаются только intent ID
// и нормализованные webhook-события.
type Client struct {
	webhookSecret string
	log           Logger
}

// NewClient создает клиент платежного шлюза
func NewClient(secretKey, webhookSecret string, log Logger) *Client {
	// Stripe SDK использует глобальный ключ
	stripe.Key = secretKey

	return &Client{
		webhookSecret: webhookSecret,
		log:           log,
	}
}

// CreateIntent создает payment intent на сумму платежа.
// Сумма конвертируется в минимальные единицы валюты (центы).
func (c *Client) CreateIntent(ctx context.Context, req *IntentRequest) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(req.Amount*100 + 0.5)),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"reservation_id":  fmt.Sprintf("%d", req.ReservationID),
			"transaction_ref": req.TransactionRef,
		},
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateIntent, err)
	}

	c.log.Info("PaymentGateway: created intent %s for reservation=%d amount=%.2f %s",
		pi.ID, req.ReservationID, req.Amount, req.Currency)

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

// CreateRefund инициирует возврат по intent. Подтверждение возврата придет
// асинхронно через webhook, который и отменит бронирование.
func (c *Client) CreateRefund(ctx context.Context, intentID string) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(intentID),
	}
	params.Context = ctx

	if _, err := refund.New(params); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateRefund, err)
	}

	c.log.Info("PaymentGateway: refund requested for intent %s", intentID)
	return nil
}

// ParseWebhook проверяет подпись нотификации и нормализует событие.
// Неизвестные типы событий возвращаются как EventIgnored, а не как ошибка.
func (c *Client) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, c.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: signature verification failed: %v", ErrInvalidWebhook, err)
	}

	switch event.Type {
	case "payment_intent.succeeded":
		intentID, err := intentIDFromEvent(event)
		if err != nil {
			return nil, err
		}
		return &WebhookEvent{Type: EventPaymentSucceeded, IntentID: intentID}, nil

	case "payment_intent.payment_failed":
		intentID, err := intentIDFromEvent(event)
		if err != nil {
			return nil, err
		}
		return &WebhookEvent{Type: EventPaymentFailed, IntentID: intentID}, nil

	case "charge.refunded":
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			return nil, fmt.Errorf("%w: failed to decode charge: %v", ErrInvalidWebhook, err)
		}
		if charge.PaymentIntent == nil {
			return nil, fmt.Errorf("%w: refunded charge without payment intent", ErrInvalidWebhook)
		}
		return &WebhookEvent{Type: EventRefunded, IntentID: charge.PaymentIntent.ID}, nil

	default:
		c.log.Info("PaymentGateway: ignoring webhook event type %s", event.Type)
		return &WebhookEvent{Type: EventIgnored}, nil
	}
}

func intentIDFromEvent(event stripe.Event) (string, error) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return "", fmt.Errorf("%w: failed to decode payment intent: %v", ErrInvalidWebhook, err)
	}
	if pi.ID == "" {
		return "", fmt.Errorf("%w: event without payment intent id", ErrInvalidWebhook)
	}
	return pi.ID, nil
}
