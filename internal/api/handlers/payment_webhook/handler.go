package payment_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/kovaldn/ArenaBookingService/internal/api/handlers"
	"github.com/kovaldn/ArenaBookingService/internal/integrations/paymentgateway"
	"github.com/kovaldn/ArenaBookingService/internal/service/payments"
)

const (
	msgInvalidPayload   = "некорректное тело нотификации"
	msgInvalidSignature = "неверная подпись нотификации"

	// Stripe ограничивает размер нотификации; лимит с запасом
	maxPayloadBytes = 1 << 16
)

type Handler struct {
	parser  WebhookParser
	service PaymentService
	logger  Logger
}

func NewHandler(parser WebhookParser, service PaymentService, logger Logger) *Handler {
	return &Handler{
		parser:  parser,
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
// Шлюз повторяет доставку при не-2xx ответе, поэтому обработка событий
// идемпотентна, а неизвестный intent отвечает 200, чтобы не зациклить retry.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Failed to read payload: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}
	defer r.Body.Close()

	event, err := h.parser.ParseWebhook(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Signature verification failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSignature)
		return
	}

	if event.Type == paymentgateway.EventIgnored {
		handlers.RespondJSON(w, http.StatusOK, nil)
		return
	}

	if err := h.service.HandleEvent(r.Context(), event); err != nil {
		if errors.Is(err, payments.ErrPaymentNotFound) {
			// Intent не из этого сервиса: подтверждаем доставку, чтобы шлюз
			// не повторял её бесконечно
			h.logger.Warn("POST /payments/webhook - Unknown intent: intent=%s, type=%s",
				event.IntentID, event.Type)
			handlers.RespondJSON(w, http.StatusOK, nil)
			return
		}

		h.logger.Error("POST /payments/webhook - Failed to handle event: intent=%s, type=%s, error=%v",
			event.IntentID, event.Type, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /payments/webhook - Event processed: intent=%s, type=%s", event.IntentID, event.Type)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
