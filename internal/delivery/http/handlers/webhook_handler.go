package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/LavaJover/shvark-foodbot-service/internal/delivery/http/dto/webhook"
	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-foodbot-service/internal/usecase/conversation"
)

const (
	ackBody = "EVENT_RECEIVED"

	maxWebhookBody = 1 << 20
)

type ConversationBot interface {
	HandleMessage(ctx context.Context, participantID string, msg conversation.Message) domain.OutboundMessage
	HandlePostback(ctx context.Context, participantID, payload string) domain.OutboundMessage
	HandleCart(ctx context.Context, event conversation.CartEvent) (domain.OutboundMessage, error)
}

// WebhookHandler acknowledges Messenger deliveries at once and answers them in the background.
type WebhookHandler struct {
	verifyToken string
	bot         ConversationBot
	dispatcher  domain.Dispatcher
	metrics     *metrics.BotMetrics
	log         *slog.Logger

	wg sync.WaitGroup
}

func NewWebhookHandler(verifyToken string, bot ConversationBot, dispatcher domain.Dispatcher, m *metrics.BotMetrics, log *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifyToken: verifyToken,
		bot:         bot,
		dispatcher:  dispatcher,
		metrics:     m,
		log:         log,
	}
}

// Verify answers the subscription handshake.
func (h *WebhookHandler) Verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")

	if mode != "subscribe" || token == "" || token != h.verifyToken {
		h.log.Warn("webhook verification rejected", slog.String("mode", mode))
		w.WriteHeader(http.StatusForbidden)
		return
	}

	h.log.Info("webhook verified")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(q.Get("hub.challenge")))
}

func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBody)

	var env webhook.Envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.log.Warn("webhook body too large", slog.Int64("limit", tooLarge.Limit))
			h.metrics.RecordWebhookEvent("oversized")
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		h.log.Warn("undecodable webhook body", slog.String("error", err.Error()))
		h.metrics.RecordWebhookEvent("malformed")
		w.WriteHeader(http.StatusNotFound)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	switch {
	case env.Object == webhook.ObjectPage:
		for _, entry := range env.Entry {
			if len(entry.Messaging) == 0 {
				continue
			}
			h.handleMessaging(ctx, entry.Messaging[0])
		}

	case env.Field == webhook.FieldSendCart:
		h.metrics.RecordWebhookEvent("cart")
		if env.Value == nil {
			h.log.Warn("send_cart event without value")
			break
		}
		event := cartEvent(env.Value)
		h.async(ctx, func(ctx context.Context) {
			msg, err := h.bot.HandleCart(ctx, event)
			if err != nil {
				h.log.Warn("cart event rejected",
					slog.String("participant", event.ParticipantID),
					slog.String("error", err.Error()),
				)
				return
			}
			h.dispatcher.Dispatch(ctx, event.ParticipantID, msg)
		})

	case env.Field != "":
		h.metrics.RecordWebhookEvent("other")
		h.log.Info("webhook event ignored", slog.String("field", env.Field))

	default:
		h.metrics.RecordWebhookEvent("unknown")
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(ackBody))
}

func (h *WebhookHandler) handleMessaging(ctx context.Context, event webhook.MessagingEvent) {
	psid := event.Sender.ID
	if psid == "" {
		h.log.Warn("messaging event without sender")
		return
	}

	switch {
	case event.Message != nil:
		h.metrics.RecordWebhookEvent("message")
		msg := conversation.Message{
			Text:           event.Message.Text,
			HasAttachments: len(event.Message.Attachments) > 0,
		}
		h.async(ctx, func(ctx context.Context) {
			h.dispatcher.Dispatch(ctx, psid, h.bot.HandleMessage(ctx, psid, msg))
		})

	case event.Postback != nil:
		h.metrics.RecordWebhookEvent("postback")
		payload := event.Postback.Payload
		h.async(ctx, func(ctx context.Context) {
			h.dispatcher.Dispatch(ctx, psid, h.bot.HandlePostback(ctx, psid, payload))
		})

	default:
		h.metrics.RecordWebhookEvent("unsupported")
	}
}

func (h *WebhookHandler) async(ctx context.Context, fn func(ctx context.Context)) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		fn(ctx)
	}()
}

// Wait blocks until every accepted event has been answered.
func (h *WebhookHandler) Wait() {
	h.wg.Wait()
}

func cartEvent(v *webhook.CartEnvelope) conversation.CartEvent {
	event := conversation.CartEvent{
		ParticipantID: v.Sender.ID,
		Note:          v.Order.Note,
		Source:        v.Order.Source,
	}
	for _, p := range v.Order.Products {
		event.Products = append(event.Products, conversation.CartProduct{
			Code:      p.Code,
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
			Currency:  p.Currency,
		})
	}
	return event
}
