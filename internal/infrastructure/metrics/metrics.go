package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BotMetrics holds every collector the bot and admin API report to.
type BotMetrics struct {
	// Webhook traffic
	WebhookEventsTotal *prometheus.CounterVec

	// Outbound replies
	RepliesSentTotal   *prometheus.CounterVec
	ReplyFailuresTotal *prometheus.CounterVec
	ReplySendDuration  prometheus.Histogram

	// Orders
	OrdersPlacedTotal       *prometheus.CounterVec
	OrdersPlacedAmountTotal *prometheus.CounterVec
	OrderPersistFailures    *prometheus.CounterVec
	OrderStatusChangesTotal *prometheus.CounterVec

	// Sessions
	ActiveSessions prometheus.Gauge

	// Change feed
	ChangeFeedSubscribers prometheus.Gauge
	ChangeFeedEventsTotal *prometheus.CounterVec

	// Menu
	MenuItems       prometheus.Gauge
	MenuRefreshFail prometheus.Counter
}

// NewBotMetrics registers the collectors on reg. Tests pass a fresh prometheus.NewRegistry().
func NewBotMetrics(reg prometheus.Registerer) *BotMetrics {
	factory := promauto.With(reg)

	return &BotMetrics{
		WebhookEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodbot_webhook_events_total",
				Help: "Webhook events received, by kind",
			},
			[]string{"kind"},
		),

		RepliesSentTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodbot_replies_sent_total",
				Help: "Replies accepted by the messaging platform",
			},
			[]string{"kind"},
		),
		ReplyFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodbot_reply_failures_total",
				Help: "Replies that could not be delivered",
			},
			[]string{"reason"},
		),
		ReplySendDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "foodbot_reply_send_duration_seconds",
				Help:    "Time spent calling the send API",
				Buckets: prometheus.DefBuckets,
			},
		),

		OrdersPlacedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodbot_orders_placed_total",
				Help: "Orders stored, by source and currency",
			},
			[]string{"source", "currency"},
		),
		OrdersPlacedAmountTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodbot_orders_placed_amount_total",
				Help: "Sum of stored order totals",
			},
			[]string{"currency"},
		),
		OrderPersistFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodbot_order_persist_failures_total",
				Help: "Orders the store refused, by failure cause",
			},
			[]string{"cause"},
		),
		OrderStatusChangesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodbot_order_status_changes_total",
				Help: "Status changes made through the admin API",
			},
			[]string{"status"},
		),

		ActiveSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "foodbot_active_sessions",
				Help: "Conversations currently in progress",
			},
		),

		ChangeFeedSubscribers: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "foodbot_change_feed_subscribers",
				Help: "Open order change subscriptions",
			},
		),
		ChangeFeedEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodbot_change_feed_events_total",
				Help: "Order changes fanned out to subscribers",
			},
			[]string{"event_type"},
		),

		MenuItems: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "foodbot_menu_items",
				Help: "Items in the cached menu",
			},
		),
		MenuRefreshFail: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "foodbot_menu_refresh_failures_total",
				Help: "Menu refreshes that fell back to the previous menu",
			},
		),
	}
}

func (m *BotMetrics) RecordWebhookEvent(kind string) {
	m.WebhookEventsTotal.WithLabelValues(kind).Inc()
}

func (m *BotMetrics) RecordReplySent(kind string, took time.Duration) {
	m.RepliesSentTotal.WithLabelValues(kind).Inc()
	m.ReplySendDuration.Observe(took.Seconds())
}

func (m *BotMetrics) RecordReplyFailure(reason string) {
	m.ReplyFailuresTotal.WithLabelValues(reason).Inc()
}

func (m *BotMetrics) RecordOrderPlaced(source, currency string, amount float64) {
	m.OrdersPlacedTotal.WithLabelValues(source, currency).Inc()
	m.OrdersPlacedAmountTotal.WithLabelValues(currency).Add(amount)
}

func (m *BotMetrics) RecordPersistFailure(cause string) {
	m.OrderPersistFailures.WithLabelValues(cause).Inc()
}

func (m *BotMetrics) RecordStatusChange(status string) {
	m.OrderStatusChangesTotal.WithLabelValues(status).Inc()
}

func (m *BotMetrics) RecordChangeEvent(eventType string) {
	m.ChangeFeedEventsTotal.WithLabelValues(eventType).Inc()
}
