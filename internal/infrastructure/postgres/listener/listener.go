package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/lib/pq"
)

// Channel is the NOTIFY channel the orders trigger writes to.
const Channel = "order_changes"

const pingInterval = 90 * time.Second

// OrderListener feeds order changes from LISTEN/NOTIFY on a dedicated connection.
type OrderListener struct {
	dsn    string
	logger *slog.Logger
}

func NewOrderListener(dsn string, logger *slog.Logger) *OrderListener {
	return &OrderListener{dsn: dsn, logger: logger}
}

func (l *OrderListener) Run(ctx context.Context, emit domain.OrderChangeCallback) error {
	listener := pq.NewListener(l.dsn, time.Second, time.Minute, l.reportEvent)
	defer listener.Close()

	if err := listener.Listen(Channel); err != nil {
		return fmt.Errorf("listen %s: %w", Channel, err)
	}
	l.logger.Info("listening for order changes", slog.String("channel", Channel))

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-listener.Notify:
			// nil after a reconnect; changes made while disconnected are not replayed.
			if n == nil {
				continue
			}
			change, err := ParseNotification(n.Extra)
			if err != nil {
				l.logger.Warn("skipping malformed order notification", slog.String("error", err.Error()))
				continue
			}
			emit(change)
		case <-ticker.C:
			if err := listener.Ping(); err != nil {
				l.logger.Warn("order listener ping failed", slog.String("error", err.Error()))
			}
		}
	}
}

func (l *OrderListener) reportEvent(event pq.ListenerEventType, err error) {
	switch event {
	case pq.ListenerEventConnectionAttemptFailed, pq.ListenerEventDisconnected:
		if err != nil {
			l.logger.Warn("order listener connection problem", slog.String("error", err.Error()))
		}
	case pq.ListenerEventReconnected:
		l.logger.Info("order listener reconnected")
	}
}

// ParseNotification decodes the trigger payload. JSON null for new/old is read as absent.
func ParseNotification(payload string) (domain.OrderChange, error) {
	var change domain.OrderChange
	if err := json.Unmarshal([]byte(payload), &change); err != nil {
		return domain.OrderChange{}, err
	}
	switch change.Type {
	case domain.ChangeInsert, domain.ChangeUpdate, domain.ChangeDelete:
	default:
		return domain.OrderChange{}, fmt.Errorf("unknown change type %q", change.Type)
	}
	if string(change.New) == "null" {
		change.New = nil
	}
	if string(change.Old) == "null" {
		change.Old = nil
	}
	if change.OccurredAt.IsZero() {
		change.OccurredAt = time.Now().UTC()
	}
	return change, nil
}
