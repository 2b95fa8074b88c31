package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
)

const streamBuffer = 64

type OrderChangeSubscriber interface {
	Subscribe(callback domain.OrderChangeCallback) func()
}

// OrderChangeStreamHandler streams order inserts, updates and deletes as server-sent events.
// A client that falls more than streamBuffer events behind loses the overflow.
type OrderChangeStreamHandler struct {
	feed      OrderChangeSubscriber
	log       *slog.Logger
	heartbeat time.Duration

	done      chan struct{}
	closeOnce sync.Once
}

func NewOrderChangeStreamHandler(feed OrderChangeSubscriber, log *slog.Logger) *OrderChangeStreamHandler {
	return &OrderChangeStreamHandler{
		feed:      feed,
		log:       log,
		heartbeat: 25 * time.Second,
		done:      make(chan struct{}),
	}
}

// Close ends every open stream. Register it with http.Server.RegisterOnShutdown:
// Shutdown does not cancel request contexts and would otherwise wait on each client.
func (h *OrderChangeStreamHandler) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

func (h *OrderChangeStreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	changes := make(chan domain.OrderChange, streamBuffer)
	unsubscribe := h.feed.Subscribe(func(change domain.OrderChange) {
		select {
		case changes <- change:
		default:
			h.log.Warn("order change dropped for slow subscriber", slog.String("event_type", string(change.Type)))
		}
	})
	defer unsubscribe()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-h.done:
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case change := <-changes:
			data, err := json.Marshal(change)
			if err != nil {
				h.log.Error("failed to encode order change", slog.String("error", err.Error()))
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", change.Type, data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
