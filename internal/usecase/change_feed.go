package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/broadcaster"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/metrics"
)

const (
	minRestartDelay = time.Second
	maxRestartDelay = time.Minute
)

// ChangeFeed pumps one change source into the broadcaster and hands out subscriptions.
// There is no replay: a subscriber sees only changes published after it subscribed.
type ChangeFeed struct {
	source      domain.OrderChangeSource
	broadcaster *broadcaster.OrderChangeBroadcaster
	metrics     *metrics.BotMetrics
	logger      *slog.Logger
}

func NewChangeFeed(source domain.OrderChangeSource, b *broadcaster.OrderChangeBroadcaster, m *metrics.BotMetrics, logger *slog.Logger) *ChangeFeed {
	return &ChangeFeed{source: source, broadcaster: b, metrics: m, logger: logger}
}

// Subscribe calls callback for every order insert, update and delete until the returned func is called.
func (f *ChangeFeed) Subscribe(callback domain.OrderChangeCallback) func() {
	unsubscribe := f.broadcaster.Subscribe(callback)
	f.metrics.ChangeFeedSubscribers.Set(float64(f.broadcaster.Subscribers()))
	return func() {
		unsubscribe()
		f.metrics.ChangeFeedSubscribers.Set(float64(f.broadcaster.Subscribers()))
	}
}

// Run blocks until ctx is done, restarting the source with a growing delay when it stops.
func (f *ChangeFeed) Run(ctx context.Context) {
	delay := minRestartDelay
	for {
		started := time.Now()
		err := f.source.Run(ctx, f.publish)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			f.logger.Error("order change source stopped", slog.String("error", err.Error()))
		}
		if time.Since(started) > maxRestartDelay {
			delay = minRestartDelay
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay *= 2
		if delay > maxRestartDelay {
			delay = maxRestartDelay
		}
	}
}

func (f *ChangeFeed) publish(change domain.OrderChange) {
	f.metrics.RecordChangeEvent(string(change.Type))
	f.broadcaster.Broadcast(change)
}
