package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/broadcaster"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedSource struct {
	runs    atomic.Int32
	changes []domain.OrderChange
}

// Run emits the scripted changes on the first run and fails;
// later runs block until ctx is done.
func (s *scriptedSource) Run(ctx context.Context, emit domain.OrderChangeCallback) error {
	if s.runs.Add(1) == 1 {
		for _, c := range s.changes {
			emit(c)
		}
		return errors.New("connection reset")
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestChangeFeed_DeliversAndRestarts(t *testing.T) {
	source := &scriptedSource{changes: []domain.OrderChange{
		{Type: domain.ChangeInsert, Table: "orders"},
		{Type: domain.ChangeUpdate, Table: "orders"},
	}}
	m := metrics.NewBotMetrics(prometheus.NewRegistry())
	feed := NewChangeFeed(source, broadcaster.NewOrderChangeBroadcaster(), m, logger.NewNoOp())

	received := make(chan domain.OrderChange, 4)
	unsubscribe := feed.Subscribe(func(c domain.OrderChange) { received <- c })
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChangeFeedSubscribers))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		feed.Run(ctx)
		close(done)
	}()

	for _, want := range []domain.ChangeType{domain.ChangeInsert, domain.ChangeUpdate} {
		select {
		case got := <-received:
			assert.Equal(t, want, got.Type)
		case <-time.After(time.Second):
			t.Fatal("change not delivered")
		}
	}

	require.Eventually(t, func() bool { return source.runs.Load() >= 2 }, 3*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("feed did not stop")
	}

	unsubscribe()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ChangeFeedSubscribers))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChangeFeedEventsTotal.WithLabelValues("INSERT")))
}
