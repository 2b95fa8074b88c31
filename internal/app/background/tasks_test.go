package background

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingMenu struct{ refreshes atomic.Int32 }

func (m *countingMenu) Refresh(context.Context) error {
	m.refreshes.Add(1)
	return nil
}

type flakyDB struct{ err atomic.Value }

func (d *flakyDB) PingContext(context.Context) error {
	if v := d.err.Load(); v != nil {
		return v.(error)
	}
	return nil
}

type healthRecorder struct {
	mu     sync.Mutex
	states []bool
}

func (h *healthRecorder) SetHealthy(healthy bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.states = append(h.states, healthy)
}

func (h *healthRecorder) last() (bool, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.states) == 0 {
		return false, false
	}
	return h.states[len(h.states)-1], true
}

func TestReportSessionsUpdatesGauge(t *testing.T) {
	store := session.NewMemoryStore(time.Hour, 10)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.NewSession("psid-1")))
	require.NoError(t, store.Save(ctx, domain.NewSession("psid-2")))

	m := metrics.NewBotMetrics(prometheus.NewRegistry())
	bt := &BackgroundTasks{Sessions: store, Metrics: m, Logger: logger.NewNoOp()}
	bt.reportSessions(ctx)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ActiveSessions))
}

func TestProbeReportsHealth(t *testing.T) {
	db := &flakyDB{}
	health := &healthRecorder{}
	bt := &BackgroundTasks{DB: db, Health: health, Logger: logger.NewNoOp()}
	ctx := context.Background()

	assert.True(t, bt.probe(ctx, true))
	db.err.Store(errors.New("connection refused"))
	assert.False(t, bt.probe(ctx, true))

	got, ok := health.last()
	require.True(t, ok)
	assert.False(t, got)
}

func TestHealthProbeRunsAtStartup(t *testing.T) {
	db := &flakyDB{}
	db.err.Store(errors.New("connection refused"))
	health := &healthRecorder{}
	bt := &BackgroundTasks{DB: db, Health: health, Logger: logger.NewNoOp(), ProbeInterval: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		bt.Wait()
	}()
	bt.StartAll(ctx)

	require.Eventually(t, func() bool {
		_, probed := health.last()
		return probed
	}, time.Second, 5*time.Millisecond)
	got, _ := health.last()
	assert.False(t, got)
}

func TestStartAllStopsOnCancel(t *testing.T) {
	menu := &countingMenu{}
	health := &healthRecorder{}
	bt := &BackgroundTasks{
		Menu:          menu,
		MenuInterval:  5 * time.Millisecond,
		Sessions:      session.NewMemoryStore(time.Hour, 10),
		DB:            &flakyDB{},
		Health:        health,
		Metrics:       metrics.NewBotMetrics(prometheus.NewRegistry()),
		Logger:        logger.NewNoOp(),
		GaugeInterval: 5 * time.Millisecond,
		ProbeInterval: 5 * time.Millisecond,
	}

	ctx, cancel := context.WithCancel(context.Background())
	bt.StartAll(ctx)

	require.Eventually(t, func() bool {
		_, probed := health.last()
		return menu.refreshes.Load() >= 2 && probed
	}, time.Second, 5*time.Millisecond)

	cancel()
	done := make(chan struct{})
	go func() {
		bt.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("background tasks did not stop")
	}
}
