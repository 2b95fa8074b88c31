package background

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/metrics"
)

const (
	sessionGaugeInterval = time.Minute
	healthProbeInterval  = 30 * time.Second
	healthProbeTimeout   = 5 * time.Second
)

type MenuRefresher interface {
	Refresh(ctx context.Context) error
}

type SessionCounter interface {
	Len(ctx context.Context) (int, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthReporter interface {
	SetHealthy(healthy bool)
}

type ChangeFeedRunner interface {
	Run(ctx context.Context)
}

type BackgroundTasks struct {
	Menu          MenuRefresher
	MenuInterval  time.Duration
	Sessions      SessionCounter
	DB            Pinger
	Health        HealthReporter
	ChangeFeed    ChangeFeedRunner
	Metrics       *metrics.BotMetrics
	Logger        *slog.Logger
	GaugeInterval time.Duration
	ProbeInterval time.Duration

	wg sync.WaitGroup
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	if bt.GaugeInterval == 0 {
		bt.GaugeInterval = sessionGaugeInterval
	}
	if bt.ProbeInterval == 0 {
		bt.ProbeInterval = healthProbeInterval
	}

	if bt.Menu != nil && bt.MenuInterval > 0 {
		bt.spawn(ctx, bt.startMenuRefresh)
	}
	if bt.Sessions != nil {
		bt.spawn(ctx, bt.startSessionGauge)
	}
	if bt.DB != nil {
		bt.spawn(ctx, bt.startHealthProbe)
	}
	if bt.ChangeFeed != nil {
		bt.spawn(ctx, bt.ChangeFeed.Run)
	}
}

// Wait returns once every task has seen ctx cancellation.
func (bt *BackgroundTasks) Wait() {
	bt.wg.Wait()
}

func (bt *BackgroundTasks) spawn(ctx context.Context, task func(ctx context.Context)) {
	bt.wg.Add(1)
	go func() {
		defer bt.wg.Done()
		task(ctx)
	}()
}

func (bt *BackgroundTasks) startMenuRefresh(ctx context.Context) {
	ticker := time.NewTicker(bt.MenuInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// failures are logged and counted by the cache itself
			_ = bt.Menu.Refresh(ctx)
		}
	}
}

func (bt *BackgroundTasks) startSessionGauge(ctx context.Context) {
	ticker := time.NewTicker(bt.GaugeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.reportSessions(ctx)
		}
	}
}

func (bt *BackgroundTasks) reportSessions(ctx context.Context) {
	n, err := bt.Sessions.Len(ctx)
	if err != nil {
		bt.Logger.Error("failed to count sessions", slog.String("error", err.Error()))
		return
	}
	bt.Metrics.ActiveSessions.Set(float64(n))
}

func (bt *BackgroundTasks) startHealthProbe(ctx context.Context) {
	ticker := time.NewTicker(bt.ProbeInterval)
	defer ticker.Stop()

	// health starts NOT_SERVING; probe at once instead of waiting a full interval
	healthy := bt.probe(ctx, true)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			healthy = bt.probe(ctx, healthy)
		}
	}
}

func (bt *BackgroundTasks) probe(ctx context.Context, wasHealthy bool) bool {
	pingCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	err := bt.DB.PingContext(pingCtx)
	healthy := err == nil
	if !healthy && wasHealthy {
		bt.Logger.Error("database unreachable", slog.String("error", err.Error()))
	} else if healthy && !wasHealthy {
		bt.Logger.Info("database reachable again")
	}
	if bt.Health != nil {
		bt.Health.SetHealthy(healthy)
	}
	return healthy
}
