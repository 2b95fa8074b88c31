package usecase

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/metrics"
)

// MenuCache is the bot's read-only view of the active products, keyed by upper-case code.
type MenuCache struct {
	repo    domain.ProductRepository
	logger  *slog.Logger
	metrics *metrics.BotMetrics

	mu       sync.RWMutex
	byCode   map[string]*domain.Product
	ordered  []*domain.Product
	fallback bool
}

func NewMenuCache(repo domain.ProductRepository, logger *slog.Logger, m *metrics.BotMetrics) *MenuCache {
	return &MenuCache{repo: repo, logger: logger, metrics: m}
}

// Refresh reloads the active products. When the store fails, a menu loaded earlier stays in
// place. With nothing loaded yet, or no active products left, the sample catalogue is used.
func (c *MenuCache) Refresh(ctx context.Context) error {
	products, err := c.repo.ListProducts(ctx, false)
	if err == nil && len(products) > 0 {
		c.set(products, false)
		c.logger.Info("menu loaded", slog.Int("items", len(products)))
		return nil
	}

	c.metrics.MenuRefreshFail.Inc()
	if err != nil {
		c.logger.Error("failed to load products",
			slog.String("cause", string(domain.FailureCauseOf(err))),
			slog.String("error", err.Error()),
		)
	} else {
		c.logger.Warn("no products found in database")
	}

	c.mu.RLock()
	loaded := c.byCode != nil && !c.fallback
	c.mu.RUnlock()
	if err == nil || !loaded {
		c.set(SampleProducts(), true)
		c.logger.Warn("using fallback menu", slog.Int("items", len(sampleProducts)))
	}
	return err
}

func (c *MenuCache) set(products []*domain.Product, fallback bool) {
	byCode := make(map[string]*domain.Product, len(products))
	ordered := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		code := domain.NormalizeCode(p.Code)
		if _, dup := byCode[code]; dup {
			continue
		}
		byCode[code] = p
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return domain.NormalizeCode(ordered[i].Code) < domain.NormalizeCode(ordered[j].Code)
	})

	c.mu.Lock()
	c.byCode = byCode
	c.ordered = ordered
	c.fallback = fallback
	c.mu.Unlock()
	c.metrics.MenuItems.Set(float64(len(ordered)))
}

// Lookup matches an exact product code, ignoring case and surrounding space.
func (c *MenuCache) Lookup(code string) (*domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byCode[domain.NormalizeCode(code)]
	return p, ok
}

// Items returns the menu ordered by code.
func (c *MenuCache) Items() []*domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*domain.Product(nil), c.ordered...)
}

func (c *MenuCache) UsingFallback() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fallback
}
