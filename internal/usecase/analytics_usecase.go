package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-foodbot-service/internal/usecase/dto/order"
	"github.com/shopspring/decimal"
)

const (
	DefaultSalesDays   = 7
	DefaultTopProducts = 5
)

type AnalyticsUsecase interface {
	GetOrderStats(ctx context.Context) (domain.OrderStats, error)
	GetDailySales(ctx context.Context, days int) ([]orderdto.DailySales, error)
	GetTopProducts(ctx context.Context, limit int) ([]domain.TopProduct, error)
}

// DefaultAnalyticsUsecase aggregates in process over rows fetched from the store.
// Cost grows with the number of delivered orders.
type DefaultAnalyticsUsecase struct {
	OrderRepo domain.OrderRepository
	now       func() time.Time
}

func NewDefaultAnalyticsUsecase(orderRepo domain.OrderRepository) *DefaultAnalyticsUsecase {
	return &DefaultAnalyticsUsecase{OrderRepo: orderRepo, now: time.Now}
}

func (uc *DefaultAnalyticsUsecase) GetOrderStats(ctx context.Context) (domain.OrderStats, error) {
	var stats domain.OrderStats
	var err error

	if stats.TotalOrders, err = uc.OrderRepo.CountOrders(ctx, "", time.Time{}); err != nil {
		return stats, err
	}
	if stats.TodayOrders, err = uc.OrderRepo.CountOrders(ctx, "", orderdto.StartOfDay(uc.now())); err != nil {
		return stats, err
	}
	if stats.PendingOrders, err = uc.OrderRepo.CountOrders(ctx, domain.StatusPending, time.Time{}); err != nil {
		return stats, err
	}

	delivered, err := uc.OrderRepo.DeliveredOrdersSince(ctx, time.Time{})
	if err != nil {
		return stats, err
	}
	stats.TotalRevenue = decimal.Zero
	for _, o := range delivered {
		stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
	}
	return stats, nil
}

func (uc *DefaultAnalyticsUsecase) GetDailySales(ctx context.Context, days int) ([]orderdto.DailySales, error) {
	if days <= 0 {
		days = DefaultSalesDays
	}
	since := uc.now().AddDate(0, 0, -days)
	delivered, err := uc.OrderRepo.DeliveredOrdersSince(ctx, since)
	if err != nil {
		return nil, err
	}
	return GroupDailySales(delivered, uc.now().Location()), nil
}

func (uc *DefaultAnalyticsUsecase) GetTopProducts(ctx context.Context, limit int) ([]domain.TopProduct, error) {
	if limit <= 0 {
		limit = DefaultTopProducts
	}
	items, err := uc.OrderRepo.DeliveredOrderItems(ctx)
	if err != nil {
		return nil, err
	}
	return RankTopProducts(items, limit), nil
}

// GroupDailySales sums order totals per calendar day in loc, oldest day first.
func GroupDailySales(orders []domain.OrderAmount, loc *time.Location) []orderdto.DailySales {
	type day struct {
		revenue decimal.Decimal
		orders  int
	}
	byDate := make(map[string]*day)
	for _, o := range orders {
		key := o.CreatedAt.In(loc).Format("2006-01-02")
		d, ok := byDate[key]
		if !ok {
			d = &day{revenue: decimal.Zero}
			byDate[key] = d
		}
		d.revenue = d.revenue.Add(o.TotalAmount)
		d.orders++
	}

	sales := make([]orderdto.DailySales, 0, len(byDate))
	for date, d := range byDate {
		sales = append(sales, orderdto.DailySales{Date: date, Revenue: d.revenue.StringFixed(2), Orders: d.orders})
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].Date < sales[j].Date })
	return sales
}

// RankTopProducts groups items by product name and keeps the limit best sellers by quantity.
// Ties go to the higher revenue, then to the name.
func RankTopProducts(items []domain.OrderItem, limit int) []domain.TopProduct {
	byName := make(map[string]*domain.TopProduct)
	for _, item := range items {
		p, ok := byName[item.ProductName]
		if !ok {
			p = &domain.TopProduct{Name: item.ProductName, Revenue: decimal.Zero}
			byName[item.ProductName] = p
		}
		p.Quantity += item.Quantity
		p.Revenue = p.Revenue.Add(item.TotalPrice)
	}

	ranked := make([]domain.TopProduct, 0, len(byName))
	for _, p := range byName {
		ranked = append(ranked, *p)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		if c := ranked[i].Revenue.Cmp(ranked[j].Revenue); c != 0 {
			return c > 0
		}
		return ranked[i].Name < ranked[j].Name
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
