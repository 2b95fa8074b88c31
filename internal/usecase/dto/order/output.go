package orderdto

import (
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
)

// DailySales is the delivered revenue of one calendar day, keyed YYYY-MM-DD.
type DailySales struct {
	Date    string `json:"date"`
	Revenue string `json:"revenue"`
	Orders  int    `json:"orders"`
}

type StatsOutput struct {
	TotalOrders   int64  `json:"total_orders"`
	TodayOrders   int64  `json:"today_orders"`
	PendingOrders int64  `json:"pending_orders"`
	TotalRevenue  string `json:"total_revenue"`
}

type TopProductOutput struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Revenue  string `json:"revenue"`
}

func NewStatsOutput(stats domain.OrderStats) StatsOutput {
	return StatsOutput{
		TotalOrders:   stats.TotalOrders,
		TodayOrders:   stats.TodayOrders,
		PendingOrders: stats.PendingOrders,
		TotalRevenue:  stats.TotalRevenue.StringFixed(2),
	}
}

func NewTopProductOutputs(products []domain.TopProduct) []TopProductOutput {
	out := make([]TopProductOutput, len(products))
	for i, p := range products {
		out[i] = TopProductOutput{Name: p.Name, Quantity: p.Quantity, Revenue: p.Revenue.StringFixed(2)}
	}
	return out
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
