package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Handlers struct {
	Webhook   *WebhookHandler
	Products  *ProductHandler
	Orders    *OrderHandler
	Changes   *OrderChangeStreamHandler
	Customers *CustomerHandler
	Stats     *StatsHandler
}

// NewRouter mounts the webhook, the admin API and the service endpoints, traced with otelhttp.
func NewRouter(h Handlers, gatherer prometheus.Gatherer, serviceName string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", Health)
	mux.HandleFunc("GET /privacy", Privacy)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	mux.HandleFunc("GET /webhook", h.Webhook.Verify)
	mux.HandleFunc("POST /webhook", h.Webhook.Receive)

	mux.HandleFunc("GET /api/products", h.Products.List)
	mux.HandleFunc("POST /api/products", h.Products.Create)
	mux.HandleFunc("PUT /api/products/{id}", h.Products.Update)
	mux.HandleFunc("DELETE /api/products/{id}", h.Products.Delete)

	mux.HandleFunc("GET /api/orders", h.Orders.List)
	mux.HandleFunc("GET /api/orders/changes", h.Changes.Stream)
	mux.HandleFunc("GET /api/orders/{id}", h.Orders.Get)
	mux.HandleFunc("PATCH /api/orders/{id}/status", h.Orders.UpdateStatus)

	mux.HandleFunc("GET /api/customers", h.Customers.List)

	mux.HandleFunc("GET /api/stats", h.Stats.Overview)
	mux.HandleFunc("GET /api/stats/daily-sales", h.Stats.DailySales)
	mux.HandleFunc("GET /api/stats/top-products", h.Stats.TopProducts)

	return otelhttp.NewHandler(mux, serviceName)
}
