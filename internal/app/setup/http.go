package setup

import (
	"net"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/messenger"
)

// InitializeHTTPServer builds the webhook and admin server. The returned webhook handler
// must be drained with Wait after the server stops accepting requests.
func InitializeHTTPServer(deps *Dependencies, ucs *UseCases) (*http.Server, *handlers.WebhookHandler) {
	cfg := deps.Config
	dispatcher := messenger.NewClient(cfg.Messenger, deps.Logger, deps.Metrics)
	webhook := handlers.NewWebhookHandler(cfg.Messenger.VerifyToken, ucs.Bot, dispatcher, deps.Metrics, deps.Logger)

	changes := handlers.NewOrderChangeStreamHandler(ucs.ChangeFeed, deps.Logger)
	router := handlers.NewRouter(handlers.Handlers{
		Webhook:   webhook,
		Products:  handlers.NewProductHandler(ucs.ProductUsecase, deps.Logger),
		Orders:    handlers.NewOrderHandler(ucs.OrderUsecase, deps.Logger),
		Changes:   changes,
		Customers: handlers.NewCustomerHandler(ucs.CustomerUsecase, deps.Logger),
		Stats:     handlers.NewStatsHandler(ucs.AnalyticsUsecase, deps.Logger),
	}, deps.Registry, cfg.TracingConfig.ServiceName)

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	server.RegisterOnShutdown(changes.Close)
	return server, webhook
}
