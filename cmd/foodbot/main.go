package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/app/background"
	"github.com/LavaJover/shvark-foodbot-service/internal/app/setup"
	"github.com/LavaJover/shvark-foodbot-service/internal/config"
	"github.com/LavaJover/shvark-foodbot-service/internal/delivery/grpcapi"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/telemetry"
	"github.com/joho/godotenv"
	"google.golang.org/grpc"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	appLogger := logger.New(cfg.LogConfig)
	slog.SetDefault(appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.TracingConfig)
	if err != nil {
		log.Fatalf("failed to init tracing: %v", err)
	}

	deps, err := setup.InitializeDependencies(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("failed to init dependencies: %v", err)
	}
	// Tables may already exist; a failed migration must not keep the bot offline.
	if err := migrate.RunMigrations(deps.DB, cfg.Database.MigrationsPath, appLogger); err != nil {
		appLogger.Error("migrations failed", slog.String("error", err.Error()))
	}

	ucs, err := setup.InitializeUseCases(deps)
	if err != nil {
		log.Fatalf("failed to init usecases: %v", err)
	}

	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	switch command {
	case "seed":
		err = seed(ctx, ucs, appLogger)
	case "serve":
		err = serve(ctx, cfg, deps, ucs, appLogger)
	default:
		err = errors.New("unknown command " + command + ", expected serve or seed")
	}

	tracerCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if tErr := shutdownTracer(tracerCtx); tErr != nil {
		appLogger.Warn("tracer shutdown failed", slog.String("error", tErr.Error()))
	}
	if cErr := deps.Close(); cErr != nil {
		appLogger.Warn("failed to release dependencies", slog.String("error", cErr.Error()))
	}
	if err != nil {
		log.Fatalf("%s: %v", command, err)
	}
}

func seed(ctx context.Context, ucs *setup.UseCases, logger *slog.Logger) error {
	n, err := ucs.ProductUsecase.SeedProducts(ctx)
	if err != nil {
		return err
	}
	logger.Info("sample products written", slog.Int("count", n))
	return nil
}

func serve(ctx context.Context, cfg *config.FoodbotConfig, deps *setup.Dependencies, ucs *setup.UseCases, logger *slog.Logger) error {
	if err := ucs.Menu.Refresh(ctx); err != nil {
		logger.Warn("starting with the sample menu", slog.String("error", err.Error()))
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := deps.SQLDB.PingContext(pingCtx); err != nil {
		logger.Warn("database not reachable at startup", slog.String("error", err.Error()))
	}
	cancel()

	tasks := &background.BackgroundTasks{
		Menu:         ucs.Menu,
		MenuInterval: cfg.Menu.RefreshInterval,
		Sessions:     deps.Sessions,
		DB:           deps.SQLDB,
		ChangeFeed:   ucs.ChangeFeed,
		Metrics:      deps.Metrics,
		Logger:       logger,
	}

	var grpcServer *grpc.Server
	if cfg.GRPCServer.Port != "" {
		lis, err := net.Listen("tcp", net.JoinHostPort(cfg.GRPCServer.Host, cfg.GRPCServer.Port))
		if err != nil {
			return err
		}
		grpcServer = grpc.NewServer()
		health := grpcapi.RegisterHealth(grpcServer)
		tasks.Health = health
		defer health.Shutdown()

		go func() {
			logger.Info("gRPC health server started", slog.String("addr", lis.Addr().String()))
			if err := grpcServer.Serve(lis); err != nil {
				logger.Error("gRPC server stopped", slog.String("error", err.Error()))
			}
		}()
	}

	bgCtx, stopTasks := context.WithCancel(context.Background())
	tasks.StartAll(bgCtx)

	server, webhook := setup.InitializeHTTPServer(deps, ucs)
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server started", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var err error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-serveErr:
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if sErr := server.Shutdown(shutdownCtx); sErr != nil {
		logger.Warn("http shutdown incomplete", slog.String("error", sErr.Error()))
	}
	webhook.Wait()
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	stopTasks()
	tasks.Wait()
	return err
}
