package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopcore-dev/shopcore/internal/admin"
	"github.com/shopcore-dev/shopcore/internal/cache"
	corecfg "github.com/shopcore-dev/shopcore/internal/core/config"
	"github.com/shopcore-dev/shopcore/internal/dashboard"
	"github.com/shopcore-dev/shopcore/internal/live"
	"github.com/shopcore-dev/shopcore/internal/migrations"
	"github.com/shopcore-dev/shopcore/internal/orders"
	"github.com/shopcore-dev/shopcore/internal/products"
	"github.com/shopcore-dev/shopcore/internal/server"
	"github.com/shopcore-dev/shopcore/internal/store/postgres"
)

func main() {
	configPath := flag.String("config", "shopcore.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	// 2. Initialize Storage (PostgreSQL)
	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer dbAdapter.Close()

	// 2.1. Run Database Migrations
	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Initialize Cache and Invalidation
	cacheStore := cache.NewStore()
	coordinator := cache.NewCoordinator(cacheStore)

	// 4. Initialize Live Update Channel
	hub := live.NewHub(cfg.Live.SendBuffer)
	if cfg.Live.Enabled {
		go hub.Run(ctx)
	}

	// 5. Initialize Services
	dashboardSvc := dashboard.NewService(
		dbAdapter, dbAdapter, dbAdapter,
		cacheStore,
		cfg.Dashboard.LatestTransactions,
	)
	orderSvc := orders.NewService(dbAdapter, dbAdapter, cacheStore, coordinator)
	productSvc := products.NewService(dbAdapter, cacheStore, coordinator)

	adminSvc, err := admin.NewService(ctx, dbAdapter, hub)
	if err != nil {
		slog.Error("Failed to initialize admin service", "error", err)
		os.Exit(1)
	}

	// 6. Initialize Server and Routes
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), dbAdapter.DB(), cfg.Server.Mode)

	dashboardSvc.RegisterRoutes(srv.Engine)

	v1 := srv.Engine.Group("/v1")
	orders.NewHandler(orderSvc).RegisterRoutes(v1)
	products.NewHandler(productSvc).RegisterRoutes(v1)
	admin.NewHandler(adminSvc).RegisterRoutes(v1)

	if cfg.Live.Enabled {
		v1.GET("/live", hub.HandleWS)
	}

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
