package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/festivault/festivault-backend/api/routes"
	"github.com/festivault/festivault-backend/internal/advisor"
	"github.com/festivault/festivault-backend/internal/budget"
	"github.com/festivault/festivault-backend/internal/payments"
	"github.com/festivault/festivault-backend/internal/receipts"
	"github.com/festivault/festivault-backend/internal/session"
	"github.com/festivault/festivault-backend/internal/shopper"
	"github.com/festivault/festivault-backend/internal/wallet"
	"github.com/festivault/festivault-backend/pkg/config"
	"github.com/festivault/festivault-backend/pkg/logger"
	"github.com/festivault/festivault-backend/pkg/memstore"
	"github.com/festivault/festivault-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "festivault"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "festivault",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	var snapshots session.SnapshotStore
	if cfg.Session.SnapshotDir != "" {
		fileStore, err := session.NewFileStore(cfg.Session.SnapshotDir)
		if err != nil {
			logg.Error(context.Background(), "failed to open snapshot store", err)
			os.Exit(1)
		}
		snapshots = fileStore
	}
	registry := session.NewRegistry(snapshots)

	engine := advisor.NewEngine()

	budgetService, err := budget.NewService(engine)
	if err != nil {
		logg.Error(context.Background(), "failed to create budget service", err)
		os.Exit(1)
	}
	walletService, err := wallet.NewService()
	if err != nil {
		logg.Error(context.Background(), "failed to create wallet service", err)
		os.Exit(1)
	}
	paymentService, err := payments.NewService(engine)
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}
	shopperService, err := shopper.NewService()
	if err != nil {
		logg.Error(context.Background(), "failed to create shopper service", err)
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	mtr := routes.Metrics{
		Registry: promRegistry,
		HTTP:     metrics.NewHTTPMetrics(promRegistry),
		Payments: metrics.NewPaymentMetrics(promRegistry),
	}

	handler := routes.NewRouter(cfg, logg, registry, routes.Services{
		Budget:   budgetService,
		Wallet:   walletService,
		Payments: paymentService,
		Shopper:  shopperService,
		Receipts: receipts.NewVerifier(),
	}, mtr, memstore.New())

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
