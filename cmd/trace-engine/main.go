package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/farmchainx/trace-engine/config"
	"github.com/farmchainx/trace-engine/internal/auth"
	"github.com/farmchainx/trace-engine/internal/ledger"
	"github.com/farmchainx/trace-engine/internal/reconcile"
	"github.com/farmchainx/trace-engine/internal/remote"
	"github.com/farmchainx/trace-engine/internal/snapshot"
	"github.com/farmchainx/trace-engine/internal/store"
	"github.com/farmchainx/trace-engine/internal/trace"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger := newLogger(cfg)
	defer appLogger.Sync()

	// 3. Open Snapshot Database
	db, err := snapshot.OpenSQLite(cfg.Snapshot.Path)
	if err != nil {
		appLogger.Fatal("Could not open snapshot database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Opened snapshot database", zap.String("path", cfg.Snapshot.Path))

	snapshots, err := snapshot.NewSQLiteStore(db, cfg.Snapshot.Key)
	if err != nil {
		appLogger.Fatal("Could not initialize snapshot store", zap.Error(err))
	}

	// 4. Initialize Domain Store
	domainStore := store.New(snapshots, appLogger)
	if err := domainStore.Load(context.Background()); err != nil {
		appLogger.Fatal("Could not load domain state", zap.Error(err))
	}

	// 5. Initialize Remote Clients
	backendClient := remote.NewClient(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second)
	aiClient := remote.NewAIClient(cfg.AI.BaseURL, time.Duration(cfg.AI.TimeoutSeconds)*time.Second)

	// 5.5 Initialize Kafka Publisher
	var eventPublisher trace.EventPublisher
	if cfg.Kafka.Enabled {
		writer := ledger.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		publisher := ledger.NewPublisher(writer, appLogger)
		defer publisher.Close()
		eventPublisher = publisher
		appLogger.Info("Connected to Kafka Producer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// 6. Initialize Services
	traceService := trace.NewService(domainStore, backendClient, aiClient, eventPublisher, appLogger)
	authService := auth.NewService(domainStore, backendClient, appLogger)
	appLogger.Info("Services ready",
		zap.Int("crops", len(traceService.Crops())),
		zap.Bool("session", authService.Session() != nil),
	)

	// 6.5 Initialize Refresher
	refresher := reconcile.NewRefresher(domainStore, backendClient, reconcile.NewMapper(), appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := refresher.Refresh(ctx); err != nil {
		appLogger.Warn("Initial inventory refresh failed", zap.Error(err))
	}
	if err := refresher.RefreshUsers(ctx); err != nil {
		appLogger.Warn("Initial user refresh failed", zap.Error(err))
	}

	go refreshLoop(ctx, refresher, time.Duration(cfg.Backend.RefreshSeconds)*time.Second, appLogger)

	appLogger.Info("Trace engine started", zap.String("env", cfg.Server.AppEnv))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	cancel()
	appLogger.Info("Stopped")
}

func refreshLoop(ctx context.Context, refresher *reconcile.Refresher, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := refresher.Refresh(ctx); err != nil {
				logger.Warn("Inventory refresh failed", zap.Error(err))
			}
		}
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Encoding = cfg.Logger.Encoding
	zapCfg.DisableCaller = cfg.Logger.DisableCaller
	zapCfg.DisableStacktrace = cfg.Logger.DisableStacktrace

	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if level, err := zapcore.ParseLevel(cfg.Logger.Level); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	logger, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	return logger
}
