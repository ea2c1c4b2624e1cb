package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/expensewire/report-actions/internal/config"
	"github.com/expensewire/report-actions/internal/export"
	httpserver "github.com/expensewire/report-actions/internal/interfaces/http"
	"github.com/expensewire/report-actions/internal/repository"
	"github.com/expensewire/report-actions/internal/snapshot"
	"github.com/expensewire/report-actions/pkg/database"
	"github.com/expensewire/report-actions/pkg/metrics"
	"github.com/expensewire/report-actions/pkg/utils"
)

func main() {
	// .env is optional, used for local development
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting report actions service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	exporter, err := export.NewWriter(cfg.Export.OutputDir, logger)
	if err != nil {
		logger.Fatal("Failed to initialize export writer", zap.Error(err))
	}

	collector := metrics.NewCollector(logger)

	service := snapshot.NewService(
		db,
		repository.NewReportRepository(db.DB, logger),
		repository.NewTransactionRepository(db.DB, logger),
		repository.NewPolicyRepository(db.DB, logger),
		repository.NewViolationRepository(db.DB, logger),
		repository.NewReportActionRepository(db.DB, logger),
		exporter,
		collector,
		logger,
	)

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, service, collector, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}
