package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/tugu-digital/dots/internal/application/service"
	"github.com/tugu-digital/dots/internal/config"
	"github.com/tugu-digital/dots/internal/infrastructure/external/bpms"
	"github.com/tugu-digital/dots/internal/infrastructure/external/masterdata"
	"github.com/tugu-digital/dots/internal/infrastructure/external/mfiles"
	"github.com/tugu-digital/dots/internal/infrastructure/persistence/repository"
	"github.com/tugu-digital/dots/internal/infrastructure/persistence/sqlite"
	httpserver "github.com/tugu-digital/dots/internal/interfaces/http"
	"github.com/tugu-digital/dots/internal/wizard"
	"github.com/tugu-digital/dots/pkg/database"
	"github.com/tugu-digital/dots/pkg/utils"
)

func main() {
	// Local overrides for development; absent in deployed environments.
	_ = gotenv.Load()

	cfg, err := config.Load(configPath())
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

	logger.Info("Starting DOTS service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	// Database
	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		PingTimeout:     cfg.Database.PingTimeout,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	txManager := sqlite.NewDB(db.DB, logger)

	// Repositories
	txnRepo := repository.NewTransactionRepository(db.DB, logger)
	itemRepo := repository.NewMaterialItemRepository(db.DB, logger)
	logRepo := repository.NewTransactionLogRepository(db.DB, logger)
	attRepo := repository.NewAttachmentRepository(db.DB, logger)

	// External clients
	bpmsCfg := bpms.Config{
		BaseURL:      cfg.BPMS.BaseURL,
		ClientID:     cfg.BPMS.ClientID,
		ClientSecret: cfg.BPMS.ClientSecret,
		Timeout:      cfg.BPMS.Timeout,
	}
	tokens := bpms.NewTokenProvider(bpmsCfg, logger)
	bpmsClient := bpms.NewClient(bpmsCfg, tokens, logger)

	masterData := masterdata.NewClient(masterdata.Config{
		BaseURL:  cfg.MasterData.BaseURL,
		Timeout:  cfg.MasterData.Timeout,
		CacheTTL: cfg.MasterData.CacheTTL,
	}, tokens, logger)

	docs := mfiles.NewClient(mfiles.Config{
		BaseURL: cfg.MFiles.BaseURL,
		Timeout: cfg.MFiles.Timeout,
	}, tokens, logger)

	// Application services
	svcLogger := &zapLoggerAdapter{logger: logger}

	txnService := service.NewTransactionService(txnRepo, itemRepo, logRepo, txManager, svcLogger)
	approvalService := service.NewApprovalService(txnRepo, itemRepo, logRepo, txManager, bpmsClient, svcLogger)
	wizardStore := wizard.NewSessionStore(cfg.Wizard.SessionTTL)
	wizardService := service.NewWizardService(wizardStore, masterData, txnService, svcLogger)
	reportService := service.NewReportService(txnRepo, svcLogger)
	attachmentService := service.NewAttachmentService(
		txnRepo, attRepo, docs,
		cfg.MFiles.DocumentGroup, cfg.MFiles.DocumentClass,
		svcLogger,
	)

	// HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			RateLimit:    cfg.Server.RateLimit,
			RateBurst:    cfg.Server.RateBurst,
		},
		txnService,
		approvalService,
		wizardService,
		reportService,
		attachmentService,
		bpmsClient,
		masterData,
		svcLogger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}

func configPath() string {
	if path := os.Getenv("DOTS_CONFIG"); path != "" {
		return path
	}
	return "configs/config.yaml"
}

// zapLoggerAdapter adapts zap.Logger to the keysAndValues logger interface
// shared by the service and http layers.
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, toZapFields(keysAndValues)...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, toZapFields(keysAndValues)...)
}

func toZapFields(keysAndValues []interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keysAndValues[i])
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
