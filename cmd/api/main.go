package main

import (
	"context"
	"fmt"
	"time"

	"alert-srv/config"
	configMinio "alert-srv/config/minio"
	configPostgres "alert-srv/config/postgre"
	configRedis "alert-srv/config/redis"
	"alert-srv/internal/httpserver"
	"alert-srv/pkg/discord"
	"alert-srv/pkg/log"
	"alert-srv/pkg/metrics"
	"alert-srv/pkg/minio"
	"alert-srv/pkg/scope"
	"alert-srv/pkg/tracing"
)

const tracerShutdownTimeout = 5 * time.Second

// @title       Alert Service
// @description Proactive business alerting: rule evaluation, alert lifecycle, automated actions and live monitoring over WebSocket.
// @version     1.0
// @host        localhost:8080
// @schemes     http ws
// @BasePath    /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Bearer token authentication. Format: "Bearer {token}"
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config:", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
		Output:       cfg.Logger.Output,
		FilePath:     cfg.Logger.FilePath,
		MaxSizeMB:    cfg.Logger.MaxSizeMB,
		MaxBackups:   cfg.Logger.MaxBackups,
		MaxAgeDays:   cfg.Logger.MaxAgeDays,
		Compress:     cfg.Logger.Compress,
	})

	ctx := context.Background()
	logger.Info(ctx, "Starting Alert Service...")

	// Tracing
	shutdownTracer, err := tracing.NewTracerProvider(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		ServiceName: cfg.Tracing.ServiceName,
		Environment: cfg.Environment.Name,
		SampleRate:  cfg.Tracing.SampleRate,
	}, logger)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize tracing: %v", err)
		return
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
		defer cancel()
		if err := shutdownTracer(sctx); err != nil {
			logger.Errorf(ctx, "Failed to flush traces: %v", err)
		}
	}()

	// PostgreSQL - business data snapshots
	postgresDB, err := configPostgres.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
		return
	}
	defer configPostgres.Disconnect(ctx, postgresDB)
	logger.Infof(ctx, "PostgreSQL connected to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	// Redis - alert store, settings, snapshot cache and lifecycle events
	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Redis: %v", err)
		return
	}
	defer configRedis.Disconnect()
	logger.Info(ctx, "Redis client initialized")

	// MinIO - generated reports (optional)
	var storage minio.MinIO
	if cfg.MinIO.Endpoint != "" {
		storage, err = configMinio.ConnectWithRetry(ctx, cfg.MinIO, 0)
		if err != nil {
			logger.Warnf(ctx, "MinIO not available, report actions will fail: %v", err)
			storage = nil
		} else {
			defer configMinio.Disconnect(ctx)
			logger.Infof(ctx, "MinIO connected to %s", cfg.MinIO.Endpoint)
		}
	}

	// Discord webhook (optional)
	var discordClient discord.IDiscord
	if cfg.Discord.WebhookID != "" && cfg.Discord.WebhookToken != "" {
		discordClient, err = discord.NewWithConfig(logger, cfg.Discord.WebhookID, cfg.Discord.WebhookToken, discord.DefaultConfig())
		if err != nil {
			logger.Warnf(ctx, "Failed to initialize Discord webhook: %v", err)
			discordClient = nil
		} else {
			defer discordClient.Close()
			logger.Info(ctx, "Discord webhook initialized")
		}
	}

	// Metrics
	var collector metrics.Collector = metrics.NewNop()
	if cfg.Metrics.Enabled {
		prom, err := metrics.NewPrometheusCollector()
		if err != nil {
			logger.Errorf(ctx, "Failed to initialize metrics: %v", err)
			return
		}
		collector = prom
	}

	httpServer, err := httpserver.New(logger, httpserver.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		Mode:            cfg.Server.Mode,
		Environment:     cfg.Environment.Name,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,

		WSConfig:   cfg.WebSocket,
		Monitoring: cfg.Monitoring,
		Metrics:    cfg.Metrics,

		JWTManager: scope.New(cfg.JWT.SecretKey),

		Postgres:     postgresDB,
		Redis:        redisClient,
		MinIO:        storage,
		ReportBucket: cfg.MinIO.Bucket,
		Discord:      discordClient,
		Collector:    collector,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	if err := httpServer.Run(); err != nil {
		logger.Errorf(ctx, "Server stopped with error: %v", err)
	}
}
