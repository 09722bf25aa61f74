package httpserver

import (
	"database/sql"
	"errors"
	"time"

	"alert-srv/config"
	"alert-srv/internal/monitor"
	monitorRedis "alert-srv/internal/monitor/delivery/redis"
	"alert-srv/internal/websocket"
	"alert-srv/pkg/discord"
	"alert-srv/pkg/log"
	"alert-srv/pkg/metrics"
	"alert-srv/pkg/minio"
	pkgRedis "alert-srv/pkg/redis"
	"alert-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

const defaultShutdownTimeout = 15 * time.Second

// HTTPServer represents the HTTP server with all dependencies.
// New() only wires dependencies and validates them.
// Run() (in httpserver.go) starts background services and HTTP serving.
type HTTPServer struct {
	// Server configuration
	gin             *gin.Engine
	logger          log.Logger
	host            string
	port            int
	environment     string
	shutdownTimeout time.Duration

	// Alerting configuration
	wsConfig         config.WebSocketConfig
	monitoringConfig config.MonitoringConfig
	metricsConfig    config.MetricsConfig
	reportBucket     string

	// Auth & security
	jwtMgr scope.Manager

	// External services
	postgres *sql.DB
	redis    pkgRedis.IRedis
	minio    minio.MinIO
	discord  discord.IDiscord
	metrics  metrics.Collector

	// Runtime components, built by mapHandlers
	wsUC       websocket.UseCase
	monitorUC  monitor.UseCase
	subscriber monitorRedis.Subscriber
}

// Config is the constructor input for HTTPServer.
type Config struct {
	// Server configuration
	Host            string
	Port            int
	Mode            string
	Environment     string
	ShutdownTimeout time.Duration

	// Alerting configuration
	WSConfig   config.WebSocketConfig
	Monitoring config.MonitoringConfig
	Metrics    config.MetricsConfig

	// Auth & security
	JWTManager scope.Manager

	// External services
	Postgres *sql.DB
	Redis    pkgRedis.IRedis
	// MinIO and ReportBucket back the cash flow report action. Optional.
	MinIO        minio.MinIO
	ReportBucket string
	// Discord is optional.
	Discord   discord.IDiscord
	Collector metrics.Collector
}

// New creates a new HTTPServer instance with the provided configuration.
// It does not start any goroutines; use (*HTTPServer).Run() for that.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.Collector == nil {
		cfg.Collector = metrics.NewNop()
	}

	srv := &HTTPServer{
		gin:             gin.New(),
		logger:          logger,
		host:            cfg.Host,
		port:            cfg.Port,
		environment:     cfg.Environment,
		shutdownTimeout: cfg.ShutdownTimeout,

		wsConfig:         cfg.WSConfig,
		monitoringConfig: cfg.Monitoring,
		metricsConfig:    cfg.Metrics,
		reportBucket:     cfg.ReportBucket,

		jwtMgr: cfg.JWTManager,

		postgres: cfg.Postgres,
		redis:    cfg.Redis,
		minio:    cfg.MinIO,
		discord:  cfg.Discord,
		metrics:  cfg.Collector,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate ensures all required dependencies are provided.
func (srv *HTTPServer) validate() error {
	if srv.logger == nil {
		return errors.New("logger is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.jwtMgr == nil {
		return errors.New("JWTManager is required")
	}
	if srv.postgres == nil {
		return errors.New("Postgres connection is required")
	}
	if srv.redis == nil {
		return errors.New("Redis client is required")
	}

	return nil
}
