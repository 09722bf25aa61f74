package httpserver

import (
	"fmt"

	"alert-srv/internal/action"
	actionHandler "alert-srv/internal/action/handler"
	actionUsecase "alert-srv/internal/action/usecase"
	alertDiscord "alert-srv/internal/alert/delivery/discord"
	alertHTTP "alert-srv/internal/alert/delivery/http"
	alertPublisher "alert-srv/internal/alert/delivery/redis"
	alertRepository "alert-srv/internal/alert/repository/redis"
	"alert-srv/internal/alert/rule"
	alertUsecase "alert-srv/internal/alert/usecase"
	"alert-srv/internal/middleware"
	"alert-srv/internal/model"
	monitorRedis "alert-srv/internal/monitor/delivery/redis"
	monitorUsecase "alert-srv/internal/monitor/usecase"
	"alert-srv/internal/settings"
	settingsRepository "alert-srv/internal/settings/repository/redis"
	settingsUsecase "alert-srv/internal/settings/usecase"
	snapshotPostgres "alert-srv/internal/snapshot/repository/postgre"
	snapshotCache "alert-srv/internal/snapshot/repository/redis"
	snapshotUsecase "alert-srv/internal/snapshot/usecase"
	"alert-srv/internal/websocket"
	wsHTTP "alert-srv/internal/websocket/delivery/http"
	wsUsecase "alert-srv/internal/websocket/usecase"

	// Import this to execute the init function in docs.go which setups the Swagger docs.
	_ "alert-srv/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	Api = "/api/v1"
)

func (srv *HTTPServer) mapHandlers() error {
	srv.gin.Use(gin.Logger(), middleware.Recovery(srv.logger, srv.discord))

	corsConfig := middleware.DefaultCORSConfig()
	if len(srv.wsConfig.AllowedOrigins) > 0 {
		corsConfig.AllowedOrigins = srv.wsConfig.AllowedOrigins
	}
	srv.gin.Use(middleware.CORS(corsConfig))

	// Health check endpoints (no auth required)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	if srv.metricsConfig.Enabled {
		path := srv.metricsConfig.Path
		if path == "" {
			path = "/metrics"
		}
		srv.gin.GET(path, gin.WrapH(srv.metrics.Handler()))
	}

	// Swagger UI
	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Snapshots
	snapshotRepo := snapshotPostgres.New(srv.logger, srv.postgres)
	snapshotUC := snapshotUsecase.New(srv.logger, snapshotRepo,
		snapshotCache.New(srv.logger, srv.redis, srv.monitoringConfig.SnapshotCacheTTL))

	// Automated actions
	registry := action.NewRegistry()
	if err := actionHandler.Register(registry, actionHandler.Deps{
		L:         srv.logger,
		Snapshots: snapshotUC,
		Discord:   srv.discord,
		Storage:   srv.minio,
		Bucket:    srv.reportBucket,
	}); err != nil {
		return fmt.Errorf("register actions: %w", err)
	}
	actionUC := actionUsecase.New(srv.logger, registry, srv.metrics)

	// Alerts
	catalog := rule.Default()
	if err := rule.Validate(catalog, registry.Has); err != nil {
		return fmt.Errorf("validate rule catalog: %w", err)
	}
	alertOpts := alertUsecase.Options{
		Publisher: alertPublisher.New(srv.logger, srv.redis, srv.monitoringConfig.EventChannelPrefix),
		Metrics:   srv.metrics,
		AlertTTL:  srv.monitoringConfig.AlertTTL,
	}
	if srv.discord != nil {
		alertOpts.Notifier = alertDiscord.New(srv.logger, srv.discord)
	}
	alertUC := alertUsecase.New(srv.logger, alertRepository.New(srv.logger, srv.redis), catalog, snapshotUC, actionUC, alertOpts)

	// Settings
	settingsUC := settingsUsecase.New(srv.logger, settingsRepository.New(srv.logger, srv.redis), settings.Defaults{
		Interval:                srv.monitoringConfig.DefaultInterval,
		MinInterval:             srv.monitoringConfig.MinInterval,
		AutomatedActionsEnabled: srv.monitoringConfig.AutomatedActionsEnabled,
		NotifyMinSeverity:       model.Severity(srv.monitoringConfig.NotifyMinSeverity),
	})

	// Monitoring sessions
	srv.monitorUC = monitorUsecase.New(srv.logger, alertUC, monitorUsecase.Options{
		DefaultInterval:  srv.monitoringConfig.DefaultInterval,
		MinInterval:      srv.monitoringConfig.MinInterval,
		ErrorEventWindow: srv.monitoringConfig.ErrorEventWindow,
		Metrics:          srv.metrics,
	})
	srv.subscriber = monitorRedis.New(srv.logger, srv.redis, srv.monitorUC, srv.monitoringConfig.EventChannelPrefix)

	// WebSocket channel
	srv.wsUC = wsUsecase.New(srv.logger, srv.monitorUC, settingsUC, websocket.Config{
		PongWait:              srv.wsConfig.PongWait,
		PingPeriod:            srv.wsConfig.PingInterval,
		WriteWait:             srv.wsConfig.WriteWait,
		MaxMessageSize:        srv.wsConfig.MaxMessageSize,
		MaxConnections:        srv.wsConfig.MaxConnections,
		MaxConnectionsPerUser: srv.wsConfig.MaxConnectionsPerUser,
		ConnectionRateLimit:   srv.wsConfig.ConnectionRateLimit,
		RateLimitWindow:       srv.wsConfig.RateLimitWindow,
	}, srv.metrics)
	wsHandler := wsHTTP.New(srv.logger, srv.wsUC, srv.jwtMgr, wsHTTP.UpgraderConfig{
		ReadBufferSize:  srv.wsConfig.ReadBufferSize,
		WriteBufferSize: srv.wsConfig.WriteBufferSize,
		AllowedOrigins:  srv.wsConfig.AllowedOrigins,
		Environment:     srv.environment,
	})
	wsHandler.RegisterRoutes(srv.gin)

	// API routes
	mw := middleware.New(srv.logger, srv.jwtMgr)
	api := srv.gin.Group(Api)
	alertHTTP.New(srv.logger, alertUC, settingsUC, srv.discord).RegisterRoutes(api, mw)

	return nil
}
