package httpserver

import (
	"alert-srv/internal/websocket"
	"alert-srv/pkg/errors"
	"alert-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "alert-srv"
	serviceVersion = "1.0.0"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the alerting service and its stores are healthy
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is healthy"
// @Failure 503 {object} map[string]interface{} "A dependency is down"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := srv.redis.Ping(ctx); err != nil {
		srv.logger.Warnf(ctx, "internal.httpserver.healthCheck.Redis: %v", err)
		response.HttpError(c, errors.NewServiceUnavailableHTTPError("Redis"))
		return
	}
	if err := srv.postgres.PingContext(ctx); err != nil {
		srv.logger.Warnf(ctx, "internal.httpserver.healthCheck.Postgres: %v", err)
		response.HttpError(c, errors.NewServiceUnavailableHTTPError("Postgres"))
		return
	}

	stats := websocket.HubStats{}
	if srv.wsUC != nil {
		if s, err := srv.wsUC.GetStats(ctx); err == nil {
			stats = s
		}
	}

	response.OK(c, gin.H{
		"status":              "healthy",
		"version":             serviceVersion,
		"service":             serviceName,
		"activeConnections":  stats.ActiveConnections,
		"totalTenants":       stats.TotalTenants,
		"monitoringSessions": stats.MonitoringSessions,
		"messagesSent":       stats.MessagesSent,
		"messagesFailed":     stats.MessagesFailed,
		"redis":               "connected",
		"postgres":            "connected",
	})
}

// readyCheck handles readiness check requests
// @Summary Readiness Check
// @Description Check if the alerting service is ready to serve traffic
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is ready"
// @Failure 503 {object} map[string]interface{} "Service is not ready"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := srv.redis.Ping(ctx); err != nil {
		response.HttpError(c, errors.NewServiceUnavailableHTTPError("Redis"))
		return
	}
	if err := srv.postgres.PingContext(ctx); err != nil {
		response.HttpError(c, errors.NewServiceUnavailableHTTPError("Postgres"))
		return
	}

	response.OK(c, gin.H{
		"status":   "ready",
		"version":  serviceVersion,
		"service":  serviceName,
		"redis":    "connected",
		"postgres": "connected",
	})
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the alerting service is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"version": serviceVersion,
		"service": serviceName,
	})
}
