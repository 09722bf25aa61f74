package usecase

import (
	"time"

	"alert-srv/internal/monitor"
	"alert-srv/internal/settings"
	ws "alert-srv/internal/websocket"
	"alert-srv/pkg/log"
	"alert-srv/pkg/metrics"

	"github.com/google/uuid"
)

const (
	defaultPongWait       = 60 * time.Second
	defaultWriteWait      = 10 * time.Second
	defaultMaxMessageSize = 4096
	defaultSendBufferSize = 256
)

// implUseCase implements websocket.UseCase.
type implUseCase struct {
	hub      *Hub
	logger   log.Logger
	monitor  monitor.UseCase
	settings settings.UseCase
	limiter  *connectionLimiter
	cfg      ws.Config
	clock    func() time.Time
	newID    func() string
}

var _ ws.UseCase = &implUseCase{}

// New creates a new WebSocket UseCase.
func New(logger log.Logger, monitorUC monitor.UseCase, settingsUC settings.UseCase, cfg ws.Config, rec metrics.Recorder) ws.UseCase {
	return newUseCase(logger, monitorUC, settingsUC, cfg, rec)
}

func newUseCase(logger log.Logger, monitorUC monitor.UseCase, settingsUC settings.UseCase, cfg ws.Config, rec metrics.Recorder) *implUseCase {
	if cfg.PongWait <= 0 {
		cfg.PongWait = defaultPongWait
	}
	if cfg.PingPeriod <= 0 || cfg.PingPeriod >= cfg.PongWait {
		cfg.PingPeriod = cfg.PongWait * 9 / 10
	}
	if cfg.WriteWait <= 0 {
		cfg.WriteWait = defaultWriteWait
	}
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = defaultMaxMessageSize
	}
	if cfg.SendBufferSize <= 0 {
		cfg.SendBufferSize = defaultSendBufferSize
	}
	if rec == nil {
		rec = metrics.NewNop()
	}
	return &implUseCase{
		hub:      newHub(logger, cfg.MaxConnections, rec),
		logger:   logger,
		monitor:  monitorUC,
		settings: settingsUC,
		limiter:  newConnectionLimiter(cfg.MaxConnectionsPerUser, cfg.ConnectionRateLimit, cfg.RateLimitWindow),
		cfg:      cfg,
		clock:    time.Now,
		newID:    uuid.NewString,
	}
}
