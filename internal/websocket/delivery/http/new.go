package http

import (
	"alert-srv/internal/websocket"
	"alert-srv/pkg/log"
	"alert-srv/pkg/scope"

	gorilla "github.com/gorilla/websocket"
)

type Handler struct {
	uc       websocket.UseCase
	jwtMgr   scope.Manager
	logger   log.Logger
	upgrader gorilla.Upgrader
}

func New(logger log.Logger, uc websocket.UseCase, jwtMgr scope.Manager, cfg UpgraderConfig) *Handler {
	if cfg.Environment == "" {
		cfg.Environment = EnvironmentProduction
	}
	return &Handler{
		uc:       uc,
		jwtMgr:   jwtMgr,
		logger:   logger,
		upgrader: createUpgrader(cfg),
	}
}
