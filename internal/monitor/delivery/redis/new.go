package redis

import (
	"context"
	"sync"

	"alert-srv/internal/monitor"
	"alert-srv/pkg/log"
	pkgRedis "alert-srv/pkg/redis"

	"github.com/redis/go-redis/v9"
)

// Subscriber relays alert lifecycle events published by any instance to the local monitoring sessions.
type Subscriber interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type subscriber struct {
	redis   pkgRedis.IRedis
	monitor monitor.UseCase
	logger  log.Logger
	prefix  string

	// Lifecycle fields
	pubsub *redis.PubSub
	wg     sync.WaitGroup
	quit   chan struct{}
	once   sync.Once
}

// New creates a subscriber for the channels prefix{tenant_id}.
func New(logger log.Logger, client pkgRedis.IRedis, monitorUC monitor.UseCase, prefix string) Subscriber {
	return &subscriber{
		redis:   client,
		monitor: monitorUC,
		logger:  logger,
		prefix:  prefix,
		quit:    make(chan struct{}),
	}
}
