package redis

import (
	"context"
	"time"

	"alert-srv/internal/alert/repository"
	pkgLog "alert-srv/pkg/log"
)

// Client is the subset of pkg/redis the alert store needs.
type Client interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	MGet(ctx context.Context, keys ...string) ([]interface{}, error)
	Delete(ctx context.Context, keys ...string) error
	DeleteIfEquals(ctx context.Context, key, value string) (bool, error)
	CompareAndSwap(ctx context.Context, key, old, value string, ttl time.Duration) (bool, error)
	SAdd(ctx context.Context, key string, members ...interface{}) error
	SRem(ctx context.Context, key string, members ...interface{}) error
	SMembers(ctx context.Context, key string) ([]string, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

type implRepository struct {
	l      pkgLog.Logger
	client Client
}

var _ repository.Repository = &implRepository{}

func New(l pkgLog.Logger, client Client) repository.Repository {
	return &implRepository{
		l:      l,
		client: client,
	}
}
