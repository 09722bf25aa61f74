package redis

import (
	"context"

	"alert-srv/internal/alert"
	pkgLog "alert-srv/pkg/log"
)

const DefaultChannelPrefix = "alert:events:"

// Client is the subset of pkg/redis the publisher needs.
type Client interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

type implPublisher struct {
	l      pkgLog.Logger
	client Client
	prefix string
}

var _ alert.Publisher = &implPublisher{}

// New returns a publisher broadcasting alert events on {prefix}{tenant}.
func New(l pkgLog.Logger, client Client, prefix string) alert.Publisher {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &implPublisher{
		l:      l,
		client: client,
		prefix: prefix,
	}
}
