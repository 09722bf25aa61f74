package redis

import (
	"context"
	"fmt"
)

func (s *subscriber) Start(ctx context.Context) error {
	pattern := s.prefix + "*"

	s.pubsub = s.redis.GetClient().PSubscribe(ctx, pattern)

	// Wait for confirmation that subscription is created
	if _, err := s.pubsub.Receive(ctx); err != nil {
		_ = s.pubsub.Close()
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	s.wg.Add(1)
	go s.listen(context.WithoutCancel(ctx))

	s.logger.Infof(ctx, "internal.monitor.delivery.redis.Start: subscribed to %s", pattern)
	return nil
}

func (s *subscriber) listen(ctx context.Context) {
	defer s.wg.Done()

	ch := s.pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				s.logger.Warnf(ctx, "internal.monitor.delivery.redis.listen: pubsub channel closed")
				return
			}
			s.handleMessage(ctx, msg.Channel, msg.Payload)
		case <-s.quit:
			return
		}
	}
}

func (s *subscriber) Shutdown(ctx context.Context) error {
	s.once.Do(func() { close(s.quit) })
	if s.pubsub != nil {
		if err := s.pubsub.Close(); err != nil {
			s.logger.Errorf(ctx, "internal.monitor.delivery.redis.Shutdown: %v", err)
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.logger.Infof(ctx, "internal.monitor.delivery.redis.Shutdown: stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
