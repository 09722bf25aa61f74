package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"alert-srv/config"
	miniopkg "alert-srv/pkg/minio"
)

const (
	defaultConnectTimeout = 5 * time.Second
	defaultMaxRetries     = 3
)

var (
	instance miniopkg.MinIO
	mu       sync.Mutex
)

// Connect creates the shared MinIO client, verifies the endpoint and makes
// sure the report bucket exists.
func Connect(ctx context.Context, cfg config.MinIOConfig) (miniopkg.MinIO, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	fmt.Printf("[MinIO] Connecting to %s (SSL: %v)...\n", cfg.Endpoint, cfg.UseSSL)

	impl, err := miniopkg.NewMinIO(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
	defer cancel()

	if err := impl.Connect(connectCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}
	if err := impl.EnsureBucket(connectCtx, cfg.Bucket); err != nil {
		return nil, fmt.Errorf("failed to prepare bucket %s: %w", cfg.Bucket, err)
	}

	instance = impl
	fmt.Printf("[MinIO] Connected to %s\n", cfg.Endpoint)
	return instance, nil
}

// ConnectWithRetry calls Connect with exponential backoff between attempts.
func ConnectWithRetry(ctx context.Context, cfg config.MinIOConfig, maxRetries int) (miniopkg.MinIO, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		client, err := Connect(ctx, cfg)
		if err == nil {
			return client, nil
		}
		lastErr = err

		if i < maxRetries-1 {
			backoff := time.Duration(1<<uint(i)) * time.Second
			fmt.Printf("[MinIO] Connection attempt %d/%d failed, retrying in %v...\n", i+1, maxRetries, backoff)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("failed to connect after %d retries: %w", maxRetries, lastErr)
}

// Disconnect closes the shared client.
func Disconnect(_ context.Context) error {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		return nil
	}
	err := instance.Close()
	instance = nil
	return err
}
