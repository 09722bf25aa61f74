package discord

import (
	"context"
	"fmt"
	"strings"

	"alert-srv/pkg/log"
)

// IDiscord posts messages to a Discord webhook.
type IDiscord interface {
	SendEmbed(ctx context.Context, options MessageOptions) error
	SendInfo(ctx context.Context, title, description string) error
	SendWarning(ctx context.Context, title, description string) error
	ReportBug(ctx context.Context, message string) error
	GetWebhookURL() string
	Close() error
}

func parseWebhookURL(webhookURL string) (base, id, token string, err error) {
	webhookURL = strings.TrimSpace(webhookURL)
	idx := strings.Index(webhookURL, "/api/webhooks/")
	if idx <= 0 {
		return "", "", "", fmt.Errorf("discord: invalid webhook URL format")
	}
	base = webhookURL[:idx]
	rest := webhookURL[idx+len("/api/webhooks/"):]
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", fmt.Errorf("discord: webhook URL must be .../webhooks/{id}/{token}")
	}
	return base, parts[0], parts[1], nil
}

// New builds a client from a full webhook URL (https://discord.com/api/webhooks/{id}/{token}).
func New(l log.Logger, webhookURL string) (IDiscord, error) {
	if webhookURL == "" {
		return nil, errWebhookRequired
	}
	base, id, token, err := parseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.BaseURL = base
	return newImpl(l, id, token, cfg)
}

// NewWithConfig builds a client from a webhook id and token.
func NewWithConfig(l log.Logger, id, token string, cfg Config) (IDiscord, error) {
	return newImpl(l, id, token, cfg)
}
