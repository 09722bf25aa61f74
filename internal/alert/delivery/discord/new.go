package discord

import (
	"time"

	"alert-srv/internal/alert"
	"alert-srv/pkg/discord"
	pkgLog "alert-srv/pkg/log"
)

const channel = "discord"

type implNotifier struct {
	l       pkgLog.Logger
	discord discord.IDiscord
	clock   func() time.Time
}

var _ alert.Notifier = &implNotifier{}

// New returns a Notifier posting alerts to a Discord webhook.
func New(l pkgLog.Logger, d discord.IDiscord) alert.Notifier {
	return &implNotifier{
		l:       l,
		discord: d,
		clock:   time.Now,
	}
}
