package http

import (
	"alert-srv/internal/alert"
	"alert-srv/internal/settings"
	"alert-srv/pkg/discord"
	"alert-srv/pkg/log"
)

type Handler struct {
	l        log.Logger
	uc       alert.UseCase
	settings settings.UseCase
	discord  discord.IDiscord
}

func New(l log.Logger, uc alert.UseCase, settingsUC settings.UseCase, d discord.IDiscord) *Handler {
	return &Handler{
		l:        l,
		uc:       uc,
		settings: settingsUC,
		discord:  d,
	}
}
