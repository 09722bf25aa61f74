package handler

import (
	"context"
	"fmt"
	"strings"

	"alert-srv/internal/model"
	"alert-srv/pkg/discord"
)

type team string

const (
	teamAccounting      team = "accounting"
	teamSales           team = "sales"
	teamProjectManagers team = "project_managers"
	teamHR              team = "hr"
)

var teamLabels = map[team]string{
	teamAccounting:      "Équipe comptable",
	teamSales:           "Équipe commerciale",
	teamProjectManagers: "Chefs de projet",
	teamHR:              "Ressources humaines",
}

// NotificationResult is returned by the notification actions.
type NotificationResult struct {
	Team    string `json:"team"`
	Channel string `json:"channel"`
}

func messageType(s model.Severity) discord.MessageType {
	switch s {
	case model.SeverityCritical, model.SeverityHigh:
		return discord.MessageTypeError
	case model.SeverityMedium:
		return discord.MessageTypeWarning
	default:
		return discord.MessageTypeInfo
	}
}

func (h *handlers) notifyTeam(t team) func(context.Context, model.Alert) (interface{}, error) {
	return func(ctx context.Context, alert model.Alert) (interface{}, error) {
		if h.Discord == nil {
			return nil, ErrDiscordUnavailable
		}

		err := h.Discord.SendEmbed(ctx, discord.MessageOptions{
			Type:        messageType(alert.Severity),
			Title:       fmt.Sprintf("[%s] %s", teamLabels[t], alert.Title),
			Description: alert.Message,
			Fields: []discord.EmbedField{
				discord.NewField("Sévérité", strings.ToUpper(string(alert.Severity)), true),
				discord.NewField("Catégorie", string(alert.Category), true),
				discord.NewField("Confiance", fmt.Sprintf("%.0f%%", alert.Confidence*100), true),
				discord.NewField("Impact", alert.Impact, false),
			},
			Footer:    &discord.EmbedFooter{Text: "Alert Service • " + alert.RuleID},
			Timestamp: h.clock(),
		})
		if err != nil {
			return nil, err
		}
		return NotificationResult{Team: string(t), Channel: "discord"}, nil
	}
}
