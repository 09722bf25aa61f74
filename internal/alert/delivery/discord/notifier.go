package discord

import (
	"context"
	"fmt"
	"strings"

	"alert-srv/internal/model"
	"alert-srv/pkg/discord"
)

const maxListedItems = 3

func (n *implNotifier) Deliver(ctx context.Context, a model.Alert) model.DeliveryRecord {
	rec := model.DeliveryRecord{Channel: channel, Target: a.TenantID, SentAt: n.clock()}

	if err := n.discord.SendEmbed(ctx, buildMessage(a)); err != nil {
		n.l.Warnf(ctx, "internal.alert.delivery.discord.Deliver.SendEmbed: alert=%s %v", a.ID, err)
		rec.Error = err.Error()
		return rec
	}
	rec.Success = true
	return rec
}

func buildMessage(a model.Alert) discord.MessageOptions {
	fields := []discord.EmbedField{
		discord.NewField("Sévérité", strings.ToUpper(string(a.Severity)), true),
		discord.NewField("Catégorie", string(a.Category), true),
		discord.NewField("Confiance", fmt.Sprintf("%.0f%%", a.Confidence*100), true),
		discord.NewField("Impact", a.Impact, false),
	}

	if len(a.RecommendedActions) > 0 {
		titles := make([]string, 0, maxListedItems)
		for i, r := range a.RecommendedActions {
			if i == maxListedItems {
				break
			}
			titles = append(titles, "• "+r.Title)
		}
		fields = append(fields, discord.NewField("Actions recommandées", strings.Join(titles, "\n"), false))
	}

	if len(a.AutomatedActions) > 0 {
		ids := make([]string, len(a.AutomatedActions))
		for i, s := range a.AutomatedActions {
			ids[i] = "`" + s.ActionID + "`"
		}
		fields = append(fields, discord.NewField("Actions automatiques", strings.Join(ids, ", "), false))
	}

	return discord.MessageOptions{
		Type:        messageType(a.Severity),
		Level:       messageLevel(a.Severity),
		Title:       fmt.Sprintf("%s %s", severityIcon(a.Severity), a.Title),
		Description: a.Message,
		Fields:      fields,
		Timestamp:   a.CreatedAt,
		Footer: &discord.EmbedFooter{
			Text: "Alert Service • " + a.RuleID,
		},
	}
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

func messageLevel(s model.Severity) discord.MessageLevel {
	switch s {
	case model.SeverityCritical:
		return discord.LevelUrgent
	case model.SeverityHigh:
		return discord.LevelHigh
	case model.SeverityMedium:
		return discord.LevelNormal
	default:
		return discord.LevelLow
	}
}

func severityIcon(s model.Severity) string {
	switch s {
	case model.SeverityCritical:
		return "🚨"
	case model.SeverityHigh:
		return "⚠️"
	default:
		return "ℹ️"
	}
}
