package handler

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"alert-srv/internal/model"
	"alert-srv/pkg/discord"
)

const (
	maxListedInvoices = 10
	trendMonths       = 6
)

// PaymentReminderResult summarizes the overdue invoices a reminder was sent for.
type PaymentReminderResult struct {
	Invoices    int      `json:"invoices"`
	TotalAmount float64  `json:"totalAmount"`
	InvoiceIDs  []string `json:"invoiceIds"`
}

func (h *handlers) sendPaymentReminders(ctx context.Context, alert model.Alert) (interface{}, error) {
	if h.Discord == nil {
		return nil, ErrDiscordUnavailable
	}
	snap, err := h.Snapshots.Get(ctx, alert.TenantID)
	if err != nil {
		return nil, err
	}

	overdue := make([]model.Invoice, 0)
	res := PaymentReminderResult{InvoiceIDs: []string{}}
	for _, inv := range snap.Invoices {
		if inv.IsOverdue(snap.TakenAt) {
			overdue = append(overdue, inv)
			res.TotalAmount += inv.Amount
			res.InvoiceIDs = append(res.InvoiceIDs, inv.ID)
		}
	}
	res.Invoices = len(overdue)
	if res.Invoices == 0 {
		return res, nil
	}

	sort.Slice(overdue, func(i, j int) bool { return overdue[i].Amount > overdue[j].Amount })
	names := companyNames(snap)
	lines := make([]string, 0, maxListedInvoices)
	for i, inv := range overdue {
		if i == maxListedInvoices {
			lines = append(lines, fmt.Sprintf("… et %d autres", len(overdue)-maxListedInvoices))
			break
		}
		lines = append(lines, fmt.Sprintf("• %s (%s) : %.2f €", inv.ID, names[inv.CompanyID], inv.Amount))
	}

	err = h.Discord.SendEmbed(ctx, discord.MessageOptions{
		Type:        discord.MessageTypeWarning,
		Title:       "Relances de paiement à envoyer",
		Description: fmt.Sprintf("%d factures impayées dépassent leur échéance.", res.Invoices),
		Fields: []discord.EmbedField{
			discord.NewField("Montant total", fmt.Sprintf("%.2f €", res.TotalAmount), true),
			discord.NewField("Factures", strings.Join(lines, "\n"), false),
		},
		Timestamp: h.clock(),
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// MonthlyRevenue is the paid revenue of one calendar month.
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// RevenueTrendResult is the outcome of analyze_revenue_trends.
type RevenueTrendResult struct {
	Months     []MonthlyRevenue `json:"months"`
	GrowthRate float64          `json:"growthRate"`
	// Trend is "up", "down" or "flat" comparing the last two full months.
	Trend string `json:"trend"`
}

func (h *handlers) analyzeRevenueTrends(ctx context.Context, alert model.Alert) (interface{}, error) {
	snap, err := h.Snapshots.Get(ctx, alert.TenantID)
	if err != nil {
		return nil, err
	}
	return revenueTrend(snap, trendMonths), nil
}

func revenueTrend(snap model.BusinessSnapshot, months int) RevenueTrendResult {
	start := time.Date(snap.TakenAt.Year(), snap.TakenAt.Month(), 1, 0, 0, 0, 0, snap.TakenAt.Location())
	start = start.AddDate(0, -(months - 1), 0)

	res := RevenueTrendResult{Months: make([]MonthlyRevenue, months), GrowthRate: snap.Metrics.GrowthRate}
	for i := range res.Months {
		res.Months[i].Month = start.AddDate(0, i, 0).Format("2006-01")
	}

	for _, inv := range snap.Invoices {
		if inv.Status != model.InvoiceStatusPaid {
			continue
		}
		at := inv.IssuedAt
		if inv.PaidAt != nil {
			at = *inv.PaidAt
		}
		at = at.In(start.Location())
		idx := (at.Year()-start.Year())*12 + int(at.Month()) - int(start.Month())
		if idx >= 0 && idx < months {
			res.Months[idx].Revenue += inv.Amount
		}
	}

	res.Trend = "flat"
	if months >= 3 {
		last, prev := res.Months[months-2].Revenue, res.Months[months-3].Revenue
		switch {
		case last > prev:
			res.Trend = "up"
		case last < prev:
			res.Trend = "down"
		}
	}
	return res
}

func companyNames(snap model.BusinessSnapshot) map[string]string {
	names := make(map[string]string, len(snap.Companies))
	for _, c := range snap.Companies {
		names[c.ID] = c.Name
	}
	return names
}
