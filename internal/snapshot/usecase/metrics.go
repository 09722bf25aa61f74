package usecase

import (
	"time"

	"alert-srv/internal/model"
)

const growthWindow = 30 * 24 * time.Hour

func computeMetrics(now time.Time, invoices []model.Invoice, quotes []model.Quote) model.FinancialMetrics {
	var m model.FinancialMetrics

	var current, previous float64
	for _, inv := range invoices {
		m.TotalRevenue += inv.Amount
		if inv.Status != model.InvoiceStatusPaid {
			m.PendingRevenue += inv.Amount
			continue
		}

		at := inv.IssuedAt
		if inv.PaidAt != nil {
			at = *inv.PaidAt
		}
		switch age := now.Sub(at); {
		case age < 0:
		case age <= growthWindow:
			current += inv.Amount
		case age <= 2*growthWindow:
			previous += inv.Amount
		}
	}
	if previous > 0 {
		m.GrowthRate = (current - previous) / previous * 100
	}

	decided, accepted := 0, 0
	for _, q := range quotes {
		if q.Status == model.QuoteStatusDraft {
			continue
		}
		decided++
		if q.Status == model.QuoteStatusAccepted {
			accepted++
		}
	}
	if decided > 0 {
		m.ConversionRate = float64(accepted) / float64(decided) * 100
	}

	return m
}
