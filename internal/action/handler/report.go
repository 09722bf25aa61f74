package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"alert-srv/internal/model"
	"alert-srv/pkg/minio"
)

const reportContentType = "application/json"

type cashFlowReport struct {
	TenantID        string                 `json:"tenantId"`
	AlertID         string                 `json:"alertId"`
	GeneratedAt     time.Time              `json:"generatedAt"`
	SnapshotAt      time.Time              `json:"snapshotAt"`
	Metrics         model.FinancialMetrics `json:"metrics"`
	OverdueAmount   float64                `json:"overdueAmount"`
	OverdueInvoices int                    `json:"overdueInvoices"`
	PendingByClient []clientBalance        `json:"pendingByClient"`
}

type clientBalance struct {
	CompanyID string  `json:"companyId"`
	Company   string  `json:"company"`
	Pending   float64 `json:"pending"`
	Overdue   float64 `json:"overdue"`
}

// CashFlowReportResult points to the uploaded report.
type CashFlowReportResult struct {
	Bucket    string    `json:"bucket"`
	Object    string    `json:"object"`
	Size      int64     `json:"size"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *handlers) prepareCashFlowReport(ctx context.Context, alert model.Alert) (interface{}, error) {
	if h.Storage == nil {
		return nil, ErrStorageUnavailable
	}
	snap, err := h.Snapshots.Get(ctx, alert.TenantID)
	if err != nil {
		return nil, err
	}

	now := h.clock()
	report := buildCashFlowReport(snap, alert.ID, now)
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode cash flow report: %w", err)
	}

	object := fmt.Sprintf("reports/%s/cash-flow-%s.json", alert.TenantID, now.UTC().Format("20060102T150405Z"))
	info, err := h.Storage.UploadFile(ctx, &minio.UploadRequest{
		BucketName:  h.Bucket,
		ObjectName:  object,
		Reader:      bytes.NewReader(data),
		Size:        int64(len(data)),
		ContentType: reportContentType,
		Metadata: map[string]string{
			"tenant-id": alert.TenantID,
			"alert-id":  alert.ID,
		},
	})
	if err != nil {
		return nil, err
	}

	url, err := h.Storage.GetPresignedDownloadURL(ctx, &minio.PresignedURLRequest{
		BucketName: h.Bucket,
		ObjectName: object,
		Expiry:     h.ReportURLExpiry,
	})
	if err != nil {
		return nil, err
	}

	return CashFlowReportResult{
		Bucket:    info.BucketName,
		Object:    info.ObjectName,
		Size:      info.Size,
		URL:       url.URL,
		ExpiresAt: url.ExpiresAt,
	}, nil
}

func buildCashFlowReport(snap model.BusinessSnapshot, alertID string, now time.Time) cashFlowReport {
	report := cashFlowReport{
		TenantID:        snap.TenantID,
		AlertID:         alertID,
		GeneratedAt:     now,
		SnapshotAt:      snap.TakenAt,
		Metrics:         snap.Metrics,
		PendingByClient: []clientBalance{},
	}

	names := companyNames(snap)
	byClient := make(map[string]*clientBalance)
	for _, inv := range snap.Invoices {
		if inv.Status == model.InvoiceStatusPaid {
			continue
		}
		b, ok := byClient[inv.CompanyID]
		if !ok {
			b = &clientBalance{CompanyID: inv.CompanyID, Company: names[inv.CompanyID]}
			byClient[inv.CompanyID] = b
		}
		b.Pending += inv.Amount
		if inv.IsOverdue(snap.TakenAt) {
			b.Overdue += inv.Amount
			report.OverdueAmount += inv.Amount
			report.OverdueInvoices++
		}
	}

	for _, b := range byClient {
		report.PendingByClient = append(report.PendingByClient, *b)
	}
	sort.Slice(report.PendingByClient, func(i, j int) bool {
		a, b := report.PendingByClient[i], report.PendingByClient[j]
		if a.Pending != b.Pending {
			return a.Pending > b.Pending
		}
		return a.CompanyID < b.CompanyID
	})
	return report
}
