package repository

import (
	"context"

	"alert-srv/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	ListProjects(ctx context.Context, tenantID string) ([]model.Project, error)
	ListTasks(ctx context.Context, tenantID string) ([]model.Task, error)
	ListEmployees(ctx context.Context, tenantID string) ([]model.Employee, error)
	ListCompanies(ctx context.Context, tenantID string) ([]model.Company, error)
	ListQuotes(ctx context.Context, tenantID string) ([]model.Quote, error)
	ListInvoices(ctx context.Context, tenantID string) ([]model.Invoice, error)
}
