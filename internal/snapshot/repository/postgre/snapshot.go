package postgres

import (
	"context"
	"database/sql"

	"alert-srv/internal/model"
)

func queryAll[T any](ctx context.Context, db *sql.DB, query, tenantID string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *implRepository) ListProjects(ctx context.Context, tenantID string) ([]model.Project, error) {
	projects, err := queryAll(ctx, r.db, listProjectsQuery, tenantID, scanProject)
	if err != nil {
		r.l.Errorf(ctx, "internal.snapshot.repository.postgres.ListProjects.queryAll: %v", err)
		return nil, err
	}
	return projects, nil
}

func (r *implRepository) ListTasks(ctx context.Context, tenantID string) ([]model.Task, error) {
	tasks, err := queryAll(ctx, r.db, listTasksQuery, tenantID, scanTask)
	if err != nil {
		r.l.Errorf(ctx, "internal.snapshot.repository.postgres.ListTasks.queryAll: %v", err)
		return nil, err
	}
	return tasks, nil
}

func (r *implRepository) ListEmployees(ctx context.Context, tenantID string) ([]model.Employee, error) {
	employees, err := queryAll(ctx, r.db, listEmployeesQuery, tenantID, scanEmployee)
	if err != nil {
		r.l.Errorf(ctx, "internal.snapshot.repository.postgres.ListEmployees.queryAll: %v", err)
		return nil, err
	}
	return employees, nil
}

func (r *implRepository) ListCompanies(ctx context.Context, tenantID string) ([]model.Company, error) {
	companies, err := queryAll(ctx, r.db, listCompaniesQuery, tenantID, scanCompany)
	if err != nil {
		r.l.Errorf(ctx, "internal.snapshot.repository.postgres.ListCompanies.queryAll: %v", err)
		return nil, err
	}
	return companies, nil
}

func (r *implRepository) ListQuotes(ctx context.Context, tenantID string) ([]model.Quote, error) {
	quotes, err := queryAll(ctx, r.db, listQuotesQuery, tenantID, scanQuote)
	if err != nil {
		r.l.Errorf(ctx, "internal.snapshot.repository.postgres.ListQuotes.queryAll: %v", err)
		return nil, err
	}
	return quotes, nil
}

func (r *implRepository) ListInvoices(ctx context.Context, tenantID string) ([]model.Invoice, error) {
	invoices, err := queryAll(ctx, r.db, listInvoicesQuery, tenantID, scanInvoice)
	if err != nil {
		r.l.Errorf(ctx, "internal.snapshot.repository.postgres.ListInvoices.queryAll: %v", err)
		return nil, err
	}
	return invoices, nil
}
