package postgres

import (
	"database/sql"

	"alert-srv/internal/model"

	"github.com/aarondl/null/v8"
)

type projectRow struct {
	ID        string
	Name      string
	Status    string
	Deadline  null.Time
	CompanyID null.String
}

func scanProject(rows *sql.Rows) (model.Project, error) {
	var r projectRow
	if err := rows.Scan(&r.ID, &r.Name, &r.Status, &r.Deadline, &r.CompanyID); err != nil {
		return model.Project{}, err
	}
	return model.Project{
		ID:        r.ID,
		Name:      r.Name,
		Status:    r.Status,
		Deadline:  r.Deadline.Ptr(),
		CompanyID: r.CompanyID.String,
	}, nil
}

type taskRow struct {
	ID         string
	ProjectID  string
	AssigneeID null.String
	Status     string
	DueDate    null.Time
}

func scanTask(rows *sql.Rows) (model.Task, error) {
	var r taskRow
	if err := rows.Scan(&r.ID, &r.ProjectID, &r.AssigneeID, &r.Status, &r.DueDate); err != nil {
		return model.Task{}, err
	}
	return model.Task{
		ID:         r.ID,
		ProjectID:  r.ProjectID,
		AssigneeID: r.AssigneeID.String,
		Status:     r.Status,
		DueDate:    r.DueDate.Ptr(),
	}, nil
}

type employeeRow struct {
	ID         string
	Name       string
	Department null.String
	Active     null.Bool
}

func scanEmployee(rows *sql.Rows) (model.Employee, error) {
	var r employeeRow
	if err := rows.Scan(&r.ID, &r.Name, &r.Department, &r.Active); err != nil {
		return model.Employee{}, err
	}
	return model.Employee{
		ID:         r.ID,
		Name:       r.Name,
		Department: r.Department.String,
		// A missing flag means the employee was never deactivated.
		Active: !r.Active.Valid || r.Active.Bool,
	}, nil
}

func scanCompany(rows *sql.Rows) (model.Company, error) {
	var c model.Company
	if err := rows.Scan(&c.ID, &c.Name); err != nil {
		return model.Company{}, err
	}
	return c, nil
}

type quoteRow struct {
	ID        string
	CompanyID null.String
	Amount    null.Float64
	Status    string
	CreatedAt null.Time
}

func scanQuote(rows *sql.Rows) (model.Quote, error) {
	var r quoteRow
	if err := rows.Scan(&r.ID, &r.CompanyID, &r.Amount, &r.Status, &r.CreatedAt); err != nil {
		return model.Quote{}, err
	}
	return model.Quote{
		ID:        r.ID,
		CompanyID: r.CompanyID.String,
		Amount:    r.Amount.Float64,
		Status:    r.Status,
		CreatedAt: r.CreatedAt.Time,
	}, nil
}

type invoiceRow struct {
	ID        string
	CompanyID null.String
	Amount    null.Float64
	Status    string
	IssuedAt  null.Time
	DueDate   null.Time
	PaidAt    null.Time
}

func scanInvoice(rows *sql.Rows) (model.Invoice, error) {
	var r invoiceRow
	if err := rows.Scan(&r.ID, &r.CompanyID, &r.Amount, &r.Status, &r.IssuedAt, &r.DueDate, &r.PaidAt); err != nil {
		return model.Invoice{}, err
	}
	return model.Invoice{
		ID:        r.ID,
		CompanyID: r.CompanyID.String,
		Amount:    r.Amount.Float64,
		Status:    r.Status,
		IssuedAt:  r.IssuedAt.Time,
		DueDate:   r.DueDate.Ptr(),
		PaidAt:    r.PaidAt.Ptr(),
	}, nil
}
