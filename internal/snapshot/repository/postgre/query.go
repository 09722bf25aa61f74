package postgres

const (
	listProjectsQuery = `SELECT id, name, status, deadline, company_id
FROM projects
WHERE tenant_id = $1 AND deleted_at IS NULL
ORDER BY created_at`

	listTasksQuery = `SELECT id, project_id, assignee_id, status, due_date
FROM tasks
WHERE tenant_id = $1 AND deleted_at IS NULL
ORDER BY created_at`

	listEmployeesQuery = `SELECT id, name, department, is_active
FROM employees
WHERE tenant_id = $1 AND deleted_at IS NULL
ORDER BY name`

	listCompaniesQuery = `SELECT id, name
FROM companies
WHERE tenant_id = $1 AND deleted_at IS NULL
ORDER BY name`

	listQuotesQuery = `SELECT id, company_id, amount, status, created_at
FROM quotes
WHERE tenant_id = $1 AND deleted_at IS NULL
ORDER BY created_at`

	listInvoicesQuery = `SELECT id, company_id, amount, status, issued_at, due_date, paid_at
FROM invoices
WHERE tenant_id = $1 AND deleted_at IS NULL
ORDER BY issued_at`
)
