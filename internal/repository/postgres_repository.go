package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/acmecorp/dashboard-server/internal/models"
)

// invoiceSearchPredicate is the shared filter for the invoice search.
// The page-data and page-count queries must stay predicate-identical,
// so both embed this single definition. $1 is the ILIKE pattern.
const invoiceSearchPredicate = `
		customers.name ILIKE $1 OR
		customers.email ILIKE $1 OR
		invoices.amount::text ILIKE $1 OR
		invoices.date::text ILIKE $1 OR
		invoices.status ILIKE $1`

const (
	filteredInvoicesQuery = `
		SELECT
			invoices.id,
			invoices.amount,
			invoices.date,
			invoices.status,
			customers.name,
			customers.email,
			customers.image_url
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		WHERE` + invoiceSearchPredicate + `
		ORDER BY invoices.date DESC
		LIMIT $2 OFFSET $3`

	filteredInvoicesCountQuery = `
		SELECT COUNT(*)
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		WHERE` + invoiceSearchPredicate
)

// Repository interface defines the methods that any repository implementation must satisfy
type Repository interface {
	// Revenue series
	GetRevenue(ctx context.Context) ([]models.RevenuePoint, error)

	// Invoice operations
	GetLatestInvoices(ctx context.Context) ([]models.LatestInvoice, error)
	GetInvoiceByID(ctx context.Context, id string) (*models.Invoice, error)
	GetFilteredInvoices(ctx context.Context, query string, limit, offset int) ([]models.FilteredInvoiceRow, error)
	CountFilteredInvoices(ctx context.Context, query string) (int64, error)

	// Customer operations
	ListCustomers(ctx context.Context) ([]models.CustomerField, error)
	GetCustomerSummaries(ctx context.Context, query string) ([]models.CustomerTotalsRow, error)

	// Card aggregates
	CountInvoices(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	SumInvoiceAmountsByStatus(ctx context.Context) (models.StatusTotals, error)

	// User operations
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

// GetRevenue returns the monthly revenue series. The revenue column is
// cast to bigint so numeric-typed columns never surface as strings.
func (r *PostgresRepository) GetRevenue(ctx context.Context) ([]models.RevenuePoint, error) {
	query := `SELECT month, revenue::bigint AS revenue FROM revenue`

	var revenue []models.RevenuePoint
	err := r.db.SelectContext(ctx, &revenue, query)
	if err != nil {
		return nil, err
	}

	return revenue, nil
}

// GetLatestInvoices returns the 5 most recent invoices joined with
// customer identity, newest first.
func (r *PostgresRepository) GetLatestInvoices(ctx context.Context) ([]models.LatestInvoice, error) {
	query := `
		SELECT
			invoices.id,
			customers.name,
			customers.email,
			customers.image_url,
			invoices.amount,
			invoices.date
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		ORDER BY invoices.date DESC
		LIMIT 5`

	var invoices []models.LatestInvoice
	err := r.db.SelectContext(ctx, &invoices, query)
	if err != nil {
		return nil, err
	}

	return invoices, nil
}

func (r *PostgresRepository) GetInvoiceByID(ctx context.Context, id string) (*models.Invoice, error) {
	query := `
		SELECT id, customer_id, amount, status, date
		FROM invoices
		WHERE id = $1`

	var invoice models.Invoice
	err := r.db.GetContext(ctx, &invoice, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Invoice not found
		}
		return nil, err
	}

	return &invoice, nil
}

// GetFilteredInvoices returns one page of invoices matching the search
// query, ordered by date descending.
func (r *PostgresRepository) GetFilteredInvoices(
	ctx context.Context,
	query string,
	limit int,
	offset int,
) ([]models.FilteredInvoiceRow, error) {
	var invoices []models.FilteredInvoiceRow
	err := r.db.SelectContext(ctx, &invoices, filteredInvoicesQuery,
		searchPattern(query), limit, offset)
	if err != nil {
		return nil, err
	}

	return invoices, nil
}

// CountFilteredInvoices returns the total number of invoices matching
// the same predicate GetFilteredInvoices pages over.
func (r *PostgresRepository) CountFilteredInvoices(ctx context.Context, query string) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, filteredInvoicesCountQuery, searchPattern(query))
	if err != nil {
		return 0, err
	}

	return count, nil
}

// ListCustomers returns all customers ordered by name, for selection lists.
func (r *PostgresRepository) ListCustomers(ctx context.Context) ([]models.CustomerField, error) {
	query := `SELECT id, name FROM customers ORDER BY name ASC`

	var customers []models.CustomerField
	err := r.db.SelectContext(ctx, &customers, query)
	if err != nil {
		return nil, err
	}

	return customers, nil
}

// GetCustomerSummaries returns customers matching the name/email search
// with aggregated invoice totals. The left join keeps customers with no
// invoices in the result; their sums scan as null.
func (r *PostgresRepository) GetCustomerSummaries(
	ctx context.Context,
	query string,
) ([]models.CustomerTotalsRow, error) {
	stmt := `
		SELECT
			customers.id,
			customers.name,
			customers.email,
			customers.image_url,
			COUNT(invoices.id)::bigint AS total_invoices,
			SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END)::bigint AS total_pending,
			SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END)::bigint AS total_paid
		FROM customers
		LEFT JOIN invoices ON customers.id = invoices.customer_id
		WHERE
			customers.name ILIKE $1 OR
			customers.email ILIKE $1
		GROUP BY customers.id, customers.name, customers.email, customers.image_url
		ORDER BY customers.name ASC`

	var rows []models.CustomerTotalsRow
	err := r.db.SelectContext(ctx, &rows, stmt, searchPattern(query))
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// Card aggregate queries. Counts are cast to bigint so the driver never
// hands back large counts as strings.
func (r *PostgresRepository) CountInvoices(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*)::bigint FROM invoices`

	var count int64
	err := r.db.GetContext(ctx, &count, query)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *PostgresRepository) CountCustomers(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*)::bigint FROM customers`

	var count int64
	err := r.db.GetContext(ctx, &count, query)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// SumInvoiceAmountsByStatus returns the conditional amount sums per
// status in one grouped pass. With zero invoices both sums are null;
// the service coerces null to 0.
func (r *PostgresRepository) SumInvoiceAmountsByStatus(ctx context.Context) (models.StatusTotals, error) {
	query := `
		SELECT
			SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END)::bigint AS paid,
			SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END)::bigint AS pending
		FROM invoices`

	var totals models.StatusTotals
	err := r.db.GetContext(ctx, &totals, query)
	if err != nil {
		return models.StatusTotals{}, err
	}

	return totals, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT * FROM users WHERE email = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

// searchPattern wraps user text for a substring ILIKE match. The text is
// always bound as a parameter, never spliced into the statement.
func searchPattern(query string) string {
	return "%" + query + "%"
}
