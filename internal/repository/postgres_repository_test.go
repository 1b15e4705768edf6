package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to open sqlmock")
	t.Cleanup(func() { db.Close() })

	return NewPostgresRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestGetRevenue(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT month, revenue::bigint AS revenue FROM revenue`)).
		WillReturnRows(sqlmock.NewRows([]string{"month", "revenue"}).
			AddRow("Jan", int64(2000)).
			AddRow("Feb", int64(1800)))

	revenue, err := repo.GetRevenue(context.Background())
	assert.NoError(t, err)
	assert.Len(t, revenue, 2)
	assert.Equal(t, "Jan", revenue[0].Month)
	assert.Equal(t, int64(2000), revenue[0].Revenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLatestInvoicesLimit(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`ORDER BY invoices.date DESC\s+LIMIT 5`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "email", "image_url", "amount", "date"}).
			AddRow("inv-1", "Amy Burns", "amy@burns.com", "/customers/amy-burns.png", int64(3040), time.Now()))

	invoices, err := repo.GetLatestInvoices(context.Background())
	assert.NoError(t, err)
	assert.Len(t, invoices, 1)
	assert.Equal(t, "Amy Burns", invoices[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetInvoiceByIDNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT id, customer_id, amount, status, date`).
		WithArgs("no-such-id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "amount", "status", "date"}))

	invoice, err := repo.GetInvoiceByID(context.Background(), "no-such-id")
	assert.NoError(t, err, "Absence must not be an error")
	assert.Nil(t, invoice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetInvoiceByIDFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	date := time.Date(2023, 6, 17, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, customer_id, amount, status, date`).
		WithArgs("inv-9").
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "amount", "status", "date"}).
			AddRow("inv-9", "cust-4", int64(12345), "paid", date))

	invoice, err := repo.GetInvoiceByID(context.Background(), "inv-9")
	assert.NoError(t, err)
	if assert.NotNil(t, invoice) {
		assert.Equal(t, int64(12345), invoice.Amount, "Amount stays in cents at this layer")
		assert.Equal(t, "paid", invoice.Status)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilteredQueriesShareThePredicate(t *testing.T) {
	// The page-data and page-count statements must never drift apart.
	assert.Contains(t, filteredInvoicesQuery, invoiceSearchPredicate)
	assert.Contains(t, filteredInvoicesCountQuery, invoiceSearchPredicate)

	// Every search field is matched through the single $1 binding.
	for _, field := range []string{
		"customers.name ILIKE $1",
		"customers.email ILIKE $1",
		"invoices.amount::text ILIKE $1",
		"invoices.date::text ILIKE $1",
		"invoices.status ILIKE $1",
	} {
		assert.Contains(t, invoiceSearchPredicate, field)
	}
}

func TestGetFilteredInvoicesBindsPatternAndPage(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $2 OFFSET $3")).
		WithArgs("%delba%", 6, 12).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "amount", "date", "status", "name", "email", "image_url"}).
			AddRow("inv-2", int64(20348), time.Now(), "pending",
				"Delba de Oliveira", "delba@oliveira.com", "/customers/delba-de-oliveira.png"))

	invoices, err := repo.GetFilteredInvoices(context.Background(), "delba", 6, 12)
	assert.NoError(t, err)
	assert.Len(t, invoices, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountFilteredInvoicesEmptyQueryMatchesAll(t *testing.T) {
	repo, mock := newMockRepository(t)

	// An empty query binds "%%", a substring of everything.
	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs("%%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(13)))

	count, err := repo.CountFilteredInvoices(context.Background(), "")
	assert.NoError(t, err)
	assert.Equal(t, int64(13), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchPatternIsBoundNotSpliced(t *testing.T) {
	// Hostile search text must stay inside the bound parameter.
	assert.Equal(t, "%'; DROP TABLE invoices;--%", searchPattern("'; DROP TABLE invoices;--"))
	assert.NotContains(t, filteredInvoicesQuery, "%s")
	assert.False(t, strings.Contains(filteredInvoicesQuery, "'"))
}

func TestSumInvoiceAmountsByStatusNullSums(t *testing.T) {
	repo, mock := newMockRepository(t)

	// SUM over zero rows comes back null for both statuses.
	mock.ExpectQuery(`SUM\(CASE WHEN status = 'paid'`).
		WillReturnRows(sqlmock.NewRows([]string{"paid", "pending"}).AddRow(nil, nil))

	totals, err := repo.SumInvoiceAmountsByStatus(context.Background())
	assert.NoError(t, err)
	assert.False(t, totals.Paid.Valid)
	assert.False(t, totals.Pending.Valid)
	assert.Equal(t, int64(0), totals.Paid.Int64)
	assert.Equal(t, int64(0), totals.Pending.Int64)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCustomerSummariesLeftJoinNulls(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`LEFT JOIN invoices`).
		WithArgs("%%").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "email", "image_url", "total_invoices", "total_pending", "total_paid"}).
			AddRow("cust-1", "Amy Burns", "amy@burns.com", "", int64(2), int64(3040), int64(1250)).
			AddRow("cust-2", "Evil Rabbit", "evil@rabbit.com", "", int64(0), nil, nil))

	rows, err := repo.GetCustomerSummaries(context.Background(), "")
	assert.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].TotalPending.Valid)
	assert.Equal(t, int64(3040), rows[0].TotalPending.Int64)
	assert.False(t, rows[1].TotalPending.Valid, "Customers without invoices sum to null")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail(t *testing.T) {
	repo, mock := newMockRepository(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM users WHERE email = $1`)).
		WithArgs("user@nextmail.com").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "email", "password", "created_at", "updated_at"}).
			AddRow("user-1", "User", "user@nextmail.com", "$2a$10$hash", now, now))

	user, err := repo.GetUserByEmail(context.Background(), "user@nextmail.com")
	assert.NoError(t, err)
	if assert.NotNil(t, user) {
		assert.Equal(t, "user-1", user.ID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmailNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM users WHERE email = $1`)).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "created_at", "updated_at"}))

	user, err := repo.GetUserByEmail(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmailDatabaseError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM users WHERE email = $1`)).
		WithArgs("user@nextmail.com").
		WillReturnError(errors.New("connection refused"))

	user, err := repo.GetUserByEmail(context.Background(), "user@nextmail.com")
	assert.Error(t, err, "Backend failure must surface as an error, not a nil user")
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}
