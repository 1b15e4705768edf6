package models

import "database/sql"

// Request models
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Response models
type LoginResponse struct {
	Status    string      `json:"status"`
	Token     string      `json:"token,omitempty"`
	ExpiresIn int         `json:"expiresIn,omitempty"`
	User      SessionUser `json:"user"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusTotals is the raw scan target for the conditional amount sums.
// Both sums are null when the invoices table is empty; callers coerce
// null to zero before formatting.
type StatusTotals struct {
	Paid    sql.NullInt64 `db:"paid"`
	Pending sql.NullInt64 `db:"pending"`
}

// CardSummary is the dashboard card aggregate, recomputed on every call
type CardSummary struct {
	NumberOfInvoices     int64  `json:"numberOfInvoices"`
	NumberOfCustomers    int64  `json:"numberOfCustomers"`
	TotalPaidInvoices    string `json:"totalPaidInvoices"`
	TotalPendingInvoices string `json:"totalPendingInvoices"`
}

// CustomerTotalsRow is the raw scan target for the per-customer
// aggregate; the sums are null for customers with no invoices.
type CustomerTotalsRow struct {
	ID            string        `db:"id"`
	Name          string        `db:"name"`
	Email         string        `db:"email"`
	ImageURL      string        `db:"image_url"`
	TotalInvoices int64         `db:"total_invoices"`
	TotalPending  sql.NullInt64 `db:"total_pending"`
	TotalPaid     sql.NullInt64 `db:"total_paid"`
}

// CustomerSummary is a customer with formatted invoice totals
type CustomerSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"imageUrl"`
	TotalInvoices int64  `json:"totalInvoices"`
	TotalPending  string `json:"totalPending"`
	TotalPaid     string `json:"totalPaid"`
}

// InvoiceDetail is a single invoice with the amount converted from
// cents to dollars for display
type InvoiceDetail struct {
	ID         string  `json:"id"`
	CustomerID string  `json:"customerId"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
}

type RevenueResponse struct {
	Status  string         `json:"status"`
	Revenue []RevenuePoint `json:"revenue"`
}

type LatestInvoicesResponse struct {
	Status   string          `json:"status"`
	Invoices []LatestInvoice `json:"invoices"`
}

type FilteredInvoicesResponse struct {
	Status   string               `json:"status"`
	Query    string               `json:"query"`
	Page     int                  `json:"page"`
	Invoices []FilteredInvoiceRow `json:"invoices"`
}

type InvoicesPagesResponse struct {
	Status     string `json:"status"`
	Query      string `json:"query"`
	TotalPages int    `json:"totalPages"`
}

type CustomersResponse struct {
	Status    string          `json:"status"`
	Customers []CustomerField `json:"customers"`
}

type CustomerSummariesResponse struct {
	Status    string            `json:"status"`
	Query     string            `json:"query"`
	Customers []CustomerSummary `json:"customers"`
}
