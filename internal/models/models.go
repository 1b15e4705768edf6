package models

import (
	"time"
)

// Invoice status values stored in the invoices.status column.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// User represents a user credential row in the system
type User struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"` // Password hash, not returned in JSON
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// SessionUser is the identity handed to the auth boundary after a
// successful credential check. It never carries the password hash.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CustomerField is the thin customer projection used for selection lists
type CustomerField struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Invoice represents an invoice row. Amount is integer cents.
type Invoice struct {
	ID         string    `db:"id" json:"id"`
	CustomerID string    `db:"customer_id" json:"customerId"`
	Amount     int64     `db:"amount" json:"amount"`
	Status     string    `db:"status" json:"status"` // "pending" or "paid"
	Date       time.Time `db:"date" json:"date"`
}

// RevenuePoint is one month of the revenue series
type RevenuePoint struct {
	Month   string `db:"month" json:"month"`
	Revenue int64  `db:"revenue" json:"revenue"`
}

// LatestInvoice is an invoice joined with customer identity, amount in cents
type LatestInvoice struct {
	ID       string    `db:"id" json:"id"`
	Name     string    `db:"name" json:"name"`
	Email    string    `db:"email" json:"email"`
	ImageURL string    `db:"image_url" json:"imageUrl"`
	Amount   int64     `db:"amount" json:"amount"`
	Date     time.Time `db:"date" json:"date"`
}

// FilteredInvoiceRow is one result row of the paginated invoice search
type FilteredInvoiceRow struct {
	ID       string    `db:"id" json:"id"`
	Amount   int64     `db:"amount" json:"amount"`
	Date     time.Time `db:"date" json:"date"`
	Status   string    `db:"status" json:"status"`
	Name     string    `db:"name" json:"name"`
	Email    string    `db:"email" json:"email"`
	ImageURL string    `db:"image_url" json:"imageUrl"`
}
