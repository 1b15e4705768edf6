package seed

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/acmecorp/dashboard-server/internal/models"
)

// Demo password for every seeded user.
const demoPassword = "123456"

type demoUser struct {
	Name  string
	Email string
}

type demoCustomer struct {
	Name     string
	Email    string
	ImageURL string
}

type demoInvoice struct {
	CustomerIdx int
	Amount      int64 // cents
	Status      string
	Date        string
}

var demoUsers = []demoUser{
	{Name: "User", Email: "user@nextmail.com"},
}

var demoCustomers = []demoCustomer{
	{Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
	{Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
	{Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
	{Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
	{Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
	{Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
}

var demoInvoices = []demoInvoice{
	{CustomerIdx: 0, Amount: 15795, Status: models.InvoiceStatusPending, Date: "2022-12-06"},
	{CustomerIdx: 1, Amount: 20348, Status: models.InvoiceStatusPending, Date: "2022-11-14"},
	{CustomerIdx: 4, Amount: 3040, Status: models.InvoiceStatusPaid, Date: "2022-10-29"},
	{CustomerIdx: 3, Amount: 44800, Status: models.InvoiceStatusPaid, Date: "2023-09-10"},
	{CustomerIdx: 5, Amount: 34577, Status: models.InvoiceStatusPending, Date: "2023-08-05"},
	{CustomerIdx: 2, Amount: 54246, Status: models.InvoiceStatusPending, Date: "2023-07-16"},
	{CustomerIdx: 0, Amount: 666, Status: models.InvoiceStatusPending, Date: "2023-06-27"},
	{CustomerIdx: 3, Amount: 32545, Status: models.InvoiceStatusPaid, Date: "2023-06-09"},
	{CustomerIdx: 4, Amount: 1250, Status: models.InvoiceStatusPaid, Date: "2023-06-17"},
	{CustomerIdx: 5, Amount: 8546, Status: models.InvoiceStatusPaid, Date: "2023-06-07"},
	{CustomerIdx: 1, Amount: 500, Status: models.InvoiceStatusPaid, Date: "2023-08-19"},
	{CustomerIdx: 5, Amount: 8945, Status: models.InvoiceStatusPaid, Date: "2023-06-03"},
	{CustomerIdx: 2, Amount: 1000, Status: models.InvoiceStatusPaid, Date: "2022-06-05"},
}

var demoRevenue = map[string]int64{
	"Jan": 2000, "Feb": 1800, "Mar": 2200, "Apr": 2500,
	"May": 2300, "Jun": 3200, "Jul": 3500, "Aug": 3700,
	"Sep": 2500, "Oct": 2800, "Nov": 3000, "Dec": 4800,
}

// Run provisions demo data for local development. It is the only code
// path that writes; the serving surface stays read-only.
func Run(ctx context.Context, db *sqlx.DB, logger *zap.Logger) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	now := time.Now().UTC()
	for _, u := range demoUsers {
		var hashed []byte
		hashed, err = bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO users (id, name, email, password, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			ON CONFLICT (email) DO NOTHING`,
			uuid.New().String(), u.Name, u.Email, string(hashed), now)
		if err != nil {
			return err
		}
	}

	customerIDs := make([]string, len(demoCustomers))
	for i, c := range demoCustomers {
		customerIDs[i] = uuid.New().String()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO customers (id, name, email, image_url)
			VALUES ($1, $2, $3, $4)`,
			customerIDs[i], c.Name, c.Email, c.ImageURL)
		if err != nil {
			return err
		}
	}

	for _, inv := range demoInvoices {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO invoices (id, customer_id, amount, status, date)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New().String(), customerIDs[inv.CustomerIdx], inv.Amount, inv.Status, inv.Date)
		if err != nil {
			return err
		}
	}

	for month, revenue := range demoRevenue {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO revenue (month, revenue)
			VALUES ($1, $2)`,
			month, revenue)
		if err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	logger.Info("seeded demo data",
		zap.Int("users", len(demoUsers)),
		zap.Int("customers", len(demoCustomers)),
		zap.Int("invoices", len(demoInvoices)))
	return nil
}
