package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/acmecorp/dashboard-server/internal/apperrors"
	"github.com/acmecorp/dashboard-server/internal/models"
	"github.com/acmecorp/dashboard-server/internal/repository"
	"github.com/acmecorp/dashboard-server/internal/utils"
)

// ItemsPerPage is the fixed page size of the invoice search.
const ItemsPerPage = 6

// Operation names used for logging and the per-operation failure
// messages surfaced to callers.
const (
	opRevenue        = "revenue data"
	opLatestInvoices = "latest invoices data"
	opCardData       = "card data"
	opInvoices       = "invoices"
	opInvoicesPages  = "total number of invoices"
	opInvoice        = "invoice"
	opCustomers      = "all customers"
	opCustomerTable  = "customer table"
	opUser           = "user"
)

// Service defines all the business logic operations
type Service interface {
	// Dashboard reads
	FetchRevenue(ctx context.Context) ([]models.RevenuePoint, error)
	FetchLatestInvoices(ctx context.Context) ([]models.LatestInvoice, error)
	FetchCardData(ctx context.Context) (*models.CardSummary, error)

	// Invoice search and detail
	FetchFilteredInvoices(ctx context.Context, query string, page int) ([]models.FilteredInvoiceRow, error)
	FetchInvoicesPages(ctx context.Context, query string) (int, error)
	FetchInvoiceByID(ctx context.Context, id string) (*models.InvoiceDetail, error)

	// Customers
	FetchCustomers(ctx context.Context) ([]models.CustomerField, error)
	FetchFilteredCustomers(ctx context.Context, query string) ([]models.CustomerSummary, error)

	// Authentication
	VerifyCredentials(ctx context.Context, email, password string) (*models.SessionUser, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	logger        *zap.Logger
	validate      *validator.Validate
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(repo repository.Repository, logger *zap.Logger, jwtSecret string) Service {
	return &DefaultService{
		repo:          repo,
		logger:        logger,
		validate:      validator.New(),
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour, // 24 hours token validity
	}
}

// Dashboard reads
func (s *DefaultService) FetchRevenue(ctx context.Context) ([]models.RevenuePoint, error) {
	revenue, err := s.repo.GetRevenue(ctx)
	if err != nil {
		return nil, s.queryFailed(opRevenue, err)
	}

	return revenue, nil
}

func (s *DefaultService) FetchLatestInvoices(ctx context.Context) ([]models.LatestInvoice, error) {
	invoices, err := s.repo.GetLatestInvoices(ctx)
	if err != nil {
		return nil, s.queryFailed(opLatestInvoices, err)
	}

	return invoices, nil
}

// FetchCardData runs the three card queries concurrently and combines
// them once all resolve. The first failure cancels the rest and fails
// the whole call; partial results are never returned.
func (s *DefaultService) FetchCardData(ctx context.Context) (*models.CardSummary, error) {
	var (
		invoiceCount  int64
		customerCount int64
		totals        models.StatusTotals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		invoiceCount, err = s.repo.CountInvoices(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		customerCount, err = s.repo.CountCustomers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.repo.SumInvoiceAmountsByStatus(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, s.queryFailed(opCardData, err)
	}

	// NullInt64's zero value covers the empty-table null sums.
	return &models.CardSummary{
		NumberOfInvoices:     invoiceCount,
		NumberOfCustomers:    customerCount,
		TotalPaidInvoices:    utils.FormatCurrency(totals.Paid.Int64),
		TotalPendingInvoices: utils.FormatCurrency(totals.Pending.Int64),
	}, nil
}

// Invoice search and detail
func (s *DefaultService) FetchFilteredInvoices(
	ctx context.Context,
	query string,
	page int,
) ([]models.FilteredInvoiceRow, error) {
	// Pages are 1-indexed; guarding page <= 0 is the caller's job.
	offset := (page - 1) * ItemsPerPage

	invoices, err := s.repo.GetFilteredInvoices(ctx, query, ItemsPerPage, offset)
	if err != nil {
		return nil, s.queryFailed(opInvoices, err)
	}

	return invoices, nil
}

func (s *DefaultService) FetchInvoicesPages(ctx context.Context, query string) (int, error) {
	count, err := s.repo.CountFilteredInvoices(ctx, query)
	if err != nil {
		return 0, s.queryFailed(opInvoicesPages, err)
	}

	pages := (count + ItemsPerPage - 1) / ItemsPerPage
	return int(pages), nil
}

// FetchInvoiceByID returns the invoice with the amount converted from
// cents to dollars, or (nil, nil) when no invoice has that id.
func (s *DefaultService) FetchInvoiceByID(ctx context.Context, id string) (*models.InvoiceDetail, error) {
	invoice, err := s.repo.GetInvoiceByID(ctx, id)
	if err != nil {
		return nil, s.queryFailed(opInvoice, err)
	}

	if invoice == nil {
		return nil, nil // Absence is not an error at this layer
	}

	return &models.InvoiceDetail{
		ID:         invoice.ID,
		CustomerID: invoice.CustomerID,
		Amount:     float64(invoice.Amount) / 100,
		Status:     invoice.Status,
	}, nil
}

// Customers
func (s *DefaultService) FetchCustomers(ctx context.Context) ([]models.CustomerField, error) {
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, s.queryFailed(opCustomers, err)
	}

	return customers, nil
}

func (s *DefaultService) FetchFilteredCustomers(
	ctx context.Context,
	query string,
) ([]models.CustomerSummary, error) {
	rows, err := s.repo.GetCustomerSummaries(ctx, query)
	if err != nil {
		return nil, s.queryFailed(opCustomerTable, err)
	}

	summaries := make([]models.CustomerSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, models.CustomerSummary{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			ImageURL:      row.ImageURL,
			TotalInvoices: row.TotalInvoices,
			TotalPending:  utils.FormatCurrency(row.TotalPending.Int64),
			TotalPaid:     utils.FormatCurrency(row.TotalPaid.Int64),
		})
	}

	return summaries, nil
}

// submittedCredentials is the shape check applied before any lookup.
type submittedCredentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// VerifyCredentials checks a sign-in attempt. Expected rejections
// (malformed shape, unknown email, wrong password) return (nil, nil);
// only backend failures return an error.
func (s *DefaultService) VerifyCredentials(
	ctx context.Context,
	email string,
	password string,
) (*models.SessionUser, error) {
	creds := submittedCredentials{Email: email, Password: password}
	if err := s.validate.Struct(creds); err != nil {
		s.logger.Info("invalid credentials", zap.String("reason", "malformed"))
		return nil, nil
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, s.queryFailed(opUser, err)
	}

	if user == nil {
		s.logger.Info("invalid credentials", zap.String("reason", "unknown email"))
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Info("invalid credentials", zap.String("reason", "password mismatch"))
		return nil, nil
	}

	return &models.SessionUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

// Login verifies credentials and issues a session token. A (nil, nil)
// return means the credentials were rejected.
func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, nil
	}

	token, err := s.generateJWT(user)
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return nil, apperrors.QueryFailed(opUser, err)
	}

	return &models.LoginResponse{
		Status:    "success",
		Token:     token,
		ExpiresIn: int(s.tokenDuration.Seconds()),
		User:      *user,
	}, nil
}

// queryFailed logs the underlying database error with its operation
// name and returns the generic per-operation error for the caller.
func (s *DefaultService) queryFailed(op string, err error) error {
	s.logger.Error("database error",
		zap.String("operation", op),
		zap.Error(err))
	return apperrors.QueryFailed(op, err)
}

// generateJWT signs a session token for an authenticated user
func (s *DefaultService) generateJWT(user *models.SessionUser) (string, error) {
	expirationTime := time.Now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub":   user.ID, // subject
		"email": user.Email,
		"exp":   expirationTime.Unix(),
		"iat":   time.Now().Unix(), // issued at
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
