package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/acmecorp/dashboard-server/internal/apperrors"
	"github.com/acmecorp/dashboard-server/internal/models"
	"github.com/acmecorp/dashboard-server/internal/service"
)

// Handler wires the service into the HTTP routes
type Handler struct {
	svc       service.Service
	jwtSecret []byte
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service, jwtSecret []byte) *Handler {
	return &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
	}
}

// SetupRoutes registers all API routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(ErrorHandlingMiddleware())

	api := router.Group("/api")
	api.POST("/auth/login", h.Login)

	protected := api.Group("", AuthMiddleware(h.jwtSecret))

	dashboard := protected.Group("/dashboard")
	dashboard.GET("/revenue", h.GetRevenue)
	dashboard.GET("/latest-invoices", h.GetLatestInvoices)
	dashboard.GET("/cards", h.GetCardData)

	protected.GET("/invoices", h.GetFilteredInvoices)
	protected.GET("/invoices/pages", h.GetInvoicesPages)
	protected.GET("/invoices/:id", h.GetInvoiceByID)

	protected.GET("/customers", h.GetCustomers)
	protected.GET("/customers/summary", h.GetCustomerSummaries)
}

// Login verifies submitted credentials and issues a session token.
// Rejected credentials get a generic 401; only backend failures reach
// the error middleware.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_REQUEST",
			Message: "email and password are required",
		})
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if resp == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_CREDENTIALS",
			Message: "invalid email or password",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetRevenue(c *gin.Context) {
	revenue, err := h.svc.FetchRevenue(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.RevenueResponse{
		Status:  "success",
		Revenue: revenue,
	})
}

func (h *Handler) GetLatestInvoices(c *gin.Context) {
	invoices, err := h.svc.FetchLatestInvoices(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.LatestInvoicesResponse{
		Status:   "success",
		Invoices: invoices,
	})
}

func (h *Handler) GetCardData(c *gin.Context) {
	summary, err := h.svc.FetchCardData(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) GetFilteredInvoices(c *gin.Context) {
	query := c.Query("query")
	page := pageParam(c)

	invoices, err := h.svc.FetchFilteredInvoices(c.Request.Context(), query, page)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.FilteredInvoicesResponse{
		Status:   "success",
		Query:    query,
		Page:     page,
		Invoices: invoices,
	})
}

func (h *Handler) GetInvoicesPages(c *gin.Context) {
	query := c.Query("query")

	pages, err := h.svc.FetchInvoicesPages(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.InvoicesPagesResponse{
		Status:     "success",
		Query:      query,
		TotalPages: pages,
	})
}

func (h *Handler) GetInvoiceByID(c *gin.Context) {
	invoice, err := h.svc.FetchInvoiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if invoice == nil {
		AbortWithError(c, apperrors.NotFound("invoice"))
		return
	}

	c.JSON(http.StatusOK, invoice)
}

func (h *Handler) GetCustomers(c *gin.Context) {
	customers, err := h.svc.FetchCustomers(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.CustomersResponse{
		Status:    "success",
		Customers: customers,
	})
}

func (h *Handler) GetCustomerSummaries(c *gin.Context) {
	query := c.Query("query")

	customers, err := h.svc.FetchFilteredCustomers(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.CustomerSummariesResponse{
		Status:    "success",
		Query:     query,
		Customers: customers,
	})
}

// pageParam reads the 1-indexed page query parameter, defaulting to the
// first page on absent or unusable values.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
