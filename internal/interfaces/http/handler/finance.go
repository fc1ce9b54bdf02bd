package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	financeapp "github.com/poloatt/attadia-backend/internal/application/finance"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/interfaces/http/dto"
)

// FinanceHandler handles currency, account and balance HTTP requests
type FinanceHandler struct {
	BaseHandler
	financeService *financeapp.Service
	balanceService *financeapp.BalanceService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(
	financeService *financeapp.Service,
	balanceService *financeapp.BalanceService,
) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
		balanceService: balanceService,
	}
}

// RegisterRoutes registers finance routes
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.CreateCurrency)
		currencies.GET("", h.ListCurrencies)
		currencies.DELETE("/:id", h.DeleteCurrency)
	}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.CreateAccount)
		accounts.GET("", h.ListAccounts)
		accounts.GET("/:id", h.GetAccount)
		accounts.GET("/:id/balance", h.AccountBalance)
		accounts.PUT("/:id", h.UpdateAccount)
		accounts.DELETE("/:id", h.DeleteAccount)
	}

	rg.GET("/balances", h.BalanceReport)
}

// CreateCurrency registers a currency for the tenant
func (h *FinanceHandler) CreateCurrency(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if userID, err := getUserID(c); err == nil && userID != uuid.Nil {
		req.CreatedBy = &userID
	}

	currency, err := h.financeService.CreateCurrency(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, currency)
}

// ListCurrencies returns the tenant's registered currencies
func (h *FinanceHandler) ListCurrencies(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	currencies, err := h.financeService.ListCurrencies(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, currencies)
}

// DeleteCurrency removes a currency that no account references
func (h *FinanceHandler) DeleteCurrency(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	currencyID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid currency ID format")
		return
	}

	if err := h.financeService.DeleteCurrency(c.Request.Context(), tenantID, currencyID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateAccount creates a new account
func (h *FinanceHandler) CreateAccount(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if userID, err := getUserID(c); err == nil && userID != uuid.Nil {
		req.CreatedBy = &userID
	}

	account, err := h.financeService.CreateAccount(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, account)
}

// ListAccounts returns a paginated list of accounts
func (h *FinanceHandler) ListAccounts(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	req.Normalize()

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Filters:  map[string]interface{}{},
	}
	if t := c.Query("type"); t != "" {
		filter.Filters["type"] = t
	}
	if cur := c.Query("currency"); cur != "" {
		filter.Filters["currency"] = cur
	}
	if active := c.Query("active"); active != "" {
		filter.Filters["active"] = active
	}

	accounts, total, err := h.financeService.ListAccounts(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, accounts, total, req.Page, req.PageSize)
}

// GetAccount returns a single account
func (h *FinanceHandler) GetAccount(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	accountID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	account, err := h.financeService.GetAccountByID(c.Request.Context(), tenantID, accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// AccountBalance returns the computed balance of one account
func (h *FinanceHandler) AccountBalance(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	accountID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	balance, err := h.balanceService.GetAccountBalance(c.Request.Context(), tenantID, accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balance)
}

// BalanceReport returns per-account and per-currency balances as of a date
func (h *FinanceHandler) BalanceReport(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid as_of date, expected YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	report, err := h.balanceService.GetReport(c.Request.Context(), tenantID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// UpdateAccount updates account name, active flag or remark
func (h *FinanceHandler) UpdateAccount(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	accountID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	var req financeapp.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	account, err := h.financeService.UpdateAccount(c.Request.Context(), tenantID, accountID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// DeleteAccount removes an account with no transactions
func (h *FinanceHandler) DeleteAccount(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	accountID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	if err := h.financeService.DeleteAccount(c.Request.Context(), tenantID, accountID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
