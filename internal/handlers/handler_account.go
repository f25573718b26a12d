package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/kz_bookkeeping/internal/core/ports/services"
	"github.com/SscSPs/kz_bookkeeping/internal/dto"
	"github.com/SscSPs/kz_bookkeeping/internal/middleware"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	chartService     portssvc.ChartSvcFacade
	reportingService portssvc.ReportingService
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, chartService portssvc.ChartSvcFacade, reportingService portssvc.ReportingService) {
	h := &accountHandler{chartService: chartService, reportingService: reportingService}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("", h.createAccount)
		accounts.POST("/seed", h.seedChart)
		accounts.GET("/:account_id", h.getAccount)
		accounts.PATCH("/:account_id", h.updateAccount)
		accounts.DELETE("/:account_id", h.deactivateAccount)
		accounts.GET("/:account_id/balance", h.getAccountBalance)
	}
}

// createAccount adds one account to the tenant's chart.
func (h *accountHandler) createAccount(c *gin.Context) {
	tenantID, actorID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create account", slog.String("code", req.Code), slog.String("class", string(req.Class)))

	account, err := h.chartService.CreateAccount(c.Request.Context(), req.ToDomain(tenantID), actorID)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// seedChart creates the built-in chart for a tenant that has no accounts.
func (h *accountHandler) seedChart(c *gin.Context) {
	tenantID, actorID, ok := requestScope(c)
	if !ok {
		return
	}
	accounts, err := h.chartService.SeedChartFromTemplate(c.Request.Context(), tenantID, actorID)
	if err != nil {
		respondError(c, err, "Failed to seed chart of accounts")
		return
	}
	c.JSON(http.StatusCreated, dto.ToListAccountsResponse(accounts))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	account, err := h.chartService.ResolveByID(c.Request.Context(), tenantID, c.Param("account_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	accounts, err := h.chartService.ListAccounts(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Accounts listed successfully", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ToListAccountsResponse(accounts))
}

func (h *accountHandler) updateAccount(c *gin.Context) {
	tenantID, actorID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	account, err := h.chartService.UpdateAccount(c.Request.Context(), tenantID, c.Param("account_id"), req.ToDomain(), actorID)
	if err != nil {
		respondError(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount hides an account from posting. Accounts are never deleted.
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	tenantID, actorID, ok := requestScope(c)
	if !ok {
		return
	}
	if err := h.chartService.DeactivateAccount(c.Request.Context(), tenantID, c.Param("account_id"), actorID); err != nil {
		respondError(c, err, "Failed to deactivate account")
		return
	}
	c.Status(http.StatusNoContent)
}

// getAccountBalance derives the balance from opening balances and posted lines.
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.AccountBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	asOf, err := dto.ParseDate(params.AsOf)
	if err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	balance, err := h.reportingService.AccountBalance(c.Request.Context(), tenantID, c.Param("account_id"), asOf)
	if err != nil {
		respondError(c, err, "Failed to calculate account balance")
		return
	}
	c.JSON(http.StatusOK, balance)
}
