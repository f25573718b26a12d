package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portssvc "github.com/SscSPs/kz_bookkeeping/internal/core/ports/services"
	"github.com/SscSPs/kz_bookkeeping/internal/dto"
	"github.com/SscSPs/kz_bookkeeping/internal/middleware"
)

// payrollHandler handles payroll runs and the tenant settings they depend on.
type payrollHandler struct {
	payrollService  portssvc.PayrollSvcFacade
	settingsService portssvc.SettingsSvcFacade
}

// RegisterPayrollRoutes registers payroll and settings routes.
func RegisterPayrollRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollSvcFacade, settingsService portssvc.SettingsSvcFacade) {
	h := &payrollHandler{payrollService: payrollService, settingsService: settingsService}

	payroll := rg.Group("/payroll")
	{
		payroll.POST("/calculate", h.calculate)
		payroll.POST("/post", h.postPayroll)
	}

	settings := rg.Group("/settings")
	{
		settings.GET("/tax/:year", h.getTaxSettings)
		settings.PUT("/tax/:year", h.saveTaxSettings)
		settings.GET("/account-mappings", h.getAccountMappings)
		settings.PUT("/account-mappings/:key", h.setAccountMapping)
	}
}

// calculate previews one employee's withholdings without posting anything.
func (h *payrollHandler) calculate(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.CalculatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	calc, err := h.payrollService.Calculate(c.Request.Context(), tenantID, req.Year, req.Employee.ToDomain())
	if err != nil {
		respondError(c, err, "Failed to calculate payroll")
		return
	}
	c.JSON(http.StatusOK, calc)
}

func (h *payrollHandler) postPayroll(c *gin.Context) {
	tenantID, actorID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.PostPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	if req.PayDate.IsZero() {
		badRequest(c, "request format", errors.New("payDate is required"))
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to post payroll", slog.Int("employees", len(req.Employees)))

	posting, err := h.payrollService.PostPayroll(c.Request.Context(), req.ToDomain(tenantID, actorID))
	if err != nil {
		respondError(c, err, "Failed to post payroll")
		return
	}

	logger.Info("Payroll posted", slog.String("entry_id", posting.Entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToPayrollPostingResponse(posting))
}

func (h *payrollHandler) getTaxSettings(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		badRequest(c, "year", err)
		return
	}

	settings, err := h.settingsService.GetTaxSettings(c.Request.Context(), tenantID, year)
	if err != nil {
		respondError(c, err, "Failed to retrieve tax settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *payrollHandler) saveTaxSettings(c *gin.Context) {
	tenantID, actorID, ok := requestScope(c)
	if !ok {
		return
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		badRequest(c, "year", err)
		return
	}
	var settings domain.TaxSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		badRequest(c, "request format", err)
		return
	}
	settings.Year = year

	if err := h.settingsService.SaveTaxSettings(c.Request.Context(), tenantID, settings, actorID); err != nil {
		respondError(c, err, "Failed to save tax settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// getAccountMappings lists effective mappings and the payroll keys still unresolved.
func (h *payrollHandler) getAccountMappings(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	mappings, err := h.settingsService.GetAccountMappings(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err, "Failed to retrieve account mappings")
		return
	}
	missing := domain.PayrollAccountMappings(mappings).Missing()
	if missing == nil {
		missing = []string{}
	}
	c.JSON(http.StatusOK, dto.AccountMappingsResponse{Mappings: mappings, Missing: missing})
}

func (h *payrollHandler) setAccountMapping(c *gin.Context) {
	tenantID, actorID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.SetAccountMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	key := c.Param("key")
	if err := h.settingsService.SetAccountMapping(c.Request.Context(), tenantID, key, req.AccountID, actorID); err != nil {
		respondError(c, err, "Failed to save account mapping")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account mapping saved", slog.String("key", key), slog.String("account_id", req.AccountID))
	c.Status(http.StatusNoContent)
}
