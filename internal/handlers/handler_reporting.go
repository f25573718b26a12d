package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portssvc "github.com/SscSPs/kz_bookkeeping/internal/core/ports/services"
	"github.com/SscSPs/kz_bookkeeping/internal/dto"
	"github.com/SscSPs/kz_bookkeeping/internal/middleware"
)

// reportingHandler handles HTTP requests for financial statements.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	timeout          time.Duration
}

// RegisterReportingRoutes registers report and opening balance routes.
// A non-positive timeout leaves report requests bounded only by the client.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, timeout time.Duration) {
	h := &reportingHandler{reportingService: reportingService, timeout: timeout}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.report(domain.ReportTrialBalance))
		reports.GET("/balance-sheet", h.report(domain.ReportBalanceSheet))
		reports.GET("/profit-and-loss", h.report(domain.ReportProfitLoss))
	}
	rg.PUT("/opening-balances/:year", h.setOpeningBalances)
}

// report returns the handler building a statement of the given kind for ?from=&to=.
func (h *reportingHandler) report(kind domain.ReportKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, _, ok := requestScope(c)
		if !ok {
			return
		}
		var params dto.ReportParams
		if err := c.ShouldBindQuery(&params); err != nil {
			badRequest(c, "query parameters", err)
			return
		}
		from, err := dto.ParseDate(params.From)
		if err != nil {
			badRequest(c, "query parameters", err)
			return
		}
		to, err := dto.ParseDate(params.To)
		if err != nil {
			badRequest(c, "query parameters", err)
			return
		}

		ctx := c.Request.Context()
		if h.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, h.timeout)
			defer cancel()
		}

		report, err := h.reportingService.BuildReport(ctx, domain.ReportRequest{Kind: kind, TenantID: tenantID, From: from, To: to})
		if err != nil {
			respondError(c, err, "Failed to build report")
			return
		}

		middleware.GetLoggerFromCtx(ctx).Info("Report built",
			slog.String("kind", string(kind)),
			slog.String("from", params.From),
			slog.String("to", params.To))
		c.JSON(http.StatusOK, report)
	}
}

// setOpeningBalances replaces the opening balances of the fiscal year in the path.
func (h *reportingHandler) setOpeningBalances(c *gin.Context) {
	tenantID, actorID, ok := requestScope(c)
	if !ok {
		return
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		badRequest(c, "fiscal year", err)
		return
	}
	var req dto.SetOpeningBalancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	if err := h.reportingService.SetOpeningBalances(c.Request.Context(), tenantID, year, req.Balances, actorID); err != nil {
		respondError(c, err, "Failed to save opening balances")
		return
	}
	c.Status(http.StatusNoContent)
}
