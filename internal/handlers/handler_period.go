package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portssvc "github.com/SscSPs/kz_bookkeeping/internal/core/ports/services"
	"github.com/SscSPs/kz_bookkeeping/internal/dto"
	"github.com/SscSPs/kz_bookkeeping/internal/middleware"
)

// periodHandler handles HTTP requests related to accounting periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

// RegisterPeriodRoutes registers routes related to periods.
func RegisterPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := &periodHandler{periodService: periodService}

	periods := rg.Group("/periods")
	{
		periods.GET("", h.listPeriods)
		periods.POST("", h.createPeriod)
		periods.POST("/fiscal-year", h.initializeFiscalYear)
		periods.GET("/for-date", h.periodForDate)
		periods.GET("/:period_id", h.getPeriod)
		periods.POST("/:period_id/open", h.transition(domain.PeriodOpen))
		periods.POST("/:period_id/soft-close", h.transition(domain.PeriodSoftClosed))
		periods.POST("/:period_id/hard-close", h.transition(domain.PeriodHardClosed))
	}
}

func (h *periodHandler) listPeriods(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	periods, err := h.periodService.ListPeriods(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err, "Failed to list periods")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPeriodsResponse(periods))
}

func (h *periodHandler) getPeriod(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	period, err := h.periodService.GetPeriod(c.Request.Context(), tenantID, c.Param("period_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// periodForDate returns the period covering ?date=YYYY-MM-DD whatever its status.
func (h *periodHandler) periodForDate(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.PeriodForDateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	date, err := dto.ParseDate(params.Date)
	if err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	period, err := h.periodService.FindPeriodForDate(c.Request.Context(), tenantID, date)
	if err != nil {
		respondError(c, err, "Failed to find period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

func (h *periodHandler) createPeriod(c *gin.Context) {
	tenantID, actorID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		badRequest(c, "request format", errors.New("startDate and endDate are required"))
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), tenantID, req.Name, req.StartDate.Time, req.EndDate.Time, actorID)
	if err != nil {
		respondError(c, err, "Failed to create period")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Period created", slog.String("period_id", period.PeriodID))
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

func (h *periodHandler) initializeFiscalYear(c *gin.Context) {
	tenantID, actorID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.InitializeFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	periods, err := h.periodService.InitializeFiscalYear(c.Request.Context(), tenantID, req.Year, time.Month(req.OpenMonth), actorID)
	if err != nil {
		respondError(c, err, "Failed to initialize fiscal year")
		return
	}
	c.JSON(http.StatusCreated, dto.ToListPeriodsResponse(periods))
}

// transition returns the handler moving a period to status.
func (h *periodHandler) transition(status domain.PeriodStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, actorID, ok := requestScope(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		periodID := c.Param("period_id")

		var period *domain.Period
		var err error
		switch status {
		case domain.PeriodOpen:
			period, err = h.periodService.OpenPeriod(ctx, tenantID, periodID, actorID)
		case domain.PeriodSoftClosed:
			period, err = h.periodService.SoftClosePeriod(ctx, tenantID, periodID, actorID)
		default:
			period, err = h.periodService.HardClosePeriod(ctx, tenantID, periodID, actorID)
		}
		if err != nil {
			respondError(c, err, "Failed to change period status")
			return
		}

		middleware.GetLoggerFromCtx(ctx).Info("Period status changed",
			slog.String("period_id", periodID),
			slog.String("status", string(period.Status)))
		c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
	}
}
