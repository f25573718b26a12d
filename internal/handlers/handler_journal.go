package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portsrepo "github.com/SscSPs/kz_bookkeeping/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kz_bookkeeping/internal/core/ports/services"
	"github.com/SscSPs/kz_bookkeeping/internal/dto"
	"github.com/SscSPs/kz_bookkeeping/internal/middleware"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// RegisterJournalRoutes registers routes related to transactions and journal entries.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := &journalHandler{journalService: journalService}

	rg.POST("/transactions", h.postTransaction)

	entries := rg.Group("/entries")
	{
		entries.GET("", h.listEntries)
		entries.POST("", h.postManualEntry)
		entries.GET("/:entry_id", h.getEntry)
		entries.POST("/:entry_id/post", h.postDraft)
		entries.POST("/:entry_id/reverse", h.reverseEntry)
	}
}

// postTransaction turns a simple income, expense or transfer into a posted entry.
func (h *journalHandler) postTransaction(c *gin.Context) {
	tenantID, actorID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	if req.Date.IsZero() {
		badRequest(c, "request format", errors.New("date is required"))
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to post transaction",
		slog.String("type", string(req.Type)),
		slog.String("amount", req.Amount.String()))

	entry, err := h.journalService.PostTransaction(c.Request.Context(), req.ToDomain(tenantID, actorID))
	if err != nil {
		respondError(c, err, "Failed to post transaction")
		return
	}

	logger.Info("Transaction posted", slog.String("entry_id", entry.EntryID), slog.String("period_id", entry.PeriodID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// postManualEntry records caller-supplied lines, either posted or as a draft.
func (h *journalHandler) postManualEntry(c *gin.Context) {
	tenantID, actorID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.ManualEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	if req.Date.IsZero() {
		badRequest(c, "request format", errors.New("date is required"))
		return
	}

	entry, err := h.journalService.PostManualEntry(c.Request.Context(), req.ToDomain(tenantID, actorID))
	if err != nil {
		respondError(c, err, "Failed to record journal entry")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Manual entry recorded",
		slog.String("entry_id", entry.EntryID),
		slog.String("status", string(entry.Status)))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) postDraft(c *gin.Context) {
	tenantID, actorID, ok := requestScope(c)
	if !ok {
		return
	}
	entry, err := h.journalService.PostDraftEntry(c.Request.Context(), tenantID, c.Param("entry_id"), actorID)
	if err != nil {
		respondError(c, err, "Failed to post draft entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseEntry posts the mirror entry. An empty body dates it like the original.
func (h *journalHandler) reverseEntry(c *gin.Context) {
	tenantID, actorID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.ReverseEntryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "request format", err)
			return
		}
	}
	var date time.Time
	if req.Date != nil {
		date = req.Date.Time
	}

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), tenantID, c.Param("entry_id"), date, actorID)
	if err != nil {
		respondError(c, err, "Failed to reverse entry")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Entry reversed",
		slog.String("entry_id", c.Param("entry_id")),
		slog.String("reversal_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}

func (h *journalHandler) getEntry(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	entry, err := h.journalService.GetEntry(c.Request.Context(), tenantID, c.Param("entry_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries returns one page of entries, newest first.
func (h *journalHandler) listEntries(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	var filter portsrepo.EntryFilter
	if params.From != "" {
		from, err := dto.ParseDate(params.From)
		if err != nil {
			badRequest(c, "query parameters", err)
			return
		}
		filter.From = &from
	}
	if params.To != "" {
		to, err := dto.ParseDate(params.To)
		if err != nil {
			badRequest(c, "query parameters", err)
			return
		}
		filter.To = &to
	}
	if params.Status != "" {
		status := domain.EntryStatus(params.Status)
		filter.Status = &status
	}

	entries, nextToken, err := h.journalService.ListEntries(c.Request.Context(), tenantID, filter, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, err, "Failed to list journal entries")
		return
	}

	resp := dto.ListEntriesResponse{Entries: make([]dto.JournalEntryResponse, 0, len(entries)), NextToken: nextToken}
	for i := range entries {
		resp.Entries = append(resp.Entries, dto.ToJournalEntryResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, resp)
}
