package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/middleware"
)

// ErrorResponse is the body of every failed request. Actionable errors
// carry the screen where the user can fix the problem.
type ErrorResponse struct {
	Error       string   `json:"error"`
	Kind        string   `json:"kind,omitempty"`
	PeriodID    string   `json:"periodID,omitempty"`
	Status      string   `json:"status,omitempty"`
	Date        string   `json:"date,omitempty"`
	Keys        []string `json:"keys,omitempty"`
	Debit       string   `json:"debit,omitempty"`
	Credit      string   `json:"credit,omitempty"`
	Remediation string   `json:"remediation,omitempty"`
}

// respondError maps a service error to a status code and body. fallback is
// the message shown for unexpected errors, whose details stay in the log.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var periodErr *apperrors.PeriodError
	var cfgErr *apperrors.ConfigurationError
	var balErr *apperrors.BalanceError
	var appErr *apperrors.AppError

	switch {
	case errors.As(err, &periodErr):
		logger.Warn("Period rejected the request", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:       periodErr.Error(),
			Kind:        string(periodErr.Kind),
			PeriodID:    periodErr.PeriodID,
			Status:      periodErr.Status,
			Date:        periodErr.Date,
			Remediation: periodErr.Remediation,
		})
	case errors.As(err, &cfgErr):
		logger.Warn("Account configuration incomplete", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:       cfgErr.Error(),
			Keys:        cfgErr.Keys,
			Remediation: cfgErr.Remediation,
		})
	case errors.As(err, &balErr):
		logger.Warn("Unbalanced entry rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: balErr.Error(), Debit: balErr.Debit, Credit: balErr.Credit})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500:
		logger.Warn("Request rejected", slog.String("error", err.Error()))
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

// badRequest rejects a request whose body or query could not be bound.
func badRequest(c *gin.Context, what string, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + what + ": " + err.Error()})
}

// requestScope returns the tenant from the path and the authenticated actor.
// It writes the error response itself when either is missing.
func requestScope(c *gin.Context) (tenantID, actorID string, ok bool) {
	tenantID = c.Param("tenant_id")
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "tenant_id is required"})
		return "", "", false
	}
	actorID, ok = middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", "", false
	}
	return tenantID, actorID, true
}
