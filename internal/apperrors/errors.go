package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the request conflicts with the current state of a resource.
var ErrConflict = errors.New("conflict with current state")

// ErrForbidden indicates the caller may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal is returned when an unexpected failure must not leak details to callers.
var ErrInternal = errors.New("internal error")

// ErrConfiguration marks a missing or unmapped account. Not retryable.
var ErrConfiguration = errors.New("missing account mapping")

// ErrPeriodNotFound indicates that no accounting period covers a date.
var ErrPeriodNotFound = errors.New("no accounting period covers the date")

// ErrPeriodClosed indicates the accounting period does not accept postings.
var ErrPeriodClosed = errors.New("accounting period is closed")

// ErrUnbalanced indicates constructed lines do not balance. Always an engine bug.
var ErrUnbalanced = errors.New("journal lines do not balance")

// Remediation screens surfaced to users together with actionable errors.
const (
	RemediationPeriods         = "/periods"
	RemediationAccountMappings = "/settings/account-mappings"
)

// AppError carries a status code hint and a message around an underlying error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports account mapping keys or codes that do not resolve
// for a tenant. It must be fixed by an administrator.
type ConfigurationError struct {
	TenantID    string
	Keys        []string
	Remediation string
}

// NewConfigurationError builds a ConfigurationError pointing at the account mapping settings.
func NewConfigurationError(tenantID string, keys ...string) *ConfigurationError {
	return &ConfigurationError{TenantID: tenantID, Keys: keys, Remediation: RemediationAccountMappings}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConfiguration.Error(), strings.Join(e.Keys, ", "))
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// PeriodErrorKind distinguishes the two expected period failures.
type PeriodErrorKind string

const (
	PeriodErrorNotFound PeriodErrorKind = "NOT_FOUND"
	PeriodErrorClosed   PeriodErrorKind = "CLOSED"
)

// PeriodError is returned when a date has no period or the period is not open.
type PeriodError struct {
	Kind        PeriodErrorKind
	TenantID    string
	PeriodID    string
	Status      string
	Date        string
	Remediation string
}

// NewPeriodNotFoundError reports a date with no covering period.
func NewPeriodNotFoundError(tenantID, date string) *PeriodError {
	return &PeriodError{Kind: PeriodErrorNotFound, TenantID: tenantID, Date: date, Remediation: RemediationPeriods}
}

// NewPeriodClosedError reports a period whose status does not accept writes.
func NewPeriodClosedError(tenantID, periodID, status string) *PeriodError {
	return &PeriodError{Kind: PeriodErrorClosed, TenantID: tenantID, PeriodID: periodID, Status: status, Remediation: RemediationPeriods}
}

func (e *PeriodError) Error() string {
	if e.Kind == PeriodErrorNotFound {
		return fmt.Sprintf("%s: %s", ErrPeriodNotFound.Error(), e.Date)
	}
	return fmt.Sprintf("%s: period %s is %s", ErrPeriodClosed.Error(), e.PeriodID, e.Status)
}

func (e *PeriodError) Is(target error) bool {
	switch e.Kind {
	case PeriodErrorNotFound:
		return target == ErrPeriodNotFound
	case PeriodErrorClosed:
		return target == ErrPeriodClosed
	}
	return false
}

// BalanceError reports the totals of an unbalanced set of lines.
type BalanceError struct {
	Debit  string
	Credit string
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("%s: debits %s, credits %s", ErrUnbalanced.Error(), e.Debit, e.Credit)
}

func (e *BalanceError) Is(target error) bool {
	return target == ErrUnbalanced
}
