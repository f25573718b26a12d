package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	EntryDraft    EntryStatus = "DRAFT"
	EntryPosted   EntryStatus = "POSTED"
	EntryReversed EntryStatus = "REVERSED"
)

// EntrySource records which posting path produced an entry.
type EntrySource string

const (
	SourceTransaction EntrySource = "TRANSACTION"
	SourceManual      EntrySource = "MANUAL"
	SourcePayroll     EntrySource = "PAYROLL"
	SourceReversal    EntrySource = "REVERSAL"
)

// JournalEntry is the header of a balanced set of journal lines.
type JournalEntry struct {
	EntryID          string        `json:"entryID"`
	TenantID         string        `json:"tenantID"`
	PeriodID         string        `json:"periodID"`
	EntryDate        time.Time     `json:"entryDate"`
	Status           EntryStatus   `json:"status"`
	Source           EntrySource   `json:"source"`
	Description      string        `json:"description"`
	InvoiceID        *string       `json:"invoiceID,omitempty"`
	OriginalEntryID  *string       `json:"originalEntryID,omitempty"`
	ReversingEntryID *string       `json:"reversingEntryID,omitempty"`
	Lines            []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single debit or credit against one account.
type JournalLine struct {
	LineID    string          `json:"lineID"`
	EntryID   string          `json:"entryID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Notes     string          `json:"notes,omitempty"`
}

// DebitLine builds a debit-only line.
func DebitLine(accountID string, amount decimal.Decimal, notes string) JournalLine {
	return JournalLine{AccountID: accountID, Debit: amount, Credit: decimal.Zero, Notes: notes}
}

// CreditLine builds a credit-only line.
func CreditLine(accountID string, amount decimal.Decimal, notes string) JournalLine {
	return JournalLine{AccountID: accountID, Debit: decimal.Zero, Credit: amount, Notes: notes}
}

// Reversed returns the line with its debit and credit swapped.
func (l JournalLine) Reversed() JournalLine {
	l.Debit, l.Credit = l.Credit, l.Debit
	return l
}

// TotalDebit sums the debit side of the lines.
func TotalDebit(lines []JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side of the lines.
func TotalCredit(lines []JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Credit)
	}
	return total
}

// AmountScale is the number of decimal places money is stored with.
const AmountScale = 2

// ValidateLines checks line shape (non-negative, never both sides, never empty)
// and the balance identity. Lines are constructed values, so the comparison is exact.
func ValidateLines(lines []JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: an entry needs at least two lines", apperrors.ErrValidation)
	}
	for i, l := range lines {
		if l.AccountID == "" {
			return fmt.Errorf("%w: line %d has no account", apperrors.ErrValidation, i+1)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		hasDebit, hasCredit := !l.Debit.IsZero(), !l.Credit.IsZero()
		if hasDebit && hasCredit {
			return fmt.Errorf("%w: line %d has both debit and credit", apperrors.ErrValidation, i+1)
		}
		if !hasDebit && !hasCredit {
			return fmt.Errorf("%w: line %d has no amount", apperrors.ErrValidation, i+1)
		}
		if !l.Debit.Equal(l.Debit.Round(AmountScale)) || !l.Credit.Equal(l.Credit.Round(AmountScale)) {
			return fmt.Errorf("%w: line %d is finer than one tiyn", apperrors.ErrValidation, i+1)
		}
	}
	return CheckBalanced(lines)
}

// CheckBalanced returns a BalanceError unless Σdebit == Σcredit exactly.
func CheckBalanced(lines []JournalLine) error {
	debit, credit := TotalDebit(lines), TotalCredit(lines)
	if !debit.Equal(credit) {
		return &apperrors.BalanceError{Debit: debit.StringFixed(2), Credit: credit.StringFixed(2)}
	}
	return nil
}

// TransactionType is the kind of simple cash transaction a user records.
type TransactionType string

const (
	TransactionIncome   TransactionType = "INCOME"
	TransactionExpense  TransactionType = "EXPENSE"
	TransactionTransfer TransactionType = "TRANSFER"
)

// TransactionIntent describes a cash transaction before it becomes journal lines.
// PrimaryAccountID is the cash or bank account (the source for transfers);
// CounterAccountID is the expense account, the transfer destination, or an
// optional revenue override for income.
type TransactionIntent struct {
	TenantID         string          `validate:"required"`
	Date             time.Time       `validate:"required"`
	Type             TransactionType `validate:"required,oneof=INCOME EXPENSE TRANSFER"`
	Amount           decimal.Decimal
	PrimaryAccountID string  `validate:"required"`
	CounterAccountID *string `validate:"omitempty,min=1"`
	InvoiceID        *string `validate:"omitempty,min=1"`
	Description      string  `validate:"max=500"`
	ActorID          string
}

// ManualEntryRequest is an ad hoc entry whose lines the caller supplies.
type ManualEntryRequest struct {
	TenantID    string    `validate:"required"`
	Date        time.Time `validate:"required"`
	Description string    `validate:"required,max=500"`
	Lines       []JournalLine
	Draft       bool
	ActorID     string
}

// LineBatch is a pre-built set of lines posted by an internal producer such as payroll.
type LineBatch struct {
	TenantID    string
	Date        time.Time
	Description string
	Source      EntrySource
	Lines       []JournalLine
	ActorID     string
}
