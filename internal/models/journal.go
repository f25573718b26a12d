package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a row of the journal_entries table.
type JournalEntry struct {
	EntryID          string         `db:"entry_id"`
	TenantID         string         `db:"tenant_id"`
	PeriodID         string         `db:"period_id"`
	EntryDate        time.Time      `db:"entry_date"`
	Status           string         `db:"status"`
	Source           string         `db:"source"`
	Description      string         `db:"description"`
	InvoiceID        sql.NullString `db:"invoice_id"`
	OriginalEntryID  sql.NullString `db:"original_entry_id"`
	ReversingEntryID sql.NullString `db:"reversing_entry_id"`
	AuditFields
}

// JournalLine represents a row of the journal_lines table.
type JournalLine struct {
	LineID    string          `db:"line_id"`
	EntryID   string          `db:"entry_id"`
	TenantID  string          `db:"tenant_id"`
	AccountID string          `db:"account_id"`
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
	Notes     sql.NullString  `db:"notes"`
	LineNo    int             `db:"line_no"`
}
