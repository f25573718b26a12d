package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

// PostTransactionRequest records a simple cash transaction.
type PostTransactionRequest struct {
	Date             Date                   `json:"date"`
	Type             domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER"`
	Amount           decimal.Decimal        `json:"amount"`
	PrimaryAccountID string                 `json:"primaryAccountID" binding:"required"`
	CounterAccountID *string                `json:"counterAccountID"`
	InvoiceID        *string                `json:"invoiceID"`
	Description      string                 `json:"description" binding:"max=500"`
}

// ToDomain builds the intent for tenantID acted on by actorID.
func (r PostTransactionRequest) ToDomain(tenantID, actorID string) domain.TransactionIntent {
	return domain.TransactionIntent{
		TenantID:         tenantID,
		Date:             r.Date.Time,
		Type:             r.Type,
		Amount:           r.Amount,
		PrimaryAccountID: r.PrimaryAccountID,
		CounterAccountID: r.CounterAccountID,
		InvoiceID:        r.InvoiceID,
		Description:      r.Description,
		ActorID:          actorID,
	}
}

// LineRequest is one line of a manual entry. Exactly one side is non-zero.
type LineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Notes     string          `json:"notes" binding:"max=500"`
}

// ManualEntryRequest carries caller-supplied lines.
type ManualEntryRequest struct {
	Date        Date          `json:"date"`
	Description string        `json:"description" binding:"required,max=500"`
	Lines       []LineRequest `json:"lines" binding:"required,min=2,dive"`
	Draft       bool          `json:"draft"`
}

// ToDomain builds the manual entry request for tenantID acted on by actorID.
func (r ManualEntryRequest) ToDomain(tenantID, actorID string) domain.ManualEntryRequest {
	lines := make([]domain.JournalLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.JournalLine{AccountID: l.AccountID, Debit: l.Debit, Credit: l.Credit, Notes: l.Notes}
	}
	return domain.ManualEntryRequest{
		TenantID:    tenantID,
		Date:        r.Date.Time,
		Description: r.Description,
		Lines:       lines,
		Draft:       r.Draft,
		ActorID:     actorID,
	}
}

// ReverseEntryRequest optionally dates the reversal. An empty body reverses on the original date.
type ReverseEntryRequest struct {
	Date *Date `json:"date"`
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=0"`
	NextToken *string `form:"nextToken"`
	From      string  `form:"from"`
	To        string  `form:"to"`
	Status    string  `form:"status" binding:"omitempty,oneof=DRAFT POSTED REVERSED"`
}

// JournalLineResponse defines the data returned for a line.
type JournalLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Notes     string          `json:"notes,omitempty"`
}

// JournalEntryResponse defines the data returned for an entry.
type JournalEntryResponse struct {
	EntryID          string                `json:"entryID"`
	PeriodID         string                `json:"periodID"`
	EntryDate        Date                  `json:"entryDate"`
	Status           domain.EntryStatus    `json:"status"`
	Source           domain.EntrySource    `json:"source"`
	Description      string                `json:"description"`
	InvoiceID        *string               `json:"invoiceID,omitempty"`
	OriginalEntryID  *string               `json:"originalEntryID,omitempty"`
	ReversingEntryID *string               `json:"reversingEntryID,omitempty"`
	Lines            []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	CreatedBy        string                `json:"createdBy"`
	LastUpdatedAt    time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy    string                `json:"lastUpdatedBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:          e.EntryID,
		PeriodID:         e.PeriodID,
		EntryDate:        NewDate(e.EntryDate),
		Status:           e.Status,
		Source:           e.Source,
		Description:      e.Description,
		InvoiceID:        e.InvoiceID,
		OriginalEntryID:  e.OriginalEntryID,
		ReversingEntryID: e.ReversingEntryID,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
		LastUpdatedAt:    e.LastUpdatedAt,
		LastUpdatedBy:    e.LastUpdatedBy,
	}
	for _, l := range e.Lines {
		resp.Lines = append(resp.Lines, JournalLineResponse{
			LineID:    l.LineID,
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
			Notes:     l.Notes,
		})
	}
	return resp
}

// ListEntriesResponse defines the paginated response for listing entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}
