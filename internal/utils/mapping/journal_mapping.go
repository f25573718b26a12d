package mapping

import (
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	"github.com/SscSPs/kz_bookkeeping/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:          d.EntryID,
		TenantID:         d.TenantID,
		PeriodID:         d.PeriodID,
		EntryDate:        d.EntryDate,
		Status:           string(d.Status),
		Source:           string(d.Source),
		Description:      d.Description,
		InvoiceID:        NullStringPtr(d.InvoiceID),
		OriginalEntryID:  NullStringPtr(d.OriginalEntryID),
		ReversingEntryID: NullStringPtr(d.ReversingEntryID),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:          m.EntryID,
		TenantID:         m.TenantID,
		PeriodID:         m.PeriodID,
		EntryDate:        domain.DateOnly(m.EntryDate),
		Status:           domain.EntryStatus(m.Status),
		Source:           domain.EntrySource(m.Source),
		Description:      m.Description,
		InvoiceID:        StringPtr(m.InvoiceID),
		OriginalEntryID:  StringPtr(m.OriginalEntryID),
		ReversingEntryID: StringPtr(m.ReversingEntryID),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine.
// lineNo preserves the order lines were entered in.
func ToModelJournalLine(tenantID string, lineNo int, d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:    d.LineID,
		EntryID:   d.EntryID,
		TenantID:  tenantID,
		AccountID: d.AccountID,
		Debit:     d.Debit,
		Credit:    d.Credit,
		Notes:     NullString(d.Notes),
		LineNo:    lineNo,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:    m.LineID,
		EntryID:   m.EntryID,
		AccountID: m.AccountID,
		Debit:     m.Debit,
		Credit:    m.Credit,
		Notes:     m.Notes.String,
	}
}
