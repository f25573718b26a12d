package services

import (
	"context"
	"time"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portsrepo "github.com/SscSPs/kz_bookkeeping/internal/core/ports/repositories"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries and the token for the next page.
	ListEntries(ctx context.Context, tenantID string, filter portsrepo.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriterSvc defines the posting paths. None of them persists anything
// unless the whole entry is valid, balanced and lands in an open period.
type JournalWriterSvc interface {
	// PostTransaction derives a balanced two-line entry from a cash transaction and posts it.
	PostTransaction(ctx context.Context, intent domain.TransactionIntent) (*domain.JournalEntry, error)

	// PostManualEntry saves caller-supplied lines, as DRAFT when requested.
	PostManualEntry(ctx context.Context, req domain.ManualEntryRequest) (*domain.JournalEntry, error)

	// PostDraftEntry promotes a DRAFT entry to POSTED.
	PostDraftEntry(ctx context.Context, tenantID, entryID, actorID string) (*domain.JournalEntry, error)

	// ReverseEntry posts an entry with swapped lines dated date and marks the original REVERSED.
	ReverseEntry(ctx context.Context, tenantID, entryID string, date time.Time, actorID string) (*domain.JournalEntry, error)

	// PostLines posts a pre-built batch of lines such as a payroll run.
	PostLines(ctx context.Context, batch domain.LineBatch) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
