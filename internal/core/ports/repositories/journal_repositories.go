package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

// EntryFilter narrows ListEntries. Nil fields do not filter.
type EntryFilter struct {
	From   *time.Time
	To     *time.Time
	Status *domain.EntryStatus
}

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves an entry together with its lines.
	FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entry headers, newest first, using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, tenantID string, filter EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal data. Every write
// re-reads the status of the entry's period inside its transaction and fails
// with a PeriodError when the period no longer accepts postings.
type JournalWriter interface {
	// SaveEntry inserts the entry header and all of its lines as one unit.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// PostDraft promotes a DRAFT entry to POSTED, assigning the period it now belongs to.
	PostDraft(ctx context.Context, tenantID, entryID, periodID, userID string, now time.Time) error

	// SaveReversal inserts the reversing entry and marks the original REVERSED in one transaction.
	SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
