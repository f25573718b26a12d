package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/kz_bookkeeping/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		PeriodRepo:    newPgxPeriodRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
		SettingsRepo:  newPgxSettingsRepository(dbPool),
		InvoiceReader: newPgxInvoiceReader(dbPool),
	}
}
