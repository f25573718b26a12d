package pgsql

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/kz_bookkeeping/internal/core/ports/repositories"
)

// pgxInvoiceReader reads the revenue mapping of invoices owned by the invoicing module.
type pgxInvoiceReader struct {
	BaseRepository
}

func newPgxInvoiceReader(pool *pgxpool.Pool) portsrepo.InvoiceReader {
	return &pgxInvoiceReader{BaseRepository: BaseRepository{Pool: pool}}
}

// FindInvoiceRevenueAccount returns "" when the invoice exists but has no revenue account.
func (r *pgxInvoiceReader) FindInvoiceRevenueAccount(ctx context.Context, tenantID, invoiceID string) (string, error) {
	var accountID sql.NullString
	err := r.Pool.QueryRow(ctx,
		`SELECT revenue_account_id FROM invoices WHERE tenant_id = $1 AND invoice_id = $2;`,
		tenantID, invoiceID,
	).Scan(&accountID)
	if err != nil {
		return "", translateError(err, "invoice "+invoiceID)
	}
	return accountID.String, nil
}
