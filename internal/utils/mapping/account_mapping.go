package mapping

import (
	"database/sql"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	"github.com/SscSPs/kz_bookkeeping/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	var isCurrent sql.NullBool
	if d.IsCurrent != nil {
		isCurrent = sql.NullBool{Bool: *d.IsCurrent, Valid: true}
	}
	return models.Account{
		AccountID:        d.AccountID,
		TenantID:         d.TenantID,
		Code:             d.Code,
		Name:             d.Name,
		Class:            models.AccountClass(d.Class),
		IsCurrent:        isCurrent,
		ParentAccountID:  NullString(d.ParentAccountID),
		AllowManualEntry: d.AllowManualEntry,
		IsActive:         d.IsActive,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	var isCurrent *bool
	if m.IsCurrent.Valid {
		v := m.IsCurrent.Bool
		isCurrent = &v
	}
	return domain.Account{
		AccountID:        m.AccountID,
		TenantID:         m.TenantID,
		Code:             m.Code,
		Name:             m.Name,
		Class:            domain.AccountClass(m.Class),
		IsCurrent:        isCurrent,
		ParentAccountID:  m.ParentAccountID.String,
		AllowManualEntry: m.AllowManualEntry,
		IsActive:         m.IsActive,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
