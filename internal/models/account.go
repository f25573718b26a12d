package models

import "database/sql"

// AccountClass mirrors the account_class column.
type AccountClass string

// Account represents a row of the accounts table.
type Account struct {
	AccountID        string         `db:"account_id"`
	TenantID         string         `db:"tenant_id"`
	Code             string         `db:"code"`
	Name             string         `db:"name"`
	Class            AccountClass   `db:"account_class"`
	IsCurrent        sql.NullBool   `db:"is_current"`
	ParentAccountID  sql.NullString `db:"parent_account_id"`
	AllowManualEntry bool           `db:"allow_manual_entry"`
	IsActive         bool           `db:"is_active"`
	AuditFields
}
