package models

import (
	"database/sql"
	"time"
)

// Period represents a row of the periods table.
type Period struct {
	PeriodID  string         `db:"period_id"`
	TenantID  string         `db:"tenant_id"`
	Name      string         `db:"name"`
	StartDate time.Time      `db:"start_date"`
	EndDate   time.Time      `db:"end_date"`
	Status    string         `db:"status"`
	ClosedBy  sql.NullString `db:"closed_by"`
	ClosedAt  sql.NullTime   `db:"closed_at"`
	AuditFields
}
