package mapping

import (
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	"github.com/SscSPs/kz_bookkeeping/internal/models"
)

// ToModelPeriod converts a domain Period to a model Period
func ToModelPeriod(d domain.Period) models.Period {
	return models.Period{
		PeriodID:    d.PeriodID,
		TenantID:    d.TenantID,
		Name:        d.Name,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Status:      string(d.Status),
		ClosedBy:    NullStringPtr(d.ClosedBy),
		ClosedAt:    NullTimePtr(d.ClosedAt),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPeriod converts a model Period to a domain Period. Dates come back
// from the database as UTC midnight.
func ToDomainPeriod(m models.Period) domain.Period {
	return domain.Period{
		PeriodID:    m.PeriodID,
		TenantID:    m.TenantID,
		Name:        m.Name,
		StartDate:   domain.DateOnly(m.StartDate),
		EndDate:     domain.DateOnly(m.EndDate),
		Status:      domain.PeriodStatus(m.Status),
		ClosedBy:    StringPtr(m.ClosedBy),
		ClosedAt:    TimePtr(m.ClosedAt),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
