package dto

import (
	"time"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

// CreatePeriodRequest defines a new period. Dates are inclusive.
type CreatePeriodRequest struct {
	Name      string `json:"name" binding:"max=100"`
	StartDate Date   `json:"startDate"`
	EndDate   Date   `json:"endDate"`
}

// InitializeFiscalYearRequest creates twelve monthly periods.
type InitializeFiscalYearRequest struct {
	Year      int `json:"year" binding:"required,min=2000,max=2100"`
	OpenMonth int `json:"openMonth" binding:"omitempty,min=1,max=12"` // 0 opens none
}

// PeriodForDateParams is the query of the period lookup.
type PeriodForDateParams struct {
	Date string `form:"date" binding:"required"`
}

// PeriodResponse defines the data returned for a period.
type PeriodResponse struct {
	PeriodID      string              `json:"periodID"`
	Name          string              `json:"name"`
	StartDate     Date                `json:"startDate"`
	EndDate       Date                `json:"endDate"`
	Status        domain.PeriodStatus `json:"status"`
	ClosedBy      *string             `json:"closedBy,omitempty"`
	ClosedAt      *time.Time          `json:"closedAt,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	CreatedBy     string              `json:"createdBy"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy string              `json:"lastUpdatedBy"`
}

// ToPeriodResponse converts a domain.Period to PeriodResponse DTO
func ToPeriodResponse(p *domain.Period) PeriodResponse {
	return PeriodResponse{
		PeriodID:      p.PeriodID,
		Name:          p.Name,
		StartDate:     NewDate(p.StartDate),
		EndDate:       NewDate(p.EndDate),
		Status:        p.Status,
		ClosedBy:      p.ClosedBy,
		ClosedAt:      p.ClosedAt,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}

// ListPeriodsResponse wraps a list of periods.
type ListPeriodsResponse struct {
	Periods []PeriodResponse `json:"periods"`
}

// ToListPeriodsResponse converts a slice of domain.Period to the list DTO.
func ToListPeriodsResponse(periods []domain.Period) ListPeriodsResponse {
	res := make([]PeriodResponse, len(periods))
	for i := range periods {
		res[i] = ToPeriodResponse(&periods[i])
	}
	return ListPeriodsResponse{Periods: res}
}
