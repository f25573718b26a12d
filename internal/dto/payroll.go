package dto

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

// EmployeePayRequest is one employee's monthly pay. Preset selects flags by
// name and wins over explicit flags.
type EmployeePayRequest struct {
	EmployeeID    string                  `json:"employeeID" binding:"required"`
	Gross         decimal.Decimal         `json:"gross"`
	IsResident    *bool                   `json:"isResident"` // defaults to true
	Preset        string                  `json:"preset" binding:"omitempty,oneof=standard pensioner non_resident"`
	Flags         *domain.EmploymentFlags `json:"flags"`
	WorkedDays    *int                    `json:"workedDays" binding:"omitempty,min=0"`
	TotalWorkDays *int                    `json:"totalWorkDays" binding:"omitempty,min=1"`
}

// ToDomain converts the request. Without preset or flags the standard flags apply.
func (r EmployeePayRequest) ToDomain() domain.EmployeePay {
	pay := domain.EmployeePay{
		EmployeeID:    r.EmployeeID,
		Gross:         r.Gross,
		IsResident:    true,
		Flags:         domain.StandardFlags(),
		WorkedDays:    r.WorkedDays,
		TotalWorkDays: r.TotalWorkDays,
	}
	if r.IsResident != nil {
		pay.IsResident = *r.IsResident
	}
	if r.Flags != nil {
		pay.Flags = *r.Flags
	}
	if r.Preset == "" {
		return pay
	}
	if flags, ok := domain.FlagsForPreset(r.Preset); ok {
		pay.Flags = flags
		if r.Preset == "non_resident" && r.IsResident == nil {
			pay.IsResident = false
		}
	}
	return pay
}

// CalculatePayrollRequest previews one employee's payroll for a year.
type CalculatePayrollRequest struct {
	Year     int                `json:"year" binding:"required,min=2000,max=2100"`
	Employee EmployeePayRequest `json:"employee"`
}

// PostPayrollRequest posts a payroll run as one journal entry.
type PostPayrollRequest struct {
	PayDate     Date                 `json:"payDate"`
	Description string               `json:"description" binding:"max=500"`
	Employees   []EmployeePayRequest `json:"employees" binding:"required,min=1,dive"`
}

// ToDomain builds the run for tenantID acted on by actorID.
func (r PostPayrollRequest) ToDomain(tenantID, actorID string) domain.PayrollRun {
	employees := make([]domain.EmployeePay, len(r.Employees))
	for i, e := range r.Employees {
		employees[i] = e.ToDomain()
	}
	return domain.PayrollRun{
		TenantID:    tenantID,
		PayDate:     r.PayDate.Time,
		Description: r.Description,
		Employees:   employees,
		ActorID:     actorID,
	}
}

// PayrollPostingResponse returns the posted entry with the per-employee breakdown.
type PayrollPostingResponse struct {
	Entry        JournalEntryResponse                 `json:"entry"`
	Calculations map[string]domain.PayrollCalculation `json:"calculations"`
	Total        domain.PayrollCalculation            `json:"total"`
}

// ToPayrollPostingResponse converts a domain.PayrollPosting to its DTO.
func ToPayrollPostingResponse(p *domain.PayrollPosting) PayrollPostingResponse {
	resp := PayrollPostingResponse{Calculations: p.Calculations, Total: p.Total}
	if p.Entry != nil {
		resp.Entry = ToJournalEntryResponse(p.Entry)
	}
	return resp
}
