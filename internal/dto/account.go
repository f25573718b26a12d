package dto

import (
	"time"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code             string              `json:"code" binding:"required,max=20"`
	Name             string              `json:"name" binding:"required,max=255"`
	Class            domain.AccountClass `json:"class" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	IsCurrent        *bool               `json:"isCurrent"`
	ParentAccountID  *string             `json:"parentAccountID"`
	AllowManualEntry *bool               `json:"allowManualEntry"` // defaults to true
}

// ToDomain builds the account to create for tenantID.
func (r CreateAccountRequest) ToDomain(tenantID string) domain.Account {
	acc := domain.Account{
		TenantID:         tenantID,
		Code:             r.Code,
		Name:             r.Name,
		Class:            r.Class,
		IsCurrent:        r.IsCurrent,
		AllowManualEntry: true,
	}
	if r.ParentAccountID != nil {
		acc.ParentAccountID = *r.ParentAccountID
	}
	if r.AllowManualEntry != nil {
		acc.AllowManualEntry = *r.AllowManualEntry
	}
	return acc
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name             *string `json:"name" binding:"omitempty,min=1,max=255"`
	IsCurrent        *bool   `json:"isCurrent"`
	ParentAccountID  *string `json:"parentAccountID"`
	AllowManualEntry *bool   `json:"allowManualEntry"`
}

// ToDomain converts the request to a domain.AccountUpdate.
func (r UpdateAccountRequest) ToDomain() domain.AccountUpdate {
	return domain.AccountUpdate{
		Name:             r.Name,
		IsCurrent:        r.IsCurrent,
		ParentAccountID:  r.ParentAccountID,
		AllowManualEntry: r.AllowManualEntry,
	}
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID        string              `json:"accountID"`
	Code             string              `json:"code"`
	Name             string              `json:"name"`
	Class            domain.AccountClass `json:"class"`
	IsCurrent        *bool               `json:"isCurrent,omitempty"`
	ParentAccountID  string              `json:"parentAccountID,omitempty"`
	AllowManualEntry bool                `json:"allowManualEntry"`
	IsActive         bool                `json:"isActive"`
	CreatedAt        time.Time           `json:"createdAt"`
	CreatedBy        string              `json:"createdBy"`
	LastUpdatedAt    time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy    string              `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:        acc.AccountID,
		Code:             acc.Code,
		Name:             acc.Name,
		Class:            acc.Class,
		IsCurrent:        acc.IsCurrent,
		ParentAccountID:  acc.ParentAccountID,
		AllowManualEntry: acc.AllowManualEntry,
		IsActive:         acc.IsActive,
		CreatedAt:        acc.CreatedAt,
		CreatedBy:        acc.CreatedBy,
		LastUpdatedAt:    acc.LastUpdatedAt,
		LastUpdatedBy:    acc.LastUpdatedBy,
	}
}

// ListAccountsResponse wraps the tenant's chart.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToListAccountsResponse converts a slice of domain.Account to the list DTO.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: res}
}
