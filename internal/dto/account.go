package dto

import (
	"time"

	"github.com/fofal/erp-backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to register a plan comptable account.
type CreateAccountRequest struct {
	Code        string             `json:"code" binding:"required,max=10"`
	Name        string             `json:"name" binding:"required,max=200"`
	AccountType domain.AccountType `json:"type" binding:"required,oneof=ACTIF PASSIF CHARGE PRODUIT"`
	ParentCode  *string            `json:"parentCode"` // Optional, class root when omitted
}

// AccountResponse mirrors domain.Account for API consumers.
type AccountResponse struct {
	AccountID       string              `json:"accountID"`
	Code            string              `json:"code"`
	Name            string              `json:"name"`
	Class           domain.AccountClass `json:"class"`
	AccountType     domain.AccountType  `json:"type"`
	Level           int                 `json:"level"`
	ParentAccountID *string             `json:"parentAccountID"`
	IsActive        bool                `json:"isActive"`
	CreatedAt       time.Time           `json:"createdAt"`
	CreatedBy       string              `json:"createdBy"`
	LastUpdatedAt   time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy   string              `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		Class:           acc.Class,
		AccountType:     acc.AccountType,
		Level:           acc.Level,
		ParentAccountID: acc.ParentAccountID,
		IsActive:        acc.IsActive,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of accounts.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Class  int `form:"class" binding:"omitempty,min=1,max=7"`
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}
