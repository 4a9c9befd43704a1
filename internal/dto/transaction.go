package dto

import (
	"time"

	"github.com/fofal/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTreasuryAccountRequest defines the data needed to register a compte financier.
type CreateTreasuryAccountRequest struct {
	Number      string                     `json:"number" binding:"required,max=50"`
	Name        string                     `json:"name" binding:"required,max=100"`
	AccountType domain.TreasuryAccountType `json:"type" binding:"required,oneof=BANQUE CAISSE EPARGNE CREDIT"`
	Currency    string                     `json:"currency" binding:"required,len=3"`
	BankName    string                     `json:"bankName" binding:"max=100"`
	IBAN        string                     `json:"iban" binding:"max=34"`
	SWIFT       string                     `json:"swift" binding:"max=11"`
}

// TreasuryAccountResponse mirrors domain.TreasuryAccount.
type TreasuryAccountResponse struct {
	TreasuryAccountID string                     `json:"treasuryAccountID"`
	Number            string                     `json:"number"`
	Name              string                     `json:"name"`
	AccountType       domain.TreasuryAccountType `json:"type"`
	Currency          string                     `json:"currency"`
	Balance           decimal.Decimal            `json:"balance"`
	BankName          string                     `json:"bankName"`
	IBAN              string                     `json:"iban"`
	SWIFT             string                     `json:"swift"`
	IsActive          bool                       `json:"isActive"`
}

// ToTreasuryAccountResponse converts a domain.TreasuryAccount.
func ToTreasuryAccountResponse(a *domain.TreasuryAccount) TreasuryAccountResponse {
	return TreasuryAccountResponse{
		TreasuryAccountID: a.TreasuryAccountID,
		Number:            a.Number,
		Name:              a.Name,
		AccountType:       a.AccountType,
		Currency:          a.Currency,
		Balance:           a.Balance,
		BankName:          a.BankName,
		IBAN:              a.IBAN,
		SWIFT:             a.SWIFT,
		IsActive:          a.IsActive,
	}
}

// CreateTransactionRequest defines the data needed to record a pending movement.
type CreateTransactionRequest struct {
	TransactionType      domain.TransactionType     `json:"type" binding:"required,oneof=RECETTE DEPENSE VIREMENT AJUSTEMENT"`
	Category             domain.TransactionCategory `json:"category" binding:"required,oneof=VENTE_PRODUITS ACHAT_INTRANTS SALAIRES MAINTENANCE TRANSPORT SERVICES TAXES AUTRE"`
	Amount               decimal.Decimal            `json:"amount" binding:"required"`
	Currency             string                     `json:"currency" binding:"required,len=3"`
	Description          string                     `json:"description"`
	Reference            string                     `json:"reference" binding:"required,max=100"`
	SourceAccountNumber  *string                    `json:"sourceAccountNumber"`
	DestinationAccountNumber *string                `json:"destinationAccountNumber"`
	ProjectID            *string                    `json:"projectID"`
	SupportingDocPath    *string                    `json:"supportingDocPath"`
}

// ValidateTransactionRequest names the ledger coordinates of the validation
// posting: the journal, the period, and the two plan comptable accounts the
// paired écritures hit.
type ValidateTransactionRequest struct {
	JournalCode       string `json:"journalCode" binding:"required"`
	Period            string `json:"period" binding:"required,accounting_period"`
	DebitAccountCode  string `json:"debitAccountCode" binding:"required"`
	CreditAccountCode string `json:"creditAccountCode" binding:"required"`
}

// TransactionResponse mirrors domain.Transaction.
type TransactionResponse struct {
	TransactionID        string                     `json:"transactionID"`
	Date                 time.Time                  `json:"date"`
	TransactionType      domain.TransactionType     `json:"type"`
	Category             domain.TransactionCategory `json:"category"`
	Amount               decimal.Decimal            `json:"amount"`
	Currency             string                     `json:"currency"`
	Description          string                     `json:"description"`
	Reference            string                     `json:"reference"`
	Status               domain.TransactionStatus   `json:"status"`
	SourceAccountID      *string                    `json:"sourceAccountID"`
	DestinationAccountID *string                    `json:"destinationAccountID"`
	ProjectID            *string                    `json:"projectID"`
	SupportingDocPath    *string                    `json:"supportingDocPath"`
	CreatedAt            time.Time                  `json:"createdAt"`
	CreatedBy            string                     `json:"createdBy"`
}

// ToTransactionResponse converts a domain.Transaction.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:        t.TransactionID,
		Date:                 t.Date,
		TransactionType:      t.TransactionType,
		Category:             t.Category,
		Amount:               t.Amount,
		Currency:             t.Currency,
		Description:          t.Description,
		Reference:            t.Reference,
		Status:               t.Status,
		SourceAccountID:      t.SourceAccountID,
		DestinationAccountID: t.DestinationAccountID,
		ProjectID:            t.ProjectID,
		SupportingDocPath:    t.SupportingDocPath,
		CreatedAt:            t.CreatedAt,
		CreatedBy:            t.CreatedBy,
	}
}

// ToListTransactionResponse converts a slice of transactions.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=EN_ATTENTE VALIDEE REJETEE ANNULEE"`
	Limit  int    `form:"limit,default=50"`
	Offset int    `form:"offset,default=0"`
}
