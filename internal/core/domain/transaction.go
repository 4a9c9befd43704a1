package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a finance transaction.
type TransactionType string

const (
	Receipt    TransactionType = "RECETTE"
	Payment    TransactionType = "DEPENSE"
	Transfer   TransactionType = "VIREMENT"
	Adjustment TransactionType = "AJUSTEMENT"
)

// TransactionStatus is the lifecycle state of a finance transaction.
// EN_ATTENTE is the only non-terminal state.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "EN_ATTENTE"
	StatusValidated TransactionStatus = "VALIDEE"
	StatusRejected  TransactionStatus = "REJETEE"
	StatusCancelled TransactionStatus = "ANNULEE"
)

// TransactionCategory classifies the business purpose of a transaction.
type TransactionCategory string

const (
	CategoryProductSales TransactionCategory = "VENTE_PRODUITS"
	CategoryInputs       TransactionCategory = "ACHAT_INTRANTS"
	CategorySalaries     TransactionCategory = "SALAIRES"
	CategoryMaintenance  TransactionCategory = "MAINTENANCE"
	CategoryTransport    TransactionCategory = "TRANSPORT"
	CategoryServices     TransactionCategory = "SERVICES"
	CategoryTaxes        TransactionCategory = "TAXES"
	CategoryOther        TransactionCategory = "AUTRE"
)

// Transaction is a financial movement between treasury accounts. Validating
// a pending transaction posts the paired ledger écritures and is the only
// path from EN_ATTENTE to VALIDEE.
type Transaction struct {
	TransactionID        string              `json:"transactionID"`
	Date                 time.Time           `json:"date"`
	TransactionType      TransactionType     `json:"type"`
	Category             TransactionCategory `json:"category"`
	Amount               decimal.Decimal     `json:"amount"`
	Currency             string              `json:"currency"` // ISO code, XAF by default
	Description          string              `json:"description"`
	Reference            string              `json:"reference"` // Unique external reference
	Status               TransactionStatus   `json:"status"`
	SourceAccountID      *string             `json:"sourceAccountID"`      // Treasury account, nil for external inflow
	DestinationAccountID *string             `json:"destinationAccountID"` // Treasury account, nil for external outflow
	ProjectID            *string             `json:"projectID"`            // Optional project the movement belongs to
	SupportingDocPath    *string             `json:"supportingDocPath"`    // Pièce justificative
	AuditFields
}

// CanTransitionTo reports whether the status change is allowed. Only pending
// transactions move; VALIDEE, REJETEE and ANNULEE are terminal.
func (t Transaction) CanTransitionTo(next TransactionStatus) bool {
	if t.Status != StatusPending {
		return false
	}
	switch next {
	case StatusValidated, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// TreasuryAccountType is the kind of a compte financier.
type TreasuryAccountType string

const (
	TreasuryBank    TreasuryAccountType = "BANQUE"
	TreasuryCash    TreasuryAccountType = "CAISSE"
	TreasurySavings TreasuryAccountType = "EPARGNE"
	TreasuryCredit  TreasuryAccountType = "CREDIT"
)

// TreasuryAccount is a compte financier (bank account, cash box, ...) whose
// solde moves when transactions against it are validated.
type TreasuryAccount struct {
	TreasuryAccountID string              `json:"treasuryAccountID"`
	Number            string              `json:"number"` // Unique numéro
	Name              string              `json:"name"`
	AccountType       TreasuryAccountType `json:"type"`
	Currency          string              `json:"currency"`
	Balance           decimal.Decimal     `json:"balance"` // Solde
	BankName          string              `json:"bankName"`
	IBAN              string              `json:"iban"`
	SWIFT             string              `json:"swift"`
	IsActive          bool                `json:"isActive"`
	AuditFields
}
