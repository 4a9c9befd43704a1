package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persisted form of a finance transaction.
type Transaction struct {
	TransactionID        string          `db:"transaction_id"`
	Date                 time.Time       `db:"date"`
	TransactionType      string          `db:"transaction_type"`
	Category             string          `db:"category"`
	Amount               decimal.Decimal `db:"amount"`
	Currency             string          `db:"currency"`
	Description          string          `db:"description"`
	Reference            string          `db:"reference"`
	Status               string          `db:"status"`
	SourceAccountID      *string         `db:"source_account_id"`
	DestinationAccountID *string         `db:"destination_account_id"`
	ProjectID            *string         `db:"project_id"`
	SupportingDocPath    *string         `db:"supporting_doc_path"`
	AuditFields
}

// TreasuryAccount is the persisted form of a compte financier.
type TreasuryAccount struct {
	TreasuryAccountID string          `db:"treasury_account_id"`
	Number            string          `db:"number"`
	Name              string          `db:"name"`
	AccountType       string          `db:"account_type"`
	Currency          string          `db:"currency"`
	Balance           decimal.Decimal `db:"balance"`
	BankName          string          `db:"bank_name"`
	IBAN              string          `db:"iban"`
	SWIFT             string          `db:"swift"`
	IsActive          bool            `db:"is_active"`
	AuditFields
}
