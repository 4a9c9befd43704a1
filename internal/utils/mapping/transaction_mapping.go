package mapping

import (
	"github.com/fofal/erp-backend/internal/core/domain"
	"github.com/fofal/erp-backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:        d.TransactionID,
		Date:                 d.Date,
		TransactionType:      string(d.TransactionType),
		Category:             string(d.Category),
		Amount:               d.Amount,
		Currency:             d.Currency,
		Description:          d.Description,
		Reference:            d.Reference,
		Status:               string(d.Status),
		SourceAccountID:      d.SourceAccountID,
		DestinationAccountID: d.DestinationAccountID,
		ProjectID:            d.ProjectID,
		SupportingDocPath:    d.SupportingDocPath,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:        m.TransactionID,
		Date:                 m.Date,
		TransactionType:      domain.TransactionType(m.TransactionType),
		Category:             domain.TransactionCategory(m.Category),
		Amount:               m.Amount,
		Currency:             m.Currency,
		Description:          m.Description,
		Reference:            m.Reference,
		Status:               domain.TransactionStatus(m.Status),
		SourceAccountID:      m.SourceAccountID,
		DestinationAccountID: m.DestinationAccountID,
		ProjectID:            m.ProjectID,
		SupportingDocPath:    m.SupportingDocPath,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// ToModelTreasuryAccount converts a domain TreasuryAccount to a model TreasuryAccount
func ToModelTreasuryAccount(d domain.TreasuryAccount) models.TreasuryAccount {
	return models.TreasuryAccount{
		TreasuryAccountID: d.TreasuryAccountID,
		Number:            d.Number,
		Name:              d.Name,
		AccountType:       string(d.AccountType),
		Currency:          d.Currency,
		Balance:           d.Balance,
		BankName:          d.BankName,
		IBAN:              d.IBAN,
		SWIFT:             d.SWIFT,
		IsActive:          d.IsActive,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTreasuryAccount converts a model TreasuryAccount to a domain TreasuryAccount
func ToDomainTreasuryAccount(m models.TreasuryAccount) domain.TreasuryAccount {
	return domain.TreasuryAccount{
		TreasuryAccountID: m.TreasuryAccountID,
		Number:            m.Number,
		Name:              m.Name,
		AccountType:       domain.TreasuryAccountType(m.AccountType),
		Currency:          m.Currency,
		Balance:           m.Balance,
		BankName:          m.BankName,
		IBAN:              m.IBAN,
		SWIFT:             m.SWIFT,
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTreasuryAccountSlice converts a slice of model TreasuryAccounts to a slice of domain TreasuryAccounts
func ToDomainTreasuryAccountSlice(ms []models.TreasuryAccount) []domain.TreasuryAccount {
	ds := make([]domain.TreasuryAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTreasuryAccount(m)
	}
	return ds
}
