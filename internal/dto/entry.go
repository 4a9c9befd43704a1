package dto

import (
	"time"

	"github.com/fofal/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostEntryRequest defines the data needed to post one écriture.
type PostEntryRequest struct {
	JournalCode   string                `json:"journalCode" binding:"required"`
	AccountCode   string                `json:"accountCode" binding:"required"`
	EntryDate     time.Time             `json:"entryDate" binding:"required"`
	Amount        decimal.Decimal       `json:"amount" binding:"required"`
	Direction     domain.EntryDirection `json:"direction" binding:"required,oneof=DEBIT CREDIT"`
	Period        string                `json:"period" binding:"required,accounting_period"`
	PieceType     domain.PieceType      `json:"pieceType" binding:"required,oneof=FACTURE AVOIR RECU VIREMENT JOURNAL AUTRE"`
	PieceNumber   string                `json:"pieceNumber" binding:"required,max=50"`
	Label         string                `json:"label" binding:"required,max=200"`
	TransactionID *string               `json:"transactionID"`
}

// AttachPieceRequest sets the pièce jointe path on a posted écriture.
type AttachPieceRequest struct {
	Path string `json:"path" binding:"required,max=200"`
}

// EntryResponse mirrors domain.Entry for API consumers.
type EntryResponse struct {
	EntryID        string           `json:"entryID"`
	JournalID      string           `json:"journalID"`
	AccountID      string           `json:"accountID"`
	EntryDate      time.Time        `json:"entryDate"`
	PieceNumber    string           `json:"pieceNumber"`
	PieceType      domain.PieceType `json:"pieceType"`
	Label          string           `json:"label"`
	Debit          decimal.Decimal  `json:"debit"`
	Credit         decimal.Decimal  `json:"credit"`
	Period         string           `json:"period"`
	TransactionID  *string          `json:"transactionID"`
	AttachmentPath *string          `json:"attachmentPath"`
	ReversesID     *string          `json:"reversesID"`
	CreatedAt      time.Time        `json:"createdAt"`
	CreatedBy      string           `json:"createdBy"`
}

// ToEntryResponse converts a domain.Entry to EntryResponse.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	return EntryResponse{
		EntryID:        e.EntryID,
		JournalID:      e.JournalID,
		AccountID:      e.AccountID,
		EntryDate:      e.EntryDate,
		PieceNumber:    e.PieceNumber,
		PieceType:      e.PieceType,
		Label:          e.Label,
		Debit:          e.Debit,
		Credit:         e.Credit,
		Period:         e.Period.String(),
		TransactionID:  e.TransactionID,
		AttachmentPath: e.AttachmentPath,
		ReversesID:     e.ReversesID,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
}

// ToListEntryResponse converts a slice of écritures.
func ToListEntryResponse(entries []domain.Entry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i := range entries {
		res[i] = ToEntryResponse(&entries[i])
	}
	return res
}

// ListEntriesParams defines query parameters for listing an account's écritures.
type ListEntriesParams struct {
	From string `form:"from" binding:"required,accounting_period"`
	To   string `form:"to" binding:"required,accounting_period"`
}

// ListJournalEntriesParams defines query parameters for listing a journal's écritures.
type ListJournalEntriesParams struct {
	Period string `form:"period" binding:"required,accounting_period"`
}
