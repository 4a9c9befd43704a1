package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryDirection indicates which side of an écriture carries the amount.
type EntryDirection string

const (
	Debit  EntryDirection = "DEBIT"
	Credit EntryDirection = "CREDIT"
)

// PieceType is the kind of source document backing an écriture.
type PieceType string

const (
	PieceInvoice    PieceType = "FACTURE"
	PieceCreditNote PieceType = "AVOIR"
	PieceReceipt    PieceType = "RECU"
	PieceTransfer   PieceType = "VIREMENT"
	PieceJournal    PieceType = "JOURNAL"
	PieceOther      PieceType = "AUTRE"
)

// Entry is a single écriture comptable: one debit or credit line against an
// account, inside a journal and an accounting period. Entries are append-only
// once posted; the only mutable field is the attachment path. Exactly one of
// Debit/Credit is non-zero.
type Entry struct {
	EntryID        string          `json:"entryID"`
	JournalID      string          `json:"journalID"`
	AccountID      string          `json:"accountID"`
	EntryDate      time.Time       `json:"entryDate"`
	PieceNumber    string          `json:"pieceNumber"`
	PieceType      PieceType       `json:"pieceType"`
	Label          string          `json:"label"` // Libellé
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Period         Period          `json:"period"`
	TransactionID  *string         `json:"transactionID"`  // Optional finance transaction link
	AttachmentPath *string         `json:"attachmentPath"` // Pièce jointe
	ReversesID     *string         `json:"reversesID"`     // Set on a reversal, points at the original
	AuditFields
}

// Direction reports which side of the entry carries the amount.
func (e Entry) Direction() EntryDirection {
	if e.Debit.IsPositive() {
		return Debit
	}
	return Credit
}

// Amount returns the magnitude of the entry regardless of side.
func (e Entry) Amount() decimal.Decimal {
	if e.Debit.IsPositive() {
		return e.Debit
	}
	return e.Credit
}
