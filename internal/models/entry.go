package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is the persisted form of an écriture comptable. A CHECK constraint
// enforces that exactly one of debit/credit is positive.
type Entry struct {
	EntryID        string          `db:"entry_id"`
	JournalID      string          `db:"journal_id"`
	AccountID      string          `db:"account_id"`
	EntryDate      time.Time       `db:"entry_date"`
	PieceNumber    string          `db:"piece_number"`
	PieceType      string          `db:"piece_type"`
	Label          string          `db:"label"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
	Period         string          `db:"period"`
	TransactionID  *string         `db:"transaction_id"`
	AttachmentPath *string         `db:"attachment_path"`
	ReversesID     *string         `db:"reverses_id"`
	AuditFields
}
