package domain

// JournalType categorizes a journal comptable.
type JournalType string

const (
	JournalPurchases JournalType = "ACHATS"
	JournalSales     JournalType = "VENTES"
	JournalBank      JournalType = "BANQUE"
	JournalCash      JournalType = "CAISSE"
	JournalMisc      JournalType = "OPERATIONS_DIVERSES"
)

// Journal is a categorized log of écritures (purchases, sales, bank, cash,
// miscellaneous operations). Entries always belong to exactly one journal.
type Journal struct {
	JournalID   string      `json:"journalID"`
	Code        string      `json:"code"` // Unique short code, e.g. "ACHATS"
	Name        string      `json:"name"`
	JournalType JournalType `json:"type"`
	Description string      `json:"description"`
	IsActive    bool        `json:"isActive"`
	AuditFields
}
