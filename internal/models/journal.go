package models

// Journal is the persisted form of a journal comptable.
type Journal struct {
	JournalID   string `db:"journal_id"`
	Code        string `db:"code"`
	Name        string `db:"name"`
	JournalType string `db:"journal_type"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
