package mapping

import (
	"github.com/fofal/erp-backend/internal/core/domain"
	"github.com/fofal/erp-backend/internal/models"
)

// ToModelEntry converts a domain Entry to a model Entry
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:        d.EntryID,
		JournalID:      d.JournalID,
		AccountID:      d.AccountID,
		EntryDate:      d.EntryDate,
		PieceNumber:    d.PieceNumber,
		PieceType:      string(d.PieceType),
		Label:          d.Label,
		Debit:          d.Debit,
		Credit:         d.Credit,
		Period:         d.Period.String(),
		TransactionID:  d.TransactionID,
		AttachmentPath: d.AttachmentPath,
		ReversesID:     d.ReversesID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model Entry to a domain Entry
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:        m.EntryID,
		JournalID:      m.JournalID,
		AccountID:      m.AccountID,
		EntryDate:      m.EntryDate,
		PieceNumber:    m.PieceNumber,
		PieceType:      domain.PieceType(m.PieceType),
		Label:          m.Label,
		Debit:          m.Debit,
		Credit:         m.Credit,
		Period:         domain.Period(m.Period),
		TransactionID:  m.TransactionID,
		AttachmentPath: m.AttachmentPath,
		ReversesID:     m.ReversesID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntrySlice converts a slice of model Entries to a slice of domain Entries
func ToDomainEntrySlice(ms []models.Entry) []domain.Entry {
	ds := make([]domain.Entry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
