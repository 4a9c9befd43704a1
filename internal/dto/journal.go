package dto

import (
	"time"

	"github.com/fofal/erp-backend/internal/core/domain"
)

// CreateJournalRequest defines the data needed to register a journal comptable.
type CreateJournalRequest struct {
	Code        string             `json:"code" binding:"required,max=10"`
	Name        string             `json:"name" binding:"required,max=100"`
	JournalType domain.JournalType `json:"type" binding:"required,oneof=ACHATS VENTES BANQUE CAISSE OPERATIONS_DIVERSES"`
	Description string             `json:"description"`
}

// JournalResponse mirrors domain.Journal for API consumers.
type JournalResponse struct {
	JournalID   string             `json:"journalID"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	JournalType domain.JournalType `json:"type"`
	Description string             `json:"description"`
	IsActive    bool               `json:"isActive"`
	CreatedAt   time.Time          `json:"createdAt"`
	CreatedBy   string             `json:"createdBy"`
}

// ToJournalResponse converts a domain.Journal to JournalResponse.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID:   j.JournalID,
		Code:        j.Code,
		Name:        j.Name,
		JournalType: j.JournalType,
		Description: j.Description,
		IsActive:    j.IsActive,
		CreatedAt:   j.CreatedAt,
		CreatedBy:   j.CreatedBy,
	}
}

// ToListJournalResponse converts a slice of journals.
func ToListJournalResponse(journals []domain.Journal) []JournalResponse {
	res := make([]JournalResponse, len(journals))
	for i := range journals {
		res[i] = ToJournalResponse(&journals[i])
	}
	return res
}
