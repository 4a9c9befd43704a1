package domain_test

import (
	"testing"

	"github.com/fofal/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEntry_Direction(t *testing.T) {
	debit := domain.Entry{Debit: decimal.NewFromInt(100), Credit: decimal.Zero}
	credit := domain.Entry{Debit: decimal.Zero, Credit: decimal.NewFromInt(100)}

	assert.Equal(t, domain.Debit, debit.Direction())
	assert.Equal(t, domain.Credit, credit.Direction())
}

func TestEntry_Amount(t *testing.T) {
	debit := domain.Entry{Debit: decimal.NewFromInt(250), Credit: decimal.Zero}
	credit := domain.Entry{Debit: decimal.Zero, Credit: decimal.NewFromInt(75)}

	assert.True(t, debit.Amount().Equal(decimal.NewFromInt(250)))
	assert.True(t, credit.Amount().Equal(decimal.NewFromInt(75)))
}
