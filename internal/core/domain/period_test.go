package domain_test

import (
	"testing"
	"time"

	"github.com/fofal/erp-backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.Period
		wantErr bool
	}{
		{name: "valid period", input: "2025-03", want: "2025-03"},
		{name: "december", input: "2025-12", want: "2025-12"},
		{name: "month 13", input: "2025-13", wantErr: true},
		{name: "month 0", input: "2025-00", wantErr: true},
		{name: "missing month", input: "2025", wantErr: true},
		{name: "full date", input: "2025-03-15", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParsePeriod(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriodOf(t *testing.T) {
	d := time.Date(2025, time.July, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, domain.Period("2025-07"), domain.PeriodOf(d))
}

func TestPeriodNext(t *testing.T) {
	assert.Equal(t, domain.Period("2025-02"), domain.Period("2025-01").Next())
	assert.Equal(t, domain.Period("2026-01"), domain.Period("2025-12").Next(), "december rolls into the next year")
}

func TestPeriodBefore(t *testing.T) {
	assert.True(t, domain.Period("2025-09").Before("2025-10"))
	assert.True(t, domain.Period("2025-12").Before("2026-01"))
	assert.False(t, domain.Period("2025-10").Before("2025-10"))
	assert.False(t, domain.Period("2025-10").Before("2025-09"))
}

func TestPeriodsBetween(t *testing.T) {
	got := domain.PeriodsBetween("2025-11", "2026-02")
	assert.Equal(t, []domain.Period{"2025-11", "2025-12", "2026-01", "2026-02"}, got)

	assert.Equal(t, []domain.Period{"2025-06"}, domain.PeriodsBetween("2025-06", "2025-06"))
	assert.Nil(t, domain.PeriodsBetween("2025-06", "2025-05"), "reversed bounds yield nothing")
}
