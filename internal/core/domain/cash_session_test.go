package domain_test

import (
	"testing"

	"github.com/ludotheca/ludotheca_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeClosing(t *testing.T) {
	tests := []struct {
		name            string
		opening         string
		inSum           string
		outSum          string
		declared        string
		wantTheoretical string
		wantVariance    string
	}{
		{
			name:    "balanced close",
			opening: "0", inSum: "50", outSum: "0", declared: "50",
			wantTheoretical: "50", wantVariance: "0",
		},
		{
			name:    "shortfall",
			opening: "100", inSum: "35.50", outSum: "20", declared: "110",
			wantTheoretical: "115.50", wantVariance: "-5.50",
		},
		{
			name:    "overage",
			opening: "10", inSum: "0", outSum: "3.20", declared: "7",
			wantTheoretical: "6.80", wantVariance: "0.20",
		},
		{
			name:    "no movements",
			opening: "42.42", inSum: "0", outSum: "0", declared: "42.42",
			wantTheoretical: "42.42", wantVariance: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theoretical, variance := domain.ComputeClosing(dec(tt.opening), dec(tt.inSum), dec(tt.outSum), dec(tt.declared))
			assert.True(t, dec(tt.wantTheoretical).Equal(theoretical), "theoretical: want %s got %s", tt.wantTheoretical, theoretical)
			assert.True(t, dec(tt.wantVariance).Equal(variance), "variance: want %s got %s", tt.wantVariance, variance)
		})
	}
}

func TestSumValidMovements(t *testing.T) {
	movements := []domain.CashMovement{
		{MovementID: "m1", Type: domain.MovementIn, Amount: dec("50"), Status: domain.MovementValid},
		{MovementID: "m2", Type: domain.MovementIn, Amount: dec("30"), Status: domain.MovementVoided},
		{MovementID: "m3", Type: domain.MovementOut, Amount: dec("12.50"), Status: domain.MovementValid},
		{MovementID: "m4", Type: domain.MovementOut, Amount: dec("99"), Status: domain.MovementVoided},
	}

	inSum, outSum := domain.SumValidMovements(movements)
	assert.True(t, dec("50").Equal(inSum), "in sum: got %s", inSum)
	assert.True(t, dec("12.50").Equal(outSum), "out sum: got %s", outSum)
}

func TestSumValidMovements_Empty(t *testing.T) {
	inSum, outSum := domain.SumValidMovements(nil)
	assert.True(t, inSum.IsZero())
	assert.True(t, outSum.IsZero())
}

func TestCashSession_IsOpen(t *testing.T) {
	s := domain.CashSession{Status: domain.SessionOpen}
	assert.True(t, s.IsOpen())
	s.Status = domain.SessionClosed
	assert.False(t, s.IsOpen())
	s.Status = domain.SessionVoided
	assert.False(t, s.IsOpen())
}
