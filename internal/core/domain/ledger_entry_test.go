package domain_test

import (
	"testing"
	"time"

	"github.com/ludotheca/ludotheca_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func entry(account, debit, credit string) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       "e-" + account,
		AccountNumber: account,
		Debit:         dec(debit),
		Credit:        dec(credit),
	}
}

func TestLedgerEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   domain.LedgerEntry
		wantErr bool
	}{
		{name: "debit only", entry: entry("531000", "20", "0"), wantErr: false},
		{name: "credit only", entry: entry("756000", "0", "20"), wantErr: false},
		{name: "both zero", entry: entry("531000", "0", "0"), wantErr: true},
		{name: "both nonzero", entry: entry("531000", "20", "20"), wantErr: true},
		{name: "negative debit", entry: entry("531000", "-1", "0"), wantErr: true},
		{name: "missing account", entry: entry("", "20", "0"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePieceBalance(t *testing.T) {
	t.Run("balanced pair", func(t *testing.T) {
		entries := []domain.LedgerEntry{
			entry("531000", "20", "0"),
			entry("756000", "0", "20"),
		}
		assert.NoError(t, domain.ValidatePieceBalance(entries))
	})

	t.Run("balanced split allocation", func(t *testing.T) {
		entries := []domain.LedgerEntry{
			entry("531000", "30", "0"),
			entry("756000", "0", "20"),
			entry("706000", "0", "10"),
		}
		assert.NoError(t, domain.ValidatePieceBalance(entries))
	})

	t.Run("unbalanced", func(t *testing.T) {
		entries := []domain.LedgerEntry{
			entry("531000", "20", "0"),
			entry("756000", "0", "19.99"),
		}
		assert.Error(t, domain.ValidatePieceBalance(entries))
	})

	t.Run("single entry", func(t *testing.T) {
		entries := []domain.LedgerEntry{entry("531000", "20", "0")}
		assert.Error(t, domain.ValidatePieceBalance(entries))
	})
}

func TestFiscalYearOf(t *testing.T) {
	assert.Equal(t, 2026, domain.FiscalYearOf(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2025, domain.FiscalYearOf(time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)))
}

func TestDefaultMappings(t *testing.T) {
	m, ok := domain.DefaultMapping(domain.EventMembershipPayment)
	assert.True(t, ok)
	assert.Equal(t, "VT", m.JournalCode)
	assert.Equal(t, "ADH", m.PiecePrefix)
	assert.NotEmpty(t, m.ProductAccount)

	_, ok = domain.DefaultMapping(domain.EventType("UNKNOWN"))
	assert.False(t, ok)

	enc, ok := domain.DefaultEncashmentAccount(domain.MethodCash)
	assert.True(t, ok)
	assert.Equal(t, "531000", enc.AccountNumber)

	_, ok = domain.DefaultEncashmentAccount(domain.PaymentMethod("BARTER"))
	assert.False(t, ok)
}
