package domain

import "github.com/shopspring/decimal"

// CashRegister represents a physical till. Its CurrentBalance is a rolling
// handoff between sessions: written only when a session closes, read only
// when the next session opens.
type CashRegister struct {
	RegisterID        string          `json:"registerID"` // Primary Key (UUID)
	Code              string          `json:"code"`       // Unique short code (e.g. "MAIN")
	Name              string          `json:"name"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	OpeningBalance    decimal.Decimal `json:"openingBalance"` // Balance the register was created with
	ResponsibleUserID string          `json:"responsibleUserID"`
	AuditFields
}
