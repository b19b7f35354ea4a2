package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus indicates the lifecycle state of a cash session.
// OPEN is the only non-terminal state; CLOSED and VOIDED are terminal.
type SessionStatus string

const (
	SessionOpen   SessionStatus = "OPEN"
	SessionClosed SessionStatus = "CLOSED"
	SessionVoided SessionStatus = "VOIDED"
)

// CashSession represents one open-to-close lifecycle of a till.
// OpeningBalance is copied from the register at open time; the closing
// fields stay nil until the session is closed.
type CashSession struct {
	SessionID      string          `json:"sessionID"` // Primary Key (UUID)
	RegisterID     string          `json:"registerID"`
	OpenedBy       string          `json:"openedBy"` // UserID
	ClosedBy       *string         `json:"closedBy,omitempty"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	// TheoreticalBalance = OpeningBalance + SUM(valid IN) - SUM(valid OUT),
	// recomputed from movements whenever they change and frozen at close.
	TheoreticalBalance decimal.Decimal  `json:"theoreticalBalance"`
	DeclaredBalance    *decimal.Decimal `json:"declaredBalance,omitempty"` // Physical count entered at close
	Variance           *decimal.Decimal `json:"variance,omitempty"`        // Declared - Theoretical, signed
	Status             SessionStatus    `json:"status"`
	OpeningComment     string           `json:"openingComment"`
	ClosingComment     string           `json:"closingComment"`
	VoidReason         string           `json:"voidReason"`
	OpenedAt           time.Time        `json:"openedAt"`
	ClosedAt           *time.Time       `json:"closedAt,omitempty"`
	AuditFields

	// Movements are loaded on demand, not by every query.
	Movements []CashMovement `json:"movements,omitempty"`
}

// IsOpen reports whether the session still accepts movements.
func (s *CashSession) IsOpen() bool {
	return s.Status == SessionOpen
}

// ComputeClosing derives the reconciliation figures for a session closing
// with the given declared balance. inSum and outSum are the sums of valid
// IN and OUT movements. The comparison is exact decimal arithmetic; no
// rounding tolerance is applied.
func ComputeClosing(openingBalance, inSum, outSum, declared decimal.Decimal) (theoretical, variance decimal.Decimal) {
	theoretical = openingBalance.Add(inSum).Sub(outSum)
	variance = declared.Sub(theoretical)
	return theoretical, variance
}
