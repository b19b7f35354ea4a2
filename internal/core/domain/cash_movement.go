package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType indicates the direction of a cash movement.
type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// MovementStatus indicates whether a movement still counts towards the
// session balance. Movements are never deleted; cancellation is the soft
// VOIDED status.
type MovementStatus string

const (
	MovementValid  MovementStatus = "VALID"
	MovementVoided MovementStatus = "VOIDED"
)

// PaymentMethod identifies how money changed hands.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodCheque   PaymentMethod = "CHEQUE"
	MethodCard     PaymentMethod = "CARD"
	MethodTransfer PaymentMethod = "TRANSFER"
)

// CashMovement records a single entry or exit of money within a session.
// Created only while the parent session is open; Amount is always positive,
// the direction is carried by Type.
type CashMovement struct {
	MovementID    string          `json:"movementID"` // Primary Key (UUID)
	SessionID     string          `json:"sessionID"`
	Type          MovementType    `json:"type"`
	Category      string          `json:"category"` // Free-form business tag (e.g. "membership", "late-fee")
	Amount        decimal.Decimal `json:"amount"`   // Positive value
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Status        MovementStatus  `json:"status"`
	Label         string          `json:"label"`
	// ReferenceID optionally links the business event (e.g. a membership
	// payment) that produced this movement. Cash tracking and bookkeeping
	// are deliberately not transactionally coupled.
	ReferenceID *string    `json:"referenceID,omitempty"`
	VoidReason  string     `json:"voidReason"`
	VoidedBy    *string    `json:"voidedBy,omitempty"`
	VoidedAt    *time.Time `json:"voidedAt,omitempty"`
	AuditFields
}

// IsValid reports whether the movement counts towards session aggregates.
func (m *CashMovement) IsValid() bool {
	return m.Status == MovementValid
}

// SumValidMovements returns the sums of valid IN and OUT movements.
func SumValidMovements(movements []CashMovement) (inSum, outSum decimal.Decimal) {
	for _, m := range movements {
		if !m.IsValid() {
			continue
		}
		switch m.Type {
		case MovementIn:
			inSum = inSum.Add(m.Amount)
		case MovementOut:
			outSum = outSum.Add(m.Amount)
		}
	}
	return inSum, outSum
}
