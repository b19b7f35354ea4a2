package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType identifies the closed set of business events the ledger
// generator knows how to post.
type EventType string

const (
	EventMembershipPayment EventType = "MEMBERSHIP_PAYMENT"
	EventInvoicePayment    EventType = "INVOICE_PAYMENT"
	EventInventoryDisposal EventType = "INVENTORY_DISPOSAL"
)

// EntryDirection tells the generator which side of the piece the
// counterpart account sits on.
type EntryDirection string

const (
	// DirectionInflow: money comes in; debit the counterpart (encashment)
	// account, credit the product account.
	DirectionInflow EntryDirection = "INFLOW"
	// DirectionOutflow: value leaves; credit the counterpart account, debit
	// the charge account.
	DirectionOutflow EntryDirection = "OUTFLOW"
)

// LedgerEvent is the capability a business event implements so the
// generator can post it without per-call-site branching.
type LedgerEvent interface {
	LedgerEventType() EventType
	LedgerEventID() string
	LedgerAmount() decimal.Decimal
	LedgerDate() time.Time
	LedgerLabel() string
	LedgerDirection() EntryDirection
}

// PaymentEvent is a received payment (membership fee, invoice settlement).
type PaymentEvent struct {
	Type    EventType       `json:"type"`
	EventID string          `json:"eventID"` // e.g. membership-payment id
	Amount  decimal.Decimal `json:"amount"`
	Method  PaymentMethod   `json:"method"`
	Date    time.Time       `json:"date"`
	Label   string          `json:"label"` // e.g. "Cotisation DUPONT 2026"
}

func (e PaymentEvent) LedgerEventType() EventType { return e.Type }
func (e PaymentEvent) LedgerEventID() string { return e.EventID }
func (e PaymentEvent) LedgerAmount() decimal.Decimal { return e.Amount }
func (e PaymentEvent) LedgerDate() time.Time { return e.Date }
func (e PaymentEvent) LedgerLabel() string { return e.Label }
func (e PaymentEvent) LedgerDirection() EntryDirection { return DirectionInflow }

// DisposalEvent is an inventory lot leaving the collection (scrapped, sold
// off, donated away).
type DisposalEvent struct {
	EventID string          `json:"eventID"` // disposal lot id
	Amount  decimal.Decimal `json:"amount"`  // book value of the lot
	Date    time.Time       `json:"date"`
	Label   string          `json:"label"` // e.g. "Sortie lot 2026-03"
}

func (e DisposalEvent) LedgerEventType() EventType { return EventInventoryDisposal }
func (e DisposalEvent) LedgerEventID() string { return e.EventID }
func (e DisposalEvent) LedgerAmount() decimal.Decimal { return e.Amount }
func (e DisposalEvent) LedgerDate() time.Time { return e.Date }
func (e DisposalEvent) LedgerLabel() string { return e.Label }
func (e DisposalEvent) LedgerDirection() EntryDirection { return DirectionOutflow }

// FiscalYearOf returns the fiscal year a date belongs to. The association
// keeps its books on the calendar year.
func FiscalYearOf(t time.Time) int {
	return t.Year()
}
