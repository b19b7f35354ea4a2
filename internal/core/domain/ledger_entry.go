package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PieceRef identifies an accounting piece: a balanced group of ledger
// entries sharing one journal code, fiscal year and sequence number.
type PieceRef struct {
	JournalCode string `json:"journalCode"`
	FiscalYear  int    `json:"fiscalYear"`
	PieceNumber int64  `json:"pieceNumber"`
}

func (p PieceRef) String() string {
	return fmt.Sprintf("%s-%d-%d", p.JournalCode, p.FiscalYear, p.PieceNumber)
}

// LedgerEntry is one debit-or-credit line of an accounting piece. Entries
// are written only in same-transaction balanced batches and are never
// updated or deleted; corrections go through contra-pieces.
type LedgerEntry struct {
	EntryID string `json:"entryID"` // Primary Key (UUID)
	PieceRef
	AccountNumber   string          `json:"accountNumber"`
	Debit           decimal.Decimal `json:"debit"`  // >= 0, exclusive with Credit
	Credit          decimal.Decimal `json:"credit"` // >= 0, exclusive with Debit
	Label           string          `json:"label"`
	AnalyticSection *string         `json:"analyticSection,omitempty"`
	EventType       EventType       `json:"eventType"`
	EventID         string          `json:"eventID"`
	EntryDate       time.Time       `json:"entryDate"`
	CreatedAt       time.Time       `json:"createdAt"` // Immutable
	CreatedBy       string          `json:"createdBy"`
}

// Validate checks the single-line invariant: exactly one of Debit/Credit is
// nonzero and neither is negative.
func (e *LedgerEntry) Validate() error {
	if e.Debit.IsNegative() || e.Credit.IsNegative() {
		return fmt.Errorf("entry %s: debit and credit must be non-negative", e.EntryID)
	}
	if e.Debit.IsZero() == e.Credit.IsZero() {
		return fmt.Errorf("entry %s: exactly one of debit or credit must be nonzero", e.EntryID)
	}
	if e.AccountNumber == "" {
		return fmt.Errorf("entry %s: account number is required", e.EntryID)
	}
	return nil
}

// ValidatePieceBalance checks the piece invariant SUM(debit) == SUM(credit)
// with exact decimal comparison, plus the per-line invariants.
func ValidatePieceBalance(entries []LedgerEntry) error {
	if len(entries) < 2 {
		return fmt.Errorf("a piece must have at least two entries, got %d", len(entries))
	}
	debits := decimal.Zero
	credits := decimal.Zero
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return err
		}
		debits = debits.Add(entries[i].Debit)
		credits = credits.Add(entries[i].Credit)
	}
	if !debits.Equal(credits) {
		return fmt.Errorf("piece does not balance: debits %s, credits %s", debits.String(), credits.String())
	}
	return nil
}

// PostingStatus indicates whether a posted business event has since been
// reversed by a contra-piece.
type PostingStatus string

const (
	PostingPosted   PostingStatus = "POSTED"
	PostingReversed PostingStatus = "REVERSED"
)

// LedgerPosting records that a business event has been turned into an
// accounting piece. The (EventType, EventID) pair is unique for original
// postings, which is what makes generation idempotent.
type LedgerPosting struct {
	PostingID string `json:"postingID"` // Primary Key (UUID)
	EventType EventType
	EventID   string `json:"eventID"`
	PieceRef
	Status PostingStatus `json:"status"`
	// ReversalOf links a contra-posting back to the original posting.
	ReversalOf *string `json:"reversalOf,omitempty"`
	AuditFields
}
