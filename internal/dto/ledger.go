package dto

import (
	"time"

	"github.com/ludotheca/ludotheca_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostPaymentRequest defines the payload for posting a payment event.
type PostPaymentRequest struct {
	EventType domain.EventType     `json:"eventType" binding:"required,oneof=MEMBERSHIP_PAYMENT INVOICE_PAYMENT"`
	EventID   string               `json:"eventID" binding:"required"`
	Amount    decimal.Decimal      `json:"amount" binding:"required,decimalgt0"`
	Method    domain.PaymentMethod `json:"method" binding:"required,oneof=CASH CHEQUE CARD TRANSFER"`
	Date      time.Time            `json:"date" binding:"required"`
	Label     string               `json:"label" binding:"required"`
}

// ToPaymentEvent converts the request to its domain event.
func (r PostPaymentRequest) ToPaymentEvent() domain.PaymentEvent {
	return domain.PaymentEvent{
		Type:    r.EventType,
		EventID: r.EventID,
		Amount:  r.Amount,
		Method:  r.Method,
		Date:    r.Date,
		Label:   r.Label,
	}
}

// PostDisposalRequest defines the payload for posting an inventory disposal.
type PostDisposalRequest struct {
	EventID string          `json:"eventID" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
	Date    time.Time       `json:"date" binding:"required"`
	Label   string          `json:"label" binding:"required"`
}

// ToDisposalEvent converts the request to its domain event.
func (r PostDisposalRequest) ToDisposalEvent() domain.DisposalEvent {
	return domain.DisposalEvent{
		EventID: r.EventID,
		Amount:  r.Amount,
		Date:    r.Date,
		Label:   r.Label,
	}
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID       string          `json:"entryID"`
	JournalCode   string          `json:"journalCode"`
	FiscalYear    int             `json:"fiscalYear"`
	PieceNumber   int64           `json:"pieceNumber"`
	AccountNumber string          `json:"accountNumber"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Label         string          `json:"label"`
	EventType     string          `json:"eventType"`
	EventID       string          `json:"eventID"`
	EntryDate     time.Time       `json:"entryDate"`
}

// PostingResponse defines the data returned for a posting and its entries.
type PostingResponse struct {
	PostingID   string          `json:"postingID"`
	EventType   string          `json:"eventType"`
	EventID     string          `json:"eventID"`
	JournalCode string          `json:"journalCode"`
	FiscalYear  int             `json:"fiscalYear"`
	PieceNumber int64           `json:"pieceNumber"`
	Status      string          `json:"status"`
	ReversalOf  *string         `json:"reversalOf,omitempty"`
	Entries     []EntryResponse `json:"entries,omitempty"`
}

// ConfigureMappingRequest defines the payload for configuring an account mapping.
type ConfigureMappingRequest struct {
	EventType       domain.EventType `json:"eventType" binding:"required,oneof=MEMBERSHIP_PAYMENT INVOICE_PAYMENT INVENTORY_DISPOSAL"`
	JournalCode     string           `json:"journalCode" binding:"required,max=10"`
	ProductAccount  string           `json:"productAccount" binding:"required"`
	PiecePrefix     string           `json:"piecePrefix" binding:"required,max=10"`
	OutflowAccount  string           `json:"outflowAccount"`
	AnalyticSection *string          `json:"analyticSection"`
}

// ConfigureEncashmentRequest defines the payload for configuring a
// payment-method account.
type ConfigureEncashmentRequest struct {
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=CASH CHEQUE CARD TRANSFER"`
	AccountNumber string               `json:"accountNumber" binding:"required"`
	JournalCode   *string              `json:"journalCode"`
}

// ToEntryResponse converts a domain.LedgerEntry to its DTO.
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:       e.EntryID,
		JournalCode:   e.JournalCode,
		FiscalYear:    e.FiscalYear,
		PieceNumber:   e.PieceNumber,
		AccountNumber: e.AccountNumber,
		Debit:         e.Debit,
		Credit:        e.Credit,
		Label:         e.Label,
		EventType:     string(e.EventType),
		EventID:       e.EventID,
		EntryDate:     e.EntryDate,
	}
}

// ToEntryResponses converts a slice of entries to DTOs.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}

// ToPostingResponse converts a posting and its entries to a DTO.
func ToPostingResponse(p *domain.LedgerPosting, entries []domain.LedgerEntry) PostingResponse {
	return PostingResponse{
		PostingID:   p.PostingID,
		EventType:   string(p.EventType),
		EventID:     p.EventID,
		JournalCode: p.JournalCode,
		FiscalYear:  p.FiscalYear,
		PieceNumber: p.PieceNumber,
		Status:      string(p.Status),
		ReversalOf:  p.ReversalOf,
		Entries:     ToEntryResponses(entries),
	}
}
