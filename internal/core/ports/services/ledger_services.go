package services

import (
	"context"

	"github.com/ludotheca/ludotheca_backend/internal/core/domain"
)

// LedgerGeneratorSvc turns business events into balanced accounting pieces.
type LedgerGeneratorSvc interface {
	// Generate posts a business event as a balanced piece under a fresh
	// piece number. Calling it again for an event that was already posted is
	// a no-op returning the existing entries.
	Generate(ctx context.Context, event domain.LedgerEvent, operatorUserID string) (*domain.LedgerPosting, []domain.LedgerEntry, error)

	// GenerateReversal writes a contra-piece for a previously posted event
	// under a new piece number, leaving the original entries untouched.
	GenerateReversal(ctx context.Context, eventType domain.EventType, eventID string, operatorUserID string) (*domain.LedgerPosting, []domain.LedgerEntry, error)
}

// LedgerReaderSvc defines read operations on postings and entries.
type LedgerReaderSvc interface {
	// GetPiece retrieves all entries of one accounting piece.
	GetPiece(ctx context.Context, piece domain.PieceRef) ([]domain.LedgerEntry, error)

	// GetPostingForEvent retrieves the original posting and every entry
	// referencing a business event.
	GetPostingForEvent(ctx context.Context, eventType domain.EventType, eventID string) (*domain.LedgerPosting, []domain.LedgerEntry, error)
}

// LedgerSvcFacade combines the ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerGeneratorSvc
	LedgerReaderSvc
}

// AccountMappingSvc resolves account configuration for the generator. It
// fails open: when no configuration row exists the built-in defaults are
// returned, so bookkeeping never blocks day-to-day operations.
type AccountMappingSvc interface {
	// Resolve returns the mapping for an event type.
	Resolve(ctx context.Context, eventType domain.EventType) (domain.AccountMapping, error)

	// ResolveEncashmentAccount returns the counterpart account for a payment method.
	ResolveEncashmentAccount(ctx context.Context, method domain.PaymentMethod) (domain.EncashmentAccount, error)

	// ListMappings returns the configured mappings (not the defaults).
	ListMappings(ctx context.Context) ([]domain.AccountMapping, error)

	// ConfigureMapping creates or replaces a mapping.
	ConfigureMapping(ctx context.Context, mapping domain.AccountMapping, operatorUserID string) error

	// ConfigureEncashmentAccount creates or replaces a payment-method account.
	ConfigureEncashmentAccount(ctx context.Context, account domain.EncashmentAccount, operatorUserID string) error
}
