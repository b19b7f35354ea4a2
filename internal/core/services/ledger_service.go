package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ludotheca/ludotheca_backend/internal/apperrors"
	"github.com/ludotheca/ludotheca_backend/internal/core/domain"
	portsrepo "github.com/ludotheca/ludotheca_backend/internal/core/ports/repositories"
	portssvc "github.com/ludotheca/ludotheca_backend/internal/core/ports/services"
	"github.com/ludotheca/ludotheca_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	// ErrAlreadyReversed is returned when reversing an event whose piece has
	// already been reversed.
	ErrAlreadyReversed = errors.New("posting has already been reversed")
	// ErrReversalOfReversal is returned when attempting to reverse a
	// contra-piece.
	ErrReversalOfReversal = errors.New("cannot reverse a reversal piece")
)

// ledgerService turns business events into balanced accounting pieces. One
// call to Generate produces one piece: a posting row, a fresh piece number
// drawn inside the same transaction, and a batch of entries whose debits
// and credits sum to zero.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	mappingSvc portssvc.AccountMappingSvc
}

// NewLedgerService creates a new ledger generator service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, mappingSvc portssvc.AccountMappingSvc) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		mappingSvc: mappingSvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// counterpartAccount picks the account opposite the product/charge account:
// payments are resolved by their payment method, disposals by the mapping's
// configured outflow account.
func (s *ledgerService) counterpartAccount(ctx context.Context, event domain.LedgerEvent, mapping domain.AccountMapping) (string, error) {
	switch e := event.(type) {
	case domain.PaymentEvent:
		enc, err := s.mappingSvc.ResolveEncashmentAccount(ctx, e.Method)
		if err != nil {
			return "", fmt.Errorf("failed to resolve encashment account for method %s: %w", e.Method, err)
		}
		return enc.AccountNumber, nil
	case domain.DisposalEvent:
		if mapping.OutflowAccount == "" {
			return "", fmt.Errorf("%w: no outflow account configured for %s", apperrors.ErrValidation, event.LedgerEventType())
		}
		return mapping.OutflowAccount, nil
	default:
		return "", fmt.Errorf("%w: unsupported event type %s", apperrors.ErrValidation, event.LedgerEventType())
	}
}

// buildEntries produces the balanced entry pair for an event. The piece
// reference fields are left zero; the repository stamps them once the
// sequence number is drawn inside the saving transaction.
func (s *ledgerService) buildEntries(event domain.LedgerEvent, mapping domain.AccountMapping, counterpart string, operatorUserID string, now time.Time) []domain.LedgerEntry {
	amount := event.LedgerAmount()

	counterpartEntry := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		AccountNumber:   counterpart,
		Label:           event.LedgerLabel(),
		AnalyticSection: mapping.AnalyticSection,
		EventType:       event.LedgerEventType(),
		EventID:         event.LedgerEventID(),
		EntryDate:       event.LedgerDate(),
		CreatedAt:       now,
		CreatedBy:       operatorUserID,
	}
	productEntry := counterpartEntry
	productEntry.EntryID = uuid.NewString()
	productEntry.AccountNumber = mapping.ProductAccount

	switch event.LedgerDirection() {
	case domain.DirectionOutflow:
		counterpartEntry.Credit = amount
		productEntry.Debit = amount
	default: // inflow
		counterpartEntry.Debit = amount
		productEntry.Credit = amount
	}

	return []domain.LedgerEntry{counterpartEntry, productEntry}
}

// Generate posts a business event as a balanced piece. Safe to call twice
// for the same event: a second call finds the existing posting and returns
// its entries without issuing a new number or duplicating entries.
func (s *ledgerService) Generate(ctx context.Context, event domain.LedgerEvent, operatorUserID string) (*domain.LedgerPosting, []domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if event.LedgerEventID() == "" {
		return nil, nil, fmt.Errorf("%w: event ID is required", apperrors.ErrValidation)
	}
	if event.LedgerAmount().LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: event amount must be positive", apperrors.ErrValidation)
	}
	if event.LedgerDate().IsZero() {
		return nil, nil, fmt.Errorf("%w: event date is required", apperrors.ErrValidation)
	}

	// Idempotency guard: an event that already carries a piece is a no-op.
	existing, err := s.ledgerRepo.FindPostingByEvent(ctx, event.LedgerEventType(), event.LedgerEventID())
	if err == nil {
		logger.Info("Event already posted, returning existing piece",
			slog.String("event_id", event.LedgerEventID()),
			slog.String("piece", existing.PieceRef.String()))
		entries, ferr := s.ledgerRepo.FindEntriesByPiece(ctx, existing.PieceRef)
		if ferr != nil {
			return nil, nil, fmt.Errorf("failed to load entries of existing piece %s: %w", existing.PieceRef, ferr)
		}
		return existing, entries, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, fmt.Errorf("failed to check for existing posting: %w", err)
	}

	mapping, err := s.mappingSvc.Resolve(ctx, event.LedgerEventType())
	if err != nil {
		logger.Error("Failed to resolve account mapping", slog.String("error", err.Error()), slog.String("event_type", string(event.LedgerEventType())))
		return nil, nil, err
	}

	counterpart, err := s.counterpartAccount(ctx, event, mapping)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	entries := s.buildEntries(event, mapping, counterpart, operatorUserID, now)
	if err := domain.ValidatePieceBalance(entries); err != nil {
		// Unreachable for a well-formed event; kept as the last line of
		// defence before anything is written.
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	posting := domain.LedgerPosting{
		PostingID: uuid.NewString(),
		EventType: event.LedgerEventType(),
		EventID:   event.LedgerEventID(),
		PieceRef: domain.PieceRef{
			JournalCode: mapping.JournalCode,
			FiscalYear:  domain.FiscalYearOf(event.LedgerDate()),
		},
		Status: domain.PostingPosted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorUserID,
		},
	}

	savedPosting, savedEntries, err := s.ledgerRepo.SavePiece(ctx, posting, entries)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race with a concurrent Generate for the same event; the
			// committed piece wins.
			logger.Warn("Concurrent posting detected for event", slog.String("event_id", event.LedgerEventID()))
			return nil, nil, fmt.Errorf("%w: event %s was posted concurrently", apperrors.ErrConflict, event.LedgerEventID())
		}
		logger.Error("Failed to save piece", slog.String("error", err.Error()), slog.String("event_id", event.LedgerEventID()))
		return nil, nil, err
	}

	logger.Info("Piece generated",
		slog.String("piece", savedPosting.PieceRef.String()),
		slog.String("event_type", string(event.LedgerEventType())),
		slog.String("event_id", event.LedgerEventID()),
		slog.String("amount", event.LedgerAmount().String()))
	return savedPosting, savedEntries, nil
}

// GenerateReversal writes a contra-piece for a previously posted event: a
// new piece number and the original entries with debit and credit swapped.
// The original entries are never mutated or deleted.
func (s *ledgerService) GenerateReversal(ctx context.Context, eventType domain.EventType, eventID string, operatorUserID string) (*domain.LedgerPosting, []domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.ledgerRepo.FindPostingByEvent(ctx, eventType, eventID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No posting to reverse", slog.String("event_id", eventID))
		}
		return nil, nil, err
	}
	if original.ReversalOf != nil {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrBusinessRule, ErrReversalOfReversal)
	}
	if original.Status != domain.PostingPosted {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAlreadyReversed)
	}

	originalEntries, err := s.ledgerRepo.FindEntriesByPiece(ctx, original.PieceRef)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load entries of piece %s: %w", original.PieceRef, err)
	}

	now := time.Now().UTC()
	reversed := make([]domain.LedgerEntry, len(originalEntries))
	for i, orig := range originalEntries {
		rev := orig
		rev.EntryID = uuid.NewString()
		rev.Debit, rev.Credit = orig.Credit, orig.Debit
		rev.Label = "Annulation: " + orig.Label
		rev.EntryDate = now
		rev.CreatedAt = now
		rev.CreatedBy = operatorUserID
		reversed[i] = rev
	}
	if err := domain.ValidatePieceBalance(reversed); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	contra := domain.LedgerPosting{
		PostingID: uuid.NewString(),
		EventType: eventType,
		EventID:   eventID,
		PieceRef: domain.PieceRef{
			JournalCode: original.JournalCode,
			FiscalYear:  domain.FiscalYearOf(now),
		},
		Status:     domain.PostingPosted,
		ReversalOf: &original.PostingID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorUserID,
		},
	}

	savedPosting, savedEntries, err := s.ledgerRepo.SaveReversalPiece(ctx, original.PostingID, contra, reversed)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Posting reversed concurrently", slog.String("posting_id", original.PostingID))
		} else {
			logger.Error("Failed to save reversal piece", slog.String("error", err.Error()), slog.String("event_id", eventID))
		}
		return nil, nil, err
	}

	logger.Info("Reversal piece generated",
		slog.String("original_piece", original.PieceRef.String()),
		slog.String("reversal_piece", savedPosting.PieceRef.String()),
		slog.String("event_id", eventID))
	return savedPosting, savedEntries, nil
}

// GetPiece retrieves all entries of one accounting piece.
func (s *ledgerService) GetPiece(ctx context.Context, piece domain.PieceRef) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.FindEntriesByPiece(ctx, piece)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("piece %s: %w", piece, apperrors.ErrNotFound)
	}
	return entries, nil
}

// GetPostingForEvent retrieves the original posting and every entry
// referencing a business event, contra-pieces included.
func (s *ledgerService) GetPostingForEvent(ctx context.Context, eventType domain.EventType, eventID string) (*domain.LedgerPosting, []domain.LedgerEntry, error) {
	posting, err := s.ledgerRepo.FindPostingByEvent(ctx, eventType, eventID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.ledgerRepo.FindEntriesByEvent(ctx, eventType, eventID)
	if err != nil {
		return nil, nil, err
	}
	return posting, entries, nil
}
