package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/ludotheca/ludotheca_backend/internal/core/domain"
)

// LedgerReader defines read operations for ledger data.
type LedgerReader interface {
	// FindEntriesByPiece retrieves all entries of one accounting piece.
	FindEntriesByPiece(ctx context.Context, piece domain.PieceRef) ([]domain.LedgerEntry, error)

	// FindPostingByEvent retrieves the original (non-reversal) posting for a
	// business event, or apperrors.ErrNotFound.
	FindPostingByEvent(ctx context.Context, eventType domain.EventType, eventID string) (*domain.LedgerPosting, error)

	// FindEntriesByEvent retrieves all entries referencing a business event,
	// original and contra pieces alike.
	FindEntriesByEvent(ctx context.Context, eventType domain.EventType, eventID string) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines the piece-creating operations. Both run inside a
// single repository-internal database transaction: the posting insert, the
// sequence draw and the entry batch commit or roll back together, so a
// concurrent reader sees either zero or all entries of a piece.
type LedgerWriter interface {
	// SavePiece records the posting, draws the next piece number for the
	// posting's (journal code, fiscal year) on the same transaction, stamps
	// the entries with the resulting piece reference and batch-inserts them.
	// Returns apperrors.ErrDuplicate if the event already has an original
	// posting.
	SavePiece(ctx context.Context, posting domain.LedgerPosting, entries []domain.LedgerEntry) (*domain.LedgerPosting, []domain.LedgerEntry, error)

	// SaveReversalPiece writes a contra-piece: a new posting linked to the
	// original via ReversalOf, a fresh piece number, and the swapped
	// entries. The original posting is marked REVERSED under the same
	// transaction; its entries are never touched. Returns
	// apperrors.ErrConflict unless the original posting is still POSTED.
	SaveReversalPiece(ctx context.Context, originalPostingID string, posting domain.LedgerPosting, entries []domain.LedgerEntry) (*domain.LedgerPosting, []domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// SequenceRepository issues unique, strictly increasing piece numbers
// scoped by (journal code, fiscal year), the same key a piece is identified
// by. NextNumber runs on the caller's transaction so the counter row lock
// is held until that transaction commits or rolls back; a rollback undoes
// the increment, so the number goes to the next caller instead of gapping.
type SequenceRepository interface {
	// NextNumber atomically increments and returns the counter for the key,
	// creating the row on first use.
	NextNumber(ctx context.Context, tx pgx.Tx, journalCode string, fiscalYear int) (int64, error)
}
