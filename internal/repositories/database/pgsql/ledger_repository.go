package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ludotheca/ludotheca_backend/internal/apperrors"
	"github.com/ludotheca/ludotheca_backend/internal/core/domain"
	portsrepo "github.com/ludotheca/ludotheca_backend/internal/core/ports/repositories"
)

type PgxLedgerRepository struct {
	BaseRepository
	sequenceRepo portsrepo.SequenceRepository
}

// NewPgxLedgerRepository creates a new repository for postings and entries.
func NewPgxLedgerRepository(pool *pgxpool.Pool, sequenceRepo portsrepo.SequenceRepository) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		sequenceRepo:   sequenceRepo,
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const entryColumns = `entry_id, journal_code, fiscal_year, piece_number, account_number, debit, credit, label, analytic_section, event_type, event_id, entry_date, created_at, created_by`

const postingColumns = `posting_id, event_type, event_id, journal_code, fiscal_year, piece_number, status, reversal_of, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	err := row.Scan(
		&e.EntryID, &e.JournalCode, &e.FiscalYear, &e.PieceNumber,
		&e.AccountNumber, &e.Debit, &e.Credit, &e.Label, &e.AnalyticSection,
		&e.EventType, &e.EventID, &e.EntryDate, &e.CreatedAt, &e.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func scanPosting(row pgx.Row) (*domain.LedgerPosting, error) {
	var p domain.LedgerPosting
	err := row.Scan(
		&p.PostingID, &p.EventType, &p.EventID,
		&p.JournalCode, &p.FiscalYear, &p.PieceNumber,
		&p.Status, &p.ReversalOf,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindEntriesByPiece retrieves all entries of one accounting piece, ordered
// by account number for a stable presentation.
func (r *PgxLedgerRepository) FindEntriesByPiece(ctx context.Context, piece domain.PieceRef) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE journal_code = $1 AND fiscal_year = $2 AND piece_number = $3
		ORDER BY account_number, entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, piece.JournalCode, piece.FiscalYear, piece.PieceNumber)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find entries for piece "+piece.String(), err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// FindPostingByEvent retrieves the original (non-reversal) posting for an event.
func (r *PgxLedgerRepository) FindPostingByEvent(ctx context.Context, eventType domain.EventType, eventID string) (*domain.LedgerPosting, error) {
	query := `
		SELECT ` + postingColumns + `
		FROM ledger_postings
		WHERE event_type = $1 AND event_id = $2 AND reversal_of IS NULL;
	`
	posting, err := scanPosting(r.Pool.QueryRow(ctx, query, eventType, eventID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find posting for event "+eventID, err)
	}
	return posting, nil
}

// FindEntriesByEvent retrieves all entries referencing an event, originals
// and reversals alike, oldest piece first.
func (r *PgxLedgerRepository) FindEntriesByEvent(ctx context.Context, eventType domain.EventType, eventID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE event_type = $1 AND event_id = $2
		ORDER BY created_at, piece_number, account_number;
	`
	rows, err := r.Pool.Query(ctx, query, eventType, eventID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find entries for event "+eventID, err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}
	return entries, nil
}

// savePieceInTx inserts the posting, draws the next piece number for the
// posting's (journal code, fiscal year) on the same transaction, stamps the
// entries and batch-inserts them. The posting insert goes first so a
// duplicate event fails before a sequence number is burned.
func (r *PgxLedgerRepository) savePieceInTx(ctx context.Context, tx pgx.Tx, posting domain.LedgerPosting, entries []domain.LedgerEntry) (*domain.LedgerPosting, []domain.LedgerEntry, error) {
	postingQuery := `
		INSERT INTO ledger_postings (` + postingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, postingQuery,
		posting.PostingID, posting.EventType, posting.EventID,
		posting.JournalCode, posting.FiscalYear, posting.PieceNumber,
		posting.Status, posting.ReversalOf,
		posting.CreatedAt, posting.CreatedBy, posting.LastUpdatedAt, posting.LastUpdatedBy,
	)
	if err != nil {
		if cerr := classifyPgError(err); cerr != err {
			return nil, nil, cerr
		}
		return nil, nil, apperrors.NewAppError(500, "failed to insert posting "+posting.PostingID, err)
	}

	number, err := r.sequenceRepo.NextNumber(ctx, tx, posting.JournalCode, posting.FiscalYear)
	if err != nil {
		return nil, nil, err
	}
	posting.PieceNumber = number

	updatePostingQuery := `UPDATE ledger_postings SET piece_number = $1 WHERE posting_id = $2;`
	if _, err := tx.Exec(ctx, updatePostingQuery, number, posting.PostingID); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to stamp piece number on posting "+posting.PostingID, err)
	}

	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for i := range entries {
		entries[i].JournalCode = posting.JournalCode
		entries[i].FiscalYear = posting.FiscalYear
		entries[i].PieceNumber = number
		e := entries[i]
		batch.Queue(entryQuery,
			e.EntryID, e.JournalCode, e.FiscalYear, e.PieceNumber,
			e.AccountNumber, e.Debit, e.Credit, e.Label, e.AnalyticSection,
			e.EventType, e.EventID, e.EntryDate, e.CreatedAt, e.CreatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if cerr := classifyPgError(err); cerr != err {
			return nil, nil, cerr
		}
		return nil, nil, apperrors.NewAppError(500, "failed to execute entry batch for posting "+posting.PostingID, err)
	}

	return &posting, entries, nil
}

// SavePiece records a posting and its balanced entries under a fresh piece
// number, all inside one transaction.
func (r *PgxLedgerRepository) SavePiece(ctx context.Context, posting domain.LedgerPosting, entries []domain.LedgerEntry) (*domain.LedgerPosting, []domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	savedPosting, savedEntries, err := r.savePieceInTx(ctx, tx, posting, entries)
	if err != nil {
		return nil, nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return savedPosting, savedEntries, nil
}

// SaveReversalPiece marks the original posting REVERSED and writes the
// contra-piece in one transaction. The original row lock makes concurrent
// reversals of the same posting serialize; the loser finds it no longer
// POSTED and gets ErrConflict.
func (r *PgxLedgerRepository) SaveReversalPiece(ctx context.Context, originalPostingID string, posting domain.LedgerPosting, entries []domain.LedgerEntry) (*domain.LedgerPosting, []domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT status FROM ledger_postings WHERE posting_id = $1 FOR UPDATE;`
	var status domain.PostingStatus
	if err := tx.QueryRow(ctx, lockQuery, originalPostingID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrNotFound
		}
		if cerr := classifyPgError(err); cerr != err {
			return nil, nil, cerr
		}
		return nil, nil, apperrors.NewAppError(500, "failed to lock posting "+originalPostingID, err)
	}
	if status != domain.PostingPosted {
		return nil, nil, apperrors.ErrConflict
	}

	markQuery := `
		UPDATE ledger_postings
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE posting_id = $4;
	`
	if _, err := tx.Exec(ctx, markQuery, domain.PostingReversed, posting.CreatedAt, posting.CreatedBy, originalPostingID); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to mark posting reversed "+originalPostingID, err)
	}

	savedPosting, savedEntries, err := r.savePieceInTx(ctx, tx, posting, entries)
	if err != nil {
		return nil, nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return savedPosting, savedEntries, nil
}
