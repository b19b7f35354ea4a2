package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ludotheca/ludotheca_backend/internal/apperrors"
	portsrepo "github.com/ludotheca/ludotheca_backend/internal/core/ports/repositories"
)

type PgxSequenceRepository struct {
	BaseRepository
}

// NewPgxSequenceRepository creates a new repository for piece-number counters.
func NewPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextNumber atomically increments and returns the counter for
// (journalCode, fiscalYear), creating the row at 1 on first use. The
// single upsert takes the row lock, so concurrent draws for the same key
// serialize here and each caller sees a distinct number. Running on the
// caller's transaction means a later rollback discards the increment too:
// the number was never visible outside that transaction and the next draw
// issues it again, so committed numbers stay dense per counter.
func (r *PgxSequenceRepository) NextNumber(ctx context.Context, tx pgx.Tx, journalCode string, fiscalYear int) (int64, error) {
	query := `
		INSERT INTO sequence_counters (journal_code, fiscal_year, last_issued_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (journal_code, fiscal_year)
		DO UPDATE SET last_issued_number = sequence_counters.last_issued_number + 1
		RETURNING last_issued_number;
	`
	var number int64
	if err := tx.QueryRow(ctx, query, journalCode, fiscalYear).Scan(&number); err != nil {
		if cerr := classifyPgError(err); cerr != err {
			return 0, cerr
		}
		return 0, apperrors.NewAppError(500, "failed to draw next number for journal "+journalCode, err)
	}
	return number, nil
}
