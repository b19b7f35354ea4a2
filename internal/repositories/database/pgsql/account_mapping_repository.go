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

type PgxAccountMappingRepository struct {
	BaseRepository
}

// NewPgxAccountMappingRepository creates a new repository for the
// configurable chart-of-accounts mapping.
func NewPgxAccountMappingRepository(pool *pgxpool.Pool) portsrepo.AccountMappingRepository {
	return &PgxAccountMappingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountMappingRepository = (*PgxAccountMappingRepository)(nil)

const mappingColumns = `event_type, journal_code, product_account, piece_prefix, outflow_account, analytic_section, created_at, created_by, last_updated_at, last_updated_by`

func scanMapping(row pgx.Row) (*domain.AccountMapping, error) {
	var m domain.AccountMapping
	err := row.Scan(
		&m.EventType, &m.JournalCode, &m.ProductAccount, &m.PiecePrefix,
		&m.OutflowAccount, &m.AnalyticSection,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindMappingByEventType retrieves the configured mapping for an event type.
func (r *PgxAccountMappingRepository) FindMappingByEventType(ctx context.Context, eventType domain.EventType) (*domain.AccountMapping, error) {
	query := `SELECT ` + mappingColumns + ` FROM account_mappings WHERE event_type = $1;`
	mapping, err := scanMapping(r.Pool.QueryRow(ctx, query, eventType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find mapping for event type "+string(eventType), err)
	}
	return mapping, nil
}

// FindEncashmentAccount retrieves the configured account for a payment method.
func (r *PgxAccountMappingRepository) FindEncashmentAccount(ctx context.Context, method domain.PaymentMethod) (*domain.EncashmentAccount, error) {
	query := `
		SELECT payment_method, account_number, journal_code, created_at, created_by, last_updated_at, last_updated_by
		FROM payment_method_accounts
		WHERE payment_method = $1;
	`
	var a domain.EncashmentAccount
	err := r.Pool.QueryRow(ctx, query, method).Scan(
		&a.PaymentMethod, &a.AccountNumber, &a.JournalCode,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account for method "+string(method), err)
	}
	return &a, nil
}

// ListMappings retrieves all configured mappings.
func (r *PgxAccountMappingRepository) ListMappings(ctx context.Context) ([]domain.AccountMapping, error) {
	query := `SELECT ` + mappingColumns + ` FROM account_mappings ORDER BY event_type;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list mappings", err)
	}
	defer rows.Close()

	var mappings []domain.AccountMapping
	for rows.Next() {
		mapping, err := scanMapping(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan mapping row", err)
		}
		mappings = append(mappings, *mapping)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating mapping rows", err)
	}
	return mappings, nil
}

// UpsertMapping creates or replaces the mapping for its event type.
func (r *PgxAccountMappingRepository) UpsertMapping(ctx context.Context, mapping domain.AccountMapping) error {
	query := `
		INSERT INTO account_mappings (` + mappingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (event_type)
		DO UPDATE SET journal_code = EXCLUDED.journal_code,
		              product_account = EXCLUDED.product_account,
		              piece_prefix = EXCLUDED.piece_prefix,
		              outflow_account = EXCLUDED.outflow_account,
		              analytic_section = EXCLUDED.analytic_section,
		              last_updated_at = EXCLUDED.last_updated_at,
		              last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		mapping.EventType, mapping.JournalCode, mapping.ProductAccount, mapping.PiecePrefix,
		mapping.OutflowAccount, mapping.AnalyticSection,
		mapping.CreatedAt, mapping.CreatedBy, mapping.LastUpdatedAt, mapping.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert mapping for "+string(mapping.EventType), err)
	}
	return nil
}

// UpsertEncashmentAccount creates or replaces the account for its payment method.
func (r *PgxAccountMappingRepository) UpsertEncashmentAccount(ctx context.Context, account domain.EncashmentAccount) error {
	query := `
		INSERT INTO payment_method_accounts (payment_method, account_number, journal_code, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (payment_method)
		DO UPDATE SET account_number = EXCLUDED.account_number,
		              journal_code = EXCLUDED.journal_code,
		              last_updated_at = EXCLUDED.last_updated_at,
		              last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		account.PaymentMethod, account.AccountNumber, account.JournalCode,
		account.CreatedAt, account.CreatedBy, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert account for "+string(account.PaymentMethod), err)
	}
	return nil
}
