package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ludotheca/ludotheca_backend/internal/apperrors"
	"github.com/ludotheca/ludotheca_backend/internal/core/domain"
	portsrepo "github.com/ludotheca/ludotheca_backend/internal/core/ports/repositories"
	"github.com/ludotheca/ludotheca_backend/internal/utils/pagination"
)

type PgxCashRepository struct {
	BaseRepository
}

// NewPgxCashRepository creates a new repository for registers, sessions and movements.
func NewPgxCashRepository(pool *pgxpool.Pool) portsrepo.CashRepositoryFacade {
	return &PgxCashRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CashRepositoryFacade = (*PgxCashRepository)(nil)

const registerColumns = `register_id, code, name, current_balance, opening_balance, responsible_user_id, created_at, created_by, last_updated_at, last_updated_by`

const sessionColumns = `session_id, register_id, opened_by, closed_by, opening_balance, theoretical_balance, declared_balance, variance, status, opening_comment, closing_comment, void_reason, opened_at, closed_at, created_at, created_by, last_updated_at, last_updated_by`

const movementColumns = `movement_id, session_id, type, category, amount, payment_method, status, label, reference_id, void_reason, voided_by, voided_at, created_at, created_by, last_updated_at, last_updated_by`

func scanRegister(row pgx.Row) (*domain.CashRegister, error) {
	var r domain.CashRegister
	err := row.Scan(
		&r.RegisterID, &r.Code, &r.Name, &r.CurrentBalance, &r.OpeningBalance, &r.ResponsibleUserID,
		&r.CreatedAt, &r.CreatedBy, &r.LastUpdatedAt, &r.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func scanSession(row pgx.Row) (*domain.CashSession, error) {
	var s domain.CashSession
	err := row.Scan(
		&s.SessionID, &s.RegisterID, &s.OpenedBy, &s.ClosedBy,
		&s.OpeningBalance, &s.TheoreticalBalance, &s.DeclaredBalance, &s.Variance,
		&s.Status, &s.OpeningComment, &s.ClosingComment, &s.VoidReason,
		&s.OpenedAt, &s.ClosedAt,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanMovement(row pgx.Row) (*domain.CashMovement, error) {
	var m domain.CashMovement
	err := row.Scan(
		&m.MovementID, &m.SessionID, &m.Type, &m.Category, &m.Amount, &m.PaymentMethod,
		&m.Status, &m.Label, &m.ReferenceID, &m.VoidReason, &m.VoidedBy, &m.VoidedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveRegister persists a new register. The register code carries a unique
// constraint; a taken code surfaces as ErrDuplicate.
func (r *PgxCashRepository) SaveRegister(ctx context.Context, register domain.CashRegister) error {
	query := `
		INSERT INTO cash_registers (` + registerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		register.RegisterID, register.Code, register.Name,
		register.CurrentBalance, register.OpeningBalance, register.ResponsibleUserID,
		register.CreatedAt, register.CreatedBy, register.LastUpdatedAt, register.LastUpdatedBy,
	)
	if err != nil {
		if cerr := classifyPgError(err); cerr != err {
			return cerr
		}
		return apperrors.NewAppError(500, "failed to insert register "+register.RegisterID, err)
	}
	return nil
}

// FindRegisterByID retrieves a register by its ID.
func (r *PgxCashRepository) FindRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error) {
	query := `SELECT ` + registerColumns + ` FROM cash_registers WHERE register_id = $1;`
	register, err := scanRegister(r.Pool.QueryRow(ctx, query, registerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find register by ID "+registerID, err)
	}
	return register, nil
}

// ListRegisters retrieves all registers ordered by code.
func (r *PgxCashRepository) ListRegisters(ctx context.Context) ([]domain.CashRegister, error) {
	query := `SELECT ` + registerColumns + ` FROM cash_registers ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list registers", err)
	}
	defer rows.Close()

	var registers []domain.CashRegister
	for rows.Next() {
		register, err := scanRegister(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan register row", err)
		}
		registers = append(registers, *register)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating register rows", err)
	}
	return registers, nil
}

// OpenSession creates the OPEN session of a register inside one transaction.
// The register row lock serializes concurrent opens: the second caller
// blocks until the first commits, then sees the fresh OPEN session and gets
// ErrConflict.
func (r *PgxCashRepository) OpenSession(ctx context.Context, session domain.CashSession) (*domain.CashSession, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + registerColumns + ` FROM cash_registers WHERE register_id = $1 FOR UPDATE;`
	register, err := scanRegister(tx.QueryRow(ctx, lockQuery, session.RegisterID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		if cerr := classifyPgError(err); cerr != err {
			return nil, cerr
		}
		return nil, apperrors.NewAppError(500, "failed to lock register "+session.RegisterID, err)
	}

	var openCount int
	countQuery := `SELECT COUNT(*) FROM cash_sessions WHERE register_id = $1 AND status = $2;`
	if err := tx.QueryRow(ctx, countQuery, session.RegisterID, domain.SessionOpen).Scan(&openCount); err != nil {
		return nil, apperrors.NewAppError(500, "failed to check open sessions for register "+session.RegisterID, err)
	}
	if openCount > 0 {
		return nil, apperrors.ErrConflict
	}

	// The register balance at open time is the session's starting point;
	// with no movements yet the theoretical balance equals it.
	session.OpeningBalance = register.CurrentBalance
	session.TheoreticalBalance = register.CurrentBalance

	insertQuery := `
		INSERT INTO cash_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = tx.Exec(ctx, insertQuery,
		session.SessionID, session.RegisterID, session.OpenedBy, session.ClosedBy,
		session.OpeningBalance, session.TheoreticalBalance, session.DeclaredBalance, session.Variance,
		session.Status, session.OpeningComment, session.ClosingComment, session.VoidReason,
		session.OpenedAt, session.ClosedAt,
		session.CreatedAt, session.CreatedBy, session.LastUpdatedAt, session.LastUpdatedBy,
	)
	if err != nil {
		if cerr := classifyPgError(err); cerr != err {
			return nil, cerr
		}
		return nil, apperrors.NewAppError(500, "failed to insert session "+session.SessionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &session, nil
}

// FindSessionByID retrieves a session without its movements.
func (r *PgxCashRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE session_id = $1;`
	session, err := scanSession(r.Pool.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find session by ID "+sessionID, err)
	}
	return session, nil
}

// FindOpenSessionByRegister returns the OPEN session of a register.
func (r *PgxCashRepository) FindOpenSessionByRegister(ctx context.Context, registerID string) (*domain.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE register_id = $1 AND status = $2;`
	session, err := scanSession(r.Pool.QueryRow(ctx, query, registerID, domain.SessionOpen))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find open session for register "+registerID, err)
	}
	return session, nil
}

// ListSessionsByRegister retrieves sessions of a register newest first,
// using (opened_at, session_id) token pagination.
func (r *PgxCashRepository) ListSessionsByRegister(ctx context.Context, registerID string, limit int, nextToken *string) ([]domain.CashSession, *string, error) {
	args := []interface{}{registerID}
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE register_id = $1`

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, apperrors.ErrValidation
		}
		openedAt, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, apperrors.ErrValidation
		}
		query += ` AND (opened_at, session_id) < ($2, $3)`
		args = append(args, openedAt, fields[1])
	}

	query += ` ORDER BY opened_at DESC, session_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, limit+1) // Fetch one extra to know whether a next page exists

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list sessions for register "+registerID, err)
	}
	defer rows.Close()

	var sessions []domain.CashSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan session row", err)
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating session rows", err)
	}

	var token *string
	if len(sessions) > limit {
		sessions = sessions[:limit]
		last := sessions[len(sessions)-1]
		t := pagination.EncodeMultiFieldToken(last.OpenedAt.Format(time.RFC3339Nano), last.SessionID)
		token = &t
	}
	return sessions, token, nil
}

// FindMovementsBySession retrieves all movements of a session in creation order.
func (r *PgxCashRepository) FindMovementsBySession(ctx context.Context, sessionID string) ([]domain.CashMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM cash_movements WHERE session_id = $1 ORDER BY created_at, movement_id;`
	rows, err := r.Pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list movements for session "+sessionID, err)
	}
	defer rows.Close()

	var movements []domain.CashMovement
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan movement row", err)
		}
		movements = append(movements, *movement)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating movement rows", err)
	}
	return movements, nil
}

// lockOpenSession fetches a session FOR UPDATE and verifies it is OPEN.
// Mutations of a session and its movements all funnel through this lock, so
// they serialize per session.
func (r *PgxCashRepository) lockOpenSession(ctx context.Context, tx pgx.Tx, sessionID string) (*domain.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE session_id = $1 FOR UPDATE;`
	session, err := scanSession(tx.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		if cerr := classifyPgError(err); cerr != err {
			return nil, cerr
		}
		return nil, apperrors.NewAppError(500, "failed to lock session "+sessionID, err)
	}
	if !session.IsOpen() {
		return nil, apperrors.ErrInvalidState
	}
	return session, nil
}

// recomputeTheoretical rebuilds the session's theoretical balance from its
// valid movements, on the caller's transaction.
func (r *PgxCashRepository) recomputeTheoretical(ctx context.Context, tx pgx.Tx, session *domain.CashSession, updatedBy string, now time.Time) (decimal.Decimal, error) {
	query := `SELECT ` + movementColumns + ` FROM cash_movements WHERE session_id = $1;`
	rows, err := tx.Query(ctx, query, session.SessionID)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to load movements for session "+session.SessionID, err)
	}
	defer rows.Close()

	var movements []domain.CashMovement
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return decimal.Zero, apperrors.NewAppError(500, "failed to scan movement row", err)
		}
		movements = append(movements, *movement)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "error iterating movement rows", err)
	}

	inSum, outSum := domain.SumValidMovements(movements)
	theoretical := session.OpeningBalance.Add(inSum).Sub(outSum)

	updateQuery := `
		UPDATE cash_sessions
		SET theoretical_balance = $1, last_updated_at = $2, last_updated_by = $3
		WHERE session_id = $4;
	`
	if _, err := tx.Exec(ctx, updateQuery, theoretical, now, updatedBy, session.SessionID); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to update theoretical balance for session "+session.SessionID, err)
	}
	return theoretical, nil
}

// SaveMovement inserts a movement and recomputes the session's theoretical
// balance inside one transaction.
func (r *PgxCashRepository) SaveMovement(ctx context.Context, movement domain.CashMovement) (*domain.CashMovement, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	session, err := r.lockOpenSession(ctx, tx, movement.SessionID)
	if err != nil {
		return nil, err
	}

	insertQuery := `
		INSERT INTO cash_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, insertQuery,
		movement.MovementID, movement.SessionID, movement.Type, movement.Category,
		movement.Amount, movement.PaymentMethod, movement.Status, movement.Label,
		movement.ReferenceID, movement.VoidReason, movement.VoidedBy, movement.VoidedAt,
		movement.CreatedAt, movement.CreatedBy, movement.LastUpdatedAt, movement.LastUpdatedBy,
	)
	if err != nil {
		if cerr := classifyPgError(err); cerr != err {
			return nil, cerr
		}
		return nil, apperrors.NewAppError(500, "failed to insert movement "+movement.MovementID, err)
	}

	if _, err := r.recomputeTheoretical(ctx, tx, session, movement.CreatedBy, movement.CreatedAt); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &movement, nil
}

// VoidMovement soft-cancels a movement and recomputes the session's
// theoretical balance inside one transaction. The movement row stays for
// the audit trail.
func (r *PgxCashRepository) VoidMovement(ctx context.Context, sessionID, movementID, voidedBy, reason string) (*domain.CashMovement, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	session, err := r.lockOpenSession(ctx, tx, sessionID)
	if err != nil {
		return nil, err
	}

	findQuery := `SELECT ` + movementColumns + ` FROM cash_movements WHERE movement_id = $1 AND session_id = $2;`
	movement, err := scanMovement(tx.QueryRow(ctx, findQuery, movementID, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find movement "+movementID, err)
	}
	if !movement.IsValid() {
		return nil, apperrors.ErrInvalidState
	}

	now := time.Now().UTC()
	updateQuery := `
		UPDATE cash_movements
		SET status = $1, void_reason = $2, voided_by = $3, voided_at = $4, last_updated_at = $5, last_updated_by = $6
		WHERE movement_id = $7;
	`
	if _, err := tx.Exec(ctx, updateQuery, domain.MovementVoided, reason, voidedBy, now, now, voidedBy, movementID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to void movement "+movementID, err)
	}

	if _, err := r.recomputeTheoretical(ctx, tx, session, voidedBy, now); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	movement.Status = domain.MovementVoided
	movement.VoidReason = reason
	movement.VoidedBy = &voidedBy
	movement.VoidedAt = &now
	movement.LastUpdatedAt = now
	movement.LastUpdatedBy = voidedBy
	return movement, nil
}

// CloseSession freezes the reconciliation figures of an OPEN session and
// hands the declared balance over to the register, all in one transaction.
// The declared balance, not the theoretical one, becomes the register's
// current balance: the next session starts from the counted reality.
func (r *PgxCashRepository) CloseSession(ctx context.Context, sessionID, closedBy string, declared decimal.Decimal, comment string) (*domain.CashSession, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	session, err := r.lockOpenSession(ctx, tx, sessionID)
	if err != nil {
		return nil, err
	}

	movementsQuery := `SELECT ` + movementColumns + ` FROM cash_movements WHERE session_id = $1;`
	rows, err := tx.Query(ctx, movementsQuery, sessionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load movements for session "+sessionID, err)
	}
	var movements []domain.CashMovement
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan movement row", err)
		}
		movements = append(movements, *movement)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating movement rows", err)
	}

	inSum, outSum := domain.SumValidMovements(movements)
	theoretical, variance := domain.ComputeClosing(session.OpeningBalance, inSum, outSum, declared)

	now := time.Now().UTC()
	updateSessionQuery := `
		UPDATE cash_sessions
		SET status = $1, closed_by = $2, theoretical_balance = $3, declared_balance = $4, variance = $5,
		    closing_comment = $6, closed_at = $7, last_updated_at = $8, last_updated_by = $9
		WHERE session_id = $10;
	`
	_, err = tx.Exec(ctx, updateSessionQuery,
		domain.SessionClosed, closedBy, theoretical, declared, variance,
		comment, now, now, closedBy, sessionID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to close session "+sessionID, err)
	}

	updateRegisterQuery := `
		UPDATE cash_registers
		SET current_balance = $1, last_updated_at = $2, last_updated_by = $3
		WHERE register_id = $4;
	`
	if _, err := tx.Exec(ctx, updateRegisterQuery, declared, now, closedBy, session.RegisterID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to update register balance for "+session.RegisterID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	session.Status = domain.SessionClosed
	session.ClosedBy = &closedBy
	session.TheoreticalBalance = theoretical
	session.DeclaredBalance = &declared
	session.Variance = &variance
	session.ClosingComment = comment
	session.ClosedAt = &now
	session.LastUpdatedAt = now
	session.LastUpdatedBy = closedBy
	session.Movements = movements
	return session, nil
}

// VoidSession voids an OPEN session that has no valid movements. Sessions
// that saw money flow must be closed, never voided.
func (r *PgxCashRepository) VoidSession(ctx context.Context, sessionID, voidedBy, reason string) (*domain.CashSession, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	session, err := r.lockOpenSession(ctx, tx, sessionID)
	if err != nil {
		return nil, err
	}

	var validCount int
	countQuery := `SELECT COUNT(*) FROM cash_movements WHERE session_id = $1 AND status = $2;`
	if err := tx.QueryRow(ctx, countQuery, sessionID, domain.MovementValid).Scan(&validCount); err != nil {
		return nil, apperrors.NewAppError(500, "failed to count valid movements for session "+sessionID, err)
	}
	if validCount > 0 {
		return nil, apperrors.ErrBusinessRule
	}

	now := time.Now().UTC()
	updateQuery := `
		UPDATE cash_sessions
		SET status = $1, void_reason = $2, closed_at = $3, last_updated_at = $4, last_updated_by = $5
		WHERE session_id = $6;
	`
	if _, err := tx.Exec(ctx, updateQuery, domain.SessionVoided, reason, now, now, voidedBy, sessionID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to void session "+sessionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	session.Status = domain.SessionVoided
	session.VoidReason = reason
	session.ClosedAt = &now
	session.LastUpdatedAt = now
	session.LastUpdatedBy = voidedBy
	return session, nil
}
