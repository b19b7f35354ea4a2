package repositories

import (
	"context"

	"github.com/ludotheca/ludotheca_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CashRegisterReader defines read operations for cash registers.
type CashRegisterReader interface {
	// FindRegisterByID retrieves a register by its unique identifier.
	FindRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error)

	// ListRegisters retrieves all registers.
	ListRegisters(ctx context.Context) ([]domain.CashRegister, error)
}

// CashRegisterWriter defines write operations for cash registers.
// The register balance itself is only ever written through CloseSession.
type CashRegisterWriter interface {
	// SaveRegister persists a new register.
	SaveRegister(ctx context.Context, register domain.CashRegister) error
}

// CashSessionReader defines read operations for sessions and movements.
type CashSessionReader interface {
	// FindSessionByID retrieves a session without its movements.
	FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error)

	// FindOpenSessionByRegister returns the OPEN session of a register, or
	// apperrors.ErrNotFound when the register has none.
	FindOpenSessionByRegister(ctx context.Context, registerID string) (*domain.CashSession, error)

	// ListSessionsByRegister retrieves a paginated list of sessions for a
	// register using token-based pagination, newest first.
	ListSessionsByRegister(ctx context.Context, registerID string, limit int, nextToken *string) ([]domain.CashSession, *string, error)

	// FindMovementsBySession retrieves all movements of a session, valid and
	// voided alike, in creation order.
	FindMovementsBySession(ctx context.Context, sessionID string) ([]domain.CashMovement, error)
}

// CashSessionWriter defines the mutating session operations. Each method
// runs inside a single repository-internal database transaction: the
// authoritative state checks happen under a row lock so concurrent callers
// serialize on the register (open) or the session (everything else).
type CashSessionWriter interface {
	// OpenSession creates session as the OPEN session of its register,
	// copying the register's current balance into the session's opening
	// balance. Returns apperrors.ErrConflict if the register already has an
	// OPEN session, apperrors.ErrNotFound if the register does not exist.
	OpenSession(ctx context.Context, session domain.CashSession) (*domain.CashSession, error)

	// SaveMovement inserts movement into its session and recomputes the
	// session's theoretical balance from the remaining valid movements.
	// Returns apperrors.ErrInvalidState unless the session is OPEN.
	SaveMovement(ctx context.Context, movement domain.CashMovement) (*domain.CashMovement, error)

	// VoidMovement marks a movement VOIDED (soft, never deletes) and
	// recomputes the session's theoretical balance. Returns
	// apperrors.ErrInvalidState unless the session is OPEN and the movement
	// is still VALID.
	VoidMovement(ctx context.Context, sessionID, movementID, voidedBy, reason string) (*domain.CashMovement, error)

	// CloseSession transitions an OPEN session to CLOSED, freezing its
	// reconciliation figures and propagating the declared balance to the
	// owning register's current balance. Returns apperrors.ErrInvalidState
	// unless the session is OPEN.
	CloseSession(ctx context.Context, sessionID, closedBy string, declared decimal.Decimal, comment string) (*domain.CashSession, error)

	// VoidSession transitions an OPEN session with zero valid movements to
	// VOIDED. Returns apperrors.ErrInvalidState unless OPEN and
	// apperrors.ErrBusinessRule when valid movements exist.
	VoidSession(ctx context.Context, sessionID, voidedBy, reason string) (*domain.CashSession, error)
}

// CashRepositoryFacade combines all cash-register repository interfaces.
type CashRepositoryFacade interface {
	CashRegisterReader
	CashRegisterWriter
	CashSessionReader
	CashSessionWriter
}
