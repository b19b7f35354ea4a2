package services

import (
	"context"

	"github.com/ludotheca/ludotheca_backend/internal/core/domain"
	"github.com/ludotheca/ludotheca_backend/internal/dto"
)

// CashReaderSvc defines read operations for registers, sessions and movements.
type CashReaderSvc interface {
	// GetRegisterByID retrieves a register.
	GetRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error)

	// ListRegisters retrieves all registers.
	ListRegisters(ctx context.Context) ([]domain.CashRegister, error)

	// GetSessionByID retrieves a session with its movements.
	GetSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error)

	// GetCurrentSession retrieves the OPEN session of a register with its
	// movements.
	GetCurrentSession(ctx context.Context, registerID string) (*domain.CashSession, error)

	// ListSessions retrieves a paginated list of sessions for a register.
	ListSessions(ctx context.Context, registerID string, params dto.ListSessionsParams) (*dto.ListSessionsResponse, error)
}

// CashWriterSvc defines the mutating cash operations. Every call takes the
// authenticated operator's user ID.
type CashWriterSvc interface {
	// CreateRegister creates a new till.
	CreateRegister(ctx context.Context, req dto.CreateRegisterRequest, creatorUserID string) (*domain.CashRegister, error)

	// OpenSession opens a session on a register, capturing the register's
	// current balance as the session's opening balance.
	OpenSession(ctx context.Context, registerID string, req dto.OpenSessionRequest, openerUserID string) (*domain.CashSession, error)

	// RecordMovement records an entry or exit of money on an open session.
	RecordMovement(ctx context.Context, sessionID string, req dto.RecordMovementRequest, operatorUserID string) (*domain.CashMovement, error)

	// VoidMovement soft-cancels a movement of an open session.
	VoidMovement(ctx context.Context, sessionID, movementID string, req dto.VoidRequest, operatorUserID string) (*domain.CashMovement, error)

	// CloseSession reconciles and closes an open session, handing the
	// declared balance to the register.
	CloseSession(ctx context.Context, sessionID string, req dto.CloseSessionRequest, closerUserID string) (*domain.CashSession, error)

	// VoidSession voids an open session that has no valid movements.
	VoidSession(ctx context.Context, sessionID string, req dto.VoidRequest, operatorUserID string) (*domain.CashSession, error)
}

// CashSvcFacade combines all cash-register service interfaces.
type CashSvcFacade interface {
	CashReaderSvc
	CashWriterSvc
}
