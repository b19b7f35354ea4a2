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
	"github.com/ludotheca/ludotheca_backend/internal/dto"
	"github.com/ludotheca/ludotheca_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// cashSessionService owns the till lifecycle: open, record/void movements,
// reconcile and close, or void. All cross-request coordination goes through
// the repository's transactions and row locks; the service itself holds no
// state.
type cashSessionService struct {
	cashRepo portsrepo.CashRepositoryFacade
}

// NewCashSessionService creates a new cash session service.
func NewCashSessionService(cashRepo portsrepo.CashRepositoryFacade) portssvc.CashSvcFacade {
	return &cashSessionService{cashRepo: cashRepo}
}

var _ portssvc.CashSvcFacade = (*cashSessionService)(nil)

// CreateRegister creates a new till with its starting balance.
func (s *cashSessionService) CreateRegister(ctx context.Context, req dto.CreateRegisterRequest, creatorUserID string) (*domain.CashRegister, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	register := domain.CashRegister{
		RegisterID:        uuid.NewString(),
		Code:              req.Code,
		Name:              req.Name,
		CurrentBalance:    req.OpeningBalance,
		OpeningBalance:    req.OpeningBalance,
		ResponsibleUserID: creatorUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.cashRepo.SaveRegister(ctx, register); err != nil {
		logger.Error("Failed to save register", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, err
	}

	logger.Info("Register created", slog.String("register_id", register.RegisterID), slog.String("code", register.Code))
	return &register, nil
}

// GetRegisterByID retrieves a register.
func (s *cashSessionService) GetRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error) {
	return s.cashRepo.FindRegisterByID(ctx, registerID)
}

// ListRegisters retrieves all registers.
func (s *cashSessionService) ListRegisters(ctx context.Context) ([]domain.CashRegister, error) {
	return s.cashRepo.ListRegisters(ctx)
}

// OpenSession opens a session on a register. The register's current balance
// becomes the session's opening balance; the repository enforces the
// one-open-session-per-register invariant under the register row lock.
func (s *cashSessionService) OpenSession(ctx context.Context, registerID string, req dto.OpenSessionRequest, openerUserID string) (*domain.CashSession, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	session := domain.CashSession{
		SessionID:      uuid.NewString(),
		RegisterID:     registerID,
		OpenedBy:       openerUserID,
		Status:         domain.SessionOpen,
		OpeningComment: req.Comment,
		OpenedAt:       now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     openerUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: openerUserID,
		},
	}

	opened, err := s.cashRepo.OpenSession(ctx, session)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Register already has an open session", slog.String("register_id", registerID))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to open session", slog.String("error", err.Error()), slog.String("register_id", registerID))
		}
		return nil, err
	}

	logger.Info("Session opened",
		slog.String("session_id", opened.SessionID),
		slog.String("register_id", registerID),
		slog.String("opening_balance", opened.OpeningBalance.String()))
	return opened, nil
}

// GetSessionByID retrieves a session together with its movements.
func (s *cashSessionService) GetSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	session, err := s.cashRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	movements, err := s.cashRepo.FindMovementsBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load movements for session %s: %w", sessionID, err)
	}
	session.Movements = movements
	return session, nil
}

// GetCurrentSession retrieves the OPEN session of a register together with
// its movements.
func (s *cashSessionService) GetCurrentSession(ctx context.Context, registerID string) (*domain.CashSession, error) {
	session, err := s.cashRepo.FindOpenSessionByRegister(ctx, registerID)
	if err != nil {
		return nil, err
	}

	movements, err := s.cashRepo.FindMovementsBySession(ctx, session.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load movements for session %s: %w", session.SessionID, err)
	}
	session.Movements = movements
	return session, nil
}

// ListSessions retrieves a paginated list of sessions for a register.
func (s *cashSessionService) ListSessions(ctx context.Context, registerID string, params dto.ListSessionsParams) (*dto.ListSessionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	sessions, nextToken, err := s.cashRepo.ListSessionsByRegister(ctx, registerID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list sessions", slog.String("error", err.Error()), slog.String("register_id", registerID))
		return nil, fmt.Errorf("failed to retrieve sessions: %w", err)
	}

	responses := make([]dto.SessionResponse, len(sessions))
	for i := range sessions {
		responses[i] = dto.ToSessionResponse(&sessions[i])
	}
	return &dto.ListSessionsResponse{Sessions: responses, NextToken: nextToken}, nil
}

// RecordMovement records an entry or exit of money on an open session.
func (s *cashSessionService) RecordMovement(ctx context.Context, sessionID string, req dto.RecordMovementRequest, operatorUserID string) (*domain.CashMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Rejected before any write; the repository re-checks the session state
	// under its row lock.
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: movement amount must be positive", apperrors.ErrValidation)
	}
	if req.Type != domain.MovementIn && req.Type != domain.MovementOut {
		return nil, fmt.Errorf("%w: movement type must be IN or OUT", apperrors.ErrValidation)
	}
	if req.Category == "" {
		return nil, fmt.Errorf("%w: movement category is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	movement := domain.CashMovement{
		MovementID:    uuid.NewString(),
		SessionID:     sessionID,
		Type:          req.Type,
		Category:      req.Category,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        domain.MovementValid,
		Label:         req.Label,
		ReferenceID:   req.ReferenceID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorUserID,
		},
	}

	saved, err := s.cashRepo.SaveMovement(ctx, movement)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			logger.Warn("Movement rejected: session not open", slog.String("session_id", sessionID))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to save movement", slog.String("error", err.Error()), slog.String("session_id", sessionID))
		}
		return nil, err
	}

	logger.Info("Movement recorded",
		slog.String("movement_id", saved.MovementID),
		slog.String("session_id", sessionID),
		slog.String("type", string(saved.Type)),
		slog.String("amount", saved.Amount.String()))
	return saved, nil
}

// VoidMovement soft-cancels a movement. Only legal while the parent session
// is still open; the row is kept for the audit trail.
func (s *cashSessionService) VoidMovement(ctx context.Context, sessionID, movementID string, req dto.VoidRequest, operatorUserID string) (*domain.CashMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Reason == "" {
		return nil, fmt.Errorf("%w: void reason is required", apperrors.ErrValidation)
	}

	voided, err := s.cashRepo.VoidMovement(ctx, sessionID, movementID, operatorUserID, req.Reason)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			logger.Warn("Movement void rejected", slog.String("session_id", sessionID), slog.String("movement_id", movementID))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to void movement", slog.String("error", err.Error()), slog.String("movement_id", movementID))
		}
		return nil, err
	}

	logger.Info("Movement voided", slog.String("movement_id", movementID), slog.String("session_id", sessionID))
	return voided, nil
}

// CloseSession reconciles and closes an open session. The declared balance
// becomes the register's current balance; this handoff is the only place
// the register balance is ever written.
func (s *cashSessionService) CloseSession(ctx context.Context, sessionID string, req dto.CloseSessionRequest, closerUserID string) (*domain.CashSession, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.DeclaredBalance.IsNegative() {
		return nil, fmt.Errorf("%w: declared balance must not be negative", apperrors.ErrValidation)
	}

	closed, err := s.cashRepo.CloseSession(ctx, sessionID, closerUserID, req.DeclaredBalance, req.Comment)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			logger.Warn("Close rejected: session not open", slog.String("session_id", sessionID))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to close session", slog.String("error", err.Error()), slog.String("session_id", sessionID))
		}
		return nil, err
	}

	logger.Info("Session closed",
		slog.String("session_id", sessionID),
		slog.String("theoretical", closed.TheoreticalBalance.String()),
		slog.String("declared", req.DeclaredBalance.String()),
		slog.String("variance", closed.Variance.String()))
	return closed, nil
}

// VoidSession voids an open session that never saw money flow. A session
// with valid movements must be closed instead, preserving the audit trail.
func (s *cashSessionService) VoidSession(ctx context.Context, sessionID string, req dto.VoidRequest, operatorUserID string) (*domain.CashSession, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Reason == "" {
		return nil, fmt.Errorf("%w: void reason is required", apperrors.ErrValidation)
	}

	voided, err := s.cashRepo.VoidSession(ctx, sessionID, operatorUserID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrBusinessRule):
			logger.Warn("Void rejected: session has valid movements", slog.String("session_id", sessionID))
		case errors.Is(err, apperrors.ErrInvalidState):
			logger.Warn("Void rejected: session not open", slog.String("session_id", sessionID))
		case !errors.Is(err, apperrors.ErrNotFound):
			logger.Error("Failed to void session", slog.String("error", err.Error()), slog.String("session_id", sessionID))
		}
		return nil, err
	}

	logger.Info("Session voided", slog.String("session_id", sessionID))
	return voided, nil
}
