package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ludotheca/ludotheca_backend/internal/apperrors"
	"github.com/ludotheca/ludotheca_backend/internal/core/domain"
	portsrepo "github.com/ludotheca/ludotheca_backend/internal/core/ports/repositories"
	portssvc "github.com/ludotheca/ludotheca_backend/internal/core/ports/services"
	"github.com/ludotheca/ludotheca_backend/internal/middleware"
)

// accountMappingService resolves the chart-of-accounts configuration for the
// ledger generator. Configured rows win; when none exists the built-in
// defaults apply, so posting never blocks on missing configuration.
type accountMappingService struct {
	mappingRepo portsrepo.AccountMappingRepository
}

// NewAccountMappingService creates a new account mapping service.
func NewAccountMappingService(mappingRepo portsrepo.AccountMappingRepository) portssvc.AccountMappingSvc {
	return &accountMappingService{mappingRepo: mappingRepo}
}

var _ portssvc.AccountMappingSvc = (*accountMappingService)(nil)

// Resolve returns the mapping for an event type, configured row first,
// built-in default otherwise.
func (s *accountMappingService) Resolve(ctx context.Context, eventType domain.EventType) (domain.AccountMapping, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	mapping, err := s.mappingRepo.FindMappingByEventType(ctx, eventType)
	if err == nil {
		return *mapping, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to look up account mapping", slog.String("error", err.Error()), slog.String("event_type", string(eventType)))
		return domain.AccountMapping{}, fmt.Errorf("failed to look up mapping for %s: %w", eventType, err)
	}

	def, ok := domain.DefaultMapping(eventType)
	if !ok {
		return domain.AccountMapping{}, fmt.Errorf("%w: no mapping for event type %s", apperrors.ErrValidation, eventType)
	}
	logger.Debug("No configured mapping, using default", slog.String("event_type", string(eventType)))
	return def, nil
}

// ResolveEncashmentAccount returns the counterpart account for a payment
// method, configured row first, built-in default otherwise.
func (s *accountMappingService) ResolveEncashmentAccount(ctx context.Context, method domain.PaymentMethod) (domain.EncashmentAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.mappingRepo.FindEncashmentAccount(ctx, method)
	if err == nil {
		return *account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to look up encashment account", slog.String("error", err.Error()), slog.String("method", string(method)))
		return domain.EncashmentAccount{}, fmt.Errorf("failed to look up account for %s: %w", method, err)
	}

	def, ok := domain.DefaultEncashmentAccount(method)
	if !ok {
		return domain.EncashmentAccount{}, fmt.Errorf("%w: no account for payment method %s", apperrors.ErrValidation, method)
	}
	logger.Debug("No configured encashment account, using default", slog.String("method", string(method)))
	return def, nil
}

// ListMappings returns the configured mappings only; defaults are implicit.
func (s *accountMappingService) ListMappings(ctx context.Context) ([]domain.AccountMapping, error) {
	return s.mappingRepo.ListMappings(ctx)
}

// ConfigureMapping creates or replaces the mapping for an event type.
func (s *accountMappingService) ConfigureMapping(ctx context.Context, mapping domain.AccountMapping, operatorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if mapping.EventType == "" || mapping.JournalCode == "" || mapping.ProductAccount == "" || mapping.PiecePrefix == "" {
		return fmt.Errorf("%w: event type, journal code, product account and piece prefix are required", apperrors.ErrValidation)
	}

	if err := s.mappingRepo.UpsertMapping(ctx, mapping); err != nil {
		logger.Error("Failed to upsert account mapping", slog.String("error", err.Error()), slog.String("event_type", string(mapping.EventType)))
		return err
	}

	logger.Info("Account mapping configured",
		slog.String("event_type", string(mapping.EventType)),
		slog.String("journal", mapping.JournalCode),
		slog.String("product_account", mapping.ProductAccount),
		slog.String("operator", operatorUserID))
	return nil
}

// ConfigureEncashmentAccount creates or replaces the account for a payment method.
func (s *accountMappingService) ConfigureEncashmentAccount(ctx context.Context, account domain.EncashmentAccount, operatorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if account.PaymentMethod == "" || account.AccountNumber == "" {
		return fmt.Errorf("%w: payment method and account number are required", apperrors.ErrValidation)
	}

	if err := s.mappingRepo.UpsertEncashmentAccount(ctx, account); err != nil {
		logger.Error("Failed to upsert encashment account", slog.String("error", err.Error()), slog.String("method", string(account.PaymentMethod)))
		return err
	}

	logger.Info("Encashment account configured",
		slog.String("method", string(account.PaymentMethod)),
		slog.String("account", account.AccountNumber),
		slog.String("operator", operatorUserID))
	return nil
}
