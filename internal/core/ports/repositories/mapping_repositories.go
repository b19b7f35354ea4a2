package repositories

import (
	"context"

	"github.com/ludotheca/ludotheca_backend/internal/core/domain"
)

// AccountMappingRepository defines persistence for the configurable
// account-mapping table consumed by the ledger generator. Lookups return
// apperrors.ErrNotFound when no row exists; the resolver falls back to the
// built-in defaults in that case.
type AccountMappingRepository interface {
	// FindMappingByEventType retrieves the configured mapping for an event type.
	FindMappingByEventType(ctx context.Context, eventType domain.EventType) (*domain.AccountMapping, error)

	// FindEncashmentAccount retrieves the configured account for a payment method.
	FindEncashmentAccount(ctx context.Context, method domain.PaymentMethod) (*domain.EncashmentAccount, error)

	// ListMappings retrieves all configured mappings.
	ListMappings(ctx context.Context) ([]domain.AccountMapping, error)

	// UpsertMapping creates or replaces the mapping for its event type.
	UpsertMapping(ctx context.Context, mapping domain.AccountMapping) error

	// UpsertEncashmentAccount creates or replaces the account for its payment method.
	UpsertEncashmentAccount(ctx context.Context, account domain.EncashmentAccount) error
}
