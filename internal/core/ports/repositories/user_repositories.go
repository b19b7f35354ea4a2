package repositories

import (
	"context"

	"github.com/ludotheca/ludotheca_backend/internal/core/domain"
)

// UserRepository defines persistence operations for operators.
type UserRepository interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the
	// username is taken.
	SaveUser(ctx context.Context, user domain.User) error

	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
