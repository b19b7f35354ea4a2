package services

import (
	"context"

	"github.com/ludotheca/ludotheca_backend/internal/core/domain"
	"github.com/ludotheca/ludotheca_backend/internal/dto"
)

// UserSvcFacade defines operations for managing operators.
type UserSvcFacade interface {
	// CreateUser creates a new operator with a bcrypt-hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// GetUserByID retrieves an operator.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// AuthSvcFacade authenticates operators and issues tokens.
type AuthSvcFacade interface {
	// Login verifies credentials and returns a signed JWT.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
