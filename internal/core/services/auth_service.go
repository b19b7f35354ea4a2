package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ludotheca/ludotheca_backend/internal/apperrors"
	portsrepo "github.com/ludotheca/ludotheca_backend/internal/core/ports/repositories"
	portssvc "github.com/ludotheca/ludotheca_backend/internal/core/ports/services"
	"github.com/ludotheca/ludotheca_backend/internal/dto"
	"github.com/ludotheca/ludotheca_backend/internal/middleware"
	"github.com/ludotheca/ludotheca_backend/internal/utils"
	"github.com/ludotheca/ludotheca_backend/pkg/config"
)

type authService struct {
	userRepo portsrepo.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo portsrepo.UserRepository, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{userRepo: userRepo, cfg: cfg}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies credentials and returns a signed JWT. Unknown usernames and
// wrong passwords produce the same error so the response leaks nothing.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Login failed: unknown username", slog.String("username", req.Username))
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		logger.Error("Failed to look up user", slog.String("error", err.Error()))
		return nil, err
	}

	if !user.IsActive {
		logger.Warn("Login failed: user inactive", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Login failed: bad password", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to generate JWT", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{Token: token, UserID: user.UserID}, nil
}
