package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/ludotheca/ludotheca_backend/internal/apperrors"
	"github.com/ludotheca/ludotheca_backend/internal/core/domain"
	portssvc "github.com/ludotheca/ludotheca_backend/internal/core/ports/services"
	"github.com/ludotheca/ludotheca_backend/internal/core/services"
	"github.com/ludotheca/ludotheca_backend/internal/dto"
	"github.com/ludotheca/ludotheca_backend/internal/utils"
	"github.com/ludotheca/ludotheca_backend/pkg/config"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	cfg := &config.Config{
		JWTSecret:         "test-secret-for-auth-service-tests",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "ludotheca-backend-test",
	}
	suite.service = services.NewAuthService(suite.mockUserRepo, cfg)
}

func (suite *AuthServiceTestSuite) activeUser(password string) *domain.User {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.User{
		UserID:       uuid.NewString(),
		Name:         "Marie Durand",
		Username:     "mdurand",
		PasswordHash: hash,
		IsActive:     true,
	}
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	user := suite.activeUser("correct-horse-battery")

	suite.mockUserRepo.On("FindUserByUsername", ctx, "mdurand").
		Return(user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "mdurand", Password: "correct-horse-battery"})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal(user.UserID, resp.UserID)
	suite.NotEmpty(resp.Token)

	// The issued token must validate against the same secret.
	claims, err := utils.ParseAndValidateJWT(resp.Token, "test-secret-for-auth-service-tests")
	suite.Require().NoError(err)
	suite.Equal(user.UserID, claims.Subject)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	user := suite.activeUser("correct-horse-battery")

	suite.mockUserRepo.On("FindUserByUsername", ctx, "mdurand").
		Return(user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "mdurand", Password: "wrong-password"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(resp)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownUsername() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "nobody").
		Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "whatever"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(resp)
}

func (suite *AuthServiceTestSuite) TestLogin_InactiveUser() {
	ctx := context.Background()
	user := suite.activeUser("correct-horse-battery")
	user.IsActive = false

	suite.mockUserRepo.On("FindUserByUsername", ctx, "mdurand").
		Return(user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "mdurand", Password: "correct-horse-battery"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(resp)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
