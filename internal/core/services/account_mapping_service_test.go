package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ludotheca/ludotheca_backend/internal/apperrors"
	"github.com/ludotheca/ludotheca_backend/internal/core/domain"
	portssvc "github.com/ludotheca/ludotheca_backend/internal/core/ports/services"
	"github.com/ludotheca/ludotheca_backend/internal/core/services"
)

// --- Mock AccountMappingRepository ---
type MockAccountMappingRepository struct {
	mock.Mock
}

func (m *MockAccountMappingRepository) FindMappingByEventType(ctx context.Context, eventType domain.EventType) (*domain.AccountMapping, error) {
	args := m.Called(ctx, eventType)
	var mapping *domain.AccountMapping
	if args.Get(0) != nil {
		mapping = args.Get(0).(*domain.AccountMapping)
	}
	return mapping, args.Error(1)
}

func (m *MockAccountMappingRepository) FindEncashmentAccount(ctx context.Context, method domain.PaymentMethod) (*domain.EncashmentAccount, error) {
	args := m.Called(ctx, method)
	var account *domain.EncashmentAccount
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.EncashmentAccount)
	}
	return account, args.Error(1)
}

func (m *MockAccountMappingRepository) ListMappings(ctx context.Context) ([]domain.AccountMapping, error) {
	args := m.Called(ctx)
	var mappings []domain.AccountMapping
	if args.Get(0) != nil {
		mappings = args.Get(0).([]domain.AccountMapping)
	}
	return mappings, args.Error(1)
}

func (m *MockAccountMappingRepository) UpsertMapping(ctx context.Context, mapping domain.AccountMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockAccountMappingRepository) UpsertEncashmentAccount(ctx context.Context, account domain.EncashmentAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Test Suite ---
type AccountMappingServiceTestSuite struct {
	suite.Suite
	mockMappingRepo *MockAccountMappingRepository
	service         portssvc.AccountMappingSvc
}

func (suite *AccountMappingServiceTestSuite) SetupTest() {
	suite.mockMappingRepo = new(MockAccountMappingRepository)
	suite.service = services.NewAccountMappingService(suite.mockMappingRepo)
}

// --- Resolve Tests ---
func (suite *AccountMappingServiceTestSuite) TestResolve_ConfiguredRowWins() {
	ctx := context.Background()
	configured := &domain.AccountMapping{
		EventType:      domain.EventMembershipPayment,
		JournalCode:    "CO",
		ProductAccount: "756100",
		PiecePrefix:    "COT",
	}

	suite.mockMappingRepo.On("FindMappingByEventType", ctx, domain.EventMembershipPayment).
		Return(configured, nil).Once()

	mapping, err := suite.service.Resolve(ctx, domain.EventMembershipPayment)

	suite.Require().NoError(err)
	suite.Equal("CO", mapping.JournalCode)
	suite.Equal("756100", mapping.ProductAccount)
	suite.Equal("COT", mapping.PiecePrefix)
	suite.mockMappingRepo.AssertExpectations(suite.T())
}

func (suite *AccountMappingServiceTestSuite) TestResolve_FallsBackToDefault() {
	ctx := context.Background()

	suite.mockMappingRepo.On("FindMappingByEventType", ctx, domain.EventInvoicePayment).
		Return(nil, apperrors.ErrNotFound).Once()

	mapping, err := suite.service.Resolve(ctx, domain.EventInvoicePayment)

	suite.Require().NoError(err)
	suite.Equal("VT", mapping.JournalCode)
	suite.Equal("706000", mapping.ProductAccount)
	suite.Equal("FAC", mapping.PiecePrefix)
}

func (suite *AccountMappingServiceTestSuite) TestResolve_RepositoryError() {
	ctx := context.Background()
	dbErr := errors.New("connection refused")

	suite.mockMappingRepo.On("FindMappingByEventType", ctx, domain.EventMembershipPayment).
		Return(nil, dbErr).Once()

	_, err := suite.service.Resolve(ctx, domain.EventMembershipPayment)

	suite.Require().Error(err)
	suite.ErrorIs(err, dbErr)
}

func (suite *AccountMappingServiceTestSuite) TestResolve_UnknownEventType() {
	ctx := context.Background()

	suite.mockMappingRepo.On("FindMappingByEventType", ctx, domain.EventType("DONATION")).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Resolve(ctx, domain.EventType("DONATION"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- ResolveEncashmentAccount Tests ---
func (suite *AccountMappingServiceTestSuite) TestResolveEncashmentAccount_ConfiguredRowWins() {
	ctx := context.Background()
	configured := &domain.EncashmentAccount{
		PaymentMethod: domain.MethodCheque,
		AccountNumber: "511250",
	}

	suite.mockMappingRepo.On("FindEncashmentAccount", ctx, domain.MethodCheque).
		Return(configured, nil).Once()

	account, err := suite.service.ResolveEncashmentAccount(ctx, domain.MethodCheque)

	suite.Require().NoError(err)
	suite.Equal("511250", account.AccountNumber)
}

func (suite *AccountMappingServiceTestSuite) TestResolveEncashmentAccount_FallsBackToDefault() {
	ctx := context.Background()

	suite.mockMappingRepo.On("FindEncashmentAccount", ctx, domain.MethodCash).
		Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.ResolveEncashmentAccount(ctx, domain.MethodCash)

	suite.Require().NoError(err)
	suite.Equal("531000", account.AccountNumber)
}

func (suite *AccountMappingServiceTestSuite) TestResolveEncashmentAccount_UnknownMethod() {
	ctx := context.Background()

	suite.mockMappingRepo.On("FindEncashmentAccount", ctx, domain.PaymentMethod("CRYPTO")).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ResolveEncashmentAccount(ctx, domain.PaymentMethod("CRYPTO"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- ConfigureMapping Tests ---
func (suite *AccountMappingServiceTestSuite) TestConfigureMapping_Success() {
	ctx := context.Background()
	operatorUserID := uuid.NewString()
	now := time.Now().UTC()
	mapping := domain.AccountMapping{
		EventType:      domain.EventMembershipPayment,
		JournalCode:    "CO",
		ProductAccount: "756100",
		PiecePrefix:    "COT",
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorUserID,
		},
	}

	suite.mockMappingRepo.On("UpsertMapping", ctx, mapping).Return(nil).Once()

	err := suite.service.ConfigureMapping(ctx, mapping, operatorUserID)

	suite.Require().NoError(err)
	suite.mockMappingRepo.AssertExpectations(suite.T())
}

func (suite *AccountMappingServiceTestSuite) TestConfigureMapping_MissingFields() {
	ctx := context.Background()
	mapping := domain.AccountMapping{
		EventType:   domain.EventMembershipPayment,
		JournalCode: "CO",
		// ProductAccount and PiecePrefix missing
	}

	err := suite.service.ConfigureMapping(ctx, mapping, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMappingRepo.AssertNotCalled(suite.T(), "UpsertMapping")
}

// --- ConfigureEncashmentAccount Tests ---
func (suite *AccountMappingServiceTestSuite) TestConfigureEncashmentAccount_Success() {
	ctx := context.Background()
	account := domain.EncashmentAccount{
		PaymentMethod: domain.MethodCard,
		AccountNumber: "511510",
	}

	suite.mockMappingRepo.On("UpsertEncashmentAccount", ctx, account).Return(nil).Once()

	err := suite.service.ConfigureEncashmentAccount(ctx, account, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockMappingRepo.AssertExpectations(suite.T())
}

func (suite *AccountMappingServiceTestSuite) TestConfigureEncashmentAccount_MissingAccount() {
	ctx := context.Background()
	account := domain.EncashmentAccount{PaymentMethod: domain.MethodCard}

	err := suite.service.ConfigureEncashmentAccount(ctx, account, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMappingRepo.AssertNotCalled(suite.T(), "UpsertEncashmentAccount")
}

// --- ListMappings Tests ---
func (suite *AccountMappingServiceTestSuite) TestListMappings_Passthrough() {
	ctx := context.Background()
	configured := []domain.AccountMapping{
		{EventType: domain.EventMembershipPayment, JournalCode: "CO", ProductAccount: "756100", PiecePrefix: "COT"},
	}

	suite.mockMappingRepo.On("ListMappings", ctx).Return(configured, nil).Once()

	mappings, err := suite.service.ListMappings(ctx)

	suite.Require().NoError(err)
	suite.Len(mappings, 1)
	suite.Equal(domain.EventMembershipPayment, mappings[0].EventType)
}

func TestAccountMappingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountMappingServiceTestSuite))
}
