package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ludotheca/ludotheca_backend/internal/apperrors"
	"github.com/ludotheca/ludotheca_backend/internal/core/domain"
	portssvc "github.com/ludotheca/ludotheca_backend/internal/core/ports/services"
	"github.com/ludotheca/ludotheca_backend/internal/core/services"
	"github.com/ludotheca/ludotheca_backend/internal/dto"
)

// --- Mock CashRepositoryFacade ---
type MockCashRepository struct {
	mock.Mock
}

func (m *MockCashRepository) SaveRegister(ctx context.Context, register domain.CashRegister) error {
	args := m.Called(ctx, register)
	return args.Error(0)
}

func (m *MockCashRepository) FindRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error) {
	args := m.Called(ctx, registerID)
	var register *domain.CashRegister
	if args.Get(0) != nil {
		register = args.Get(0).(*domain.CashRegister)
	}
	return register, args.Error(1)
}

func (m *MockCashRepository) ListRegisters(ctx context.Context) ([]domain.CashRegister, error) {
	args := m.Called(ctx)
	var registers []domain.CashRegister
	if args.Get(0) != nil {
		registers = args.Get(0).([]domain.CashRegister)
	}
	return registers, args.Error(1)
}

func (m *MockCashRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	args := m.Called(ctx, sessionID)
	var session *domain.CashSession
	if args.Get(0) != nil {
		session = args.Get(0).(*domain.CashSession)
	}
	return session, args.Error(1)
}

func (m *MockCashRepository) FindOpenSessionByRegister(ctx context.Context, registerID string) (*domain.CashSession, error) {
	args := m.Called(ctx, registerID)
	var session *domain.CashSession
	if args.Get(0) != nil {
		session = args.Get(0).(*domain.CashSession)
	}
	return session, args.Error(1)
}

func (m *MockCashRepository) ListSessionsByRegister(ctx context.Context, registerID string, limit int, nextToken *string) ([]domain.CashSession, *string, error) {
	args := m.Called(ctx, registerID, limit, nextToken)
	var sessions []domain.CashSession
	if args.Get(0) != nil {
		sessions = args.Get(0).([]domain.CashSession)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return sessions, token, args.Error(2)
}

func (m *MockCashRepository) FindMovementsBySession(ctx context.Context, sessionID string) ([]domain.CashMovement, error) {
	args := m.Called(ctx, sessionID)
	var movements []domain.CashMovement
	if args.Get(0) != nil {
		movements = args.Get(0).([]domain.CashMovement)
	}
	return movements, args.Error(1)
}

func (m *MockCashRepository) OpenSession(ctx context.Context, session domain.CashSession) (*domain.CashSession, error) {
	args := m.Called(ctx, session)
	var opened *domain.CashSession
	if args.Get(0) != nil {
		opened = args.Get(0).(*domain.CashSession)
	}
	return opened, args.Error(1)
}

func (m *MockCashRepository) SaveMovement(ctx context.Context, movement domain.CashMovement) (*domain.CashMovement, error) {
	args := m.Called(ctx, movement)
	var saved *domain.CashMovement
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.CashMovement)
	}
	return saved, args.Error(1)
}

func (m *MockCashRepository) VoidMovement(ctx context.Context, sessionID, movementID, voidedBy, reason string) (*domain.CashMovement, error) {
	args := m.Called(ctx, sessionID, movementID, voidedBy, reason)
	var voided *domain.CashMovement
	if args.Get(0) != nil {
		voided = args.Get(0).(*domain.CashMovement)
	}
	return voided, args.Error(1)
}

func (m *MockCashRepository) CloseSession(ctx context.Context, sessionID, closedBy string, declared decimal.Decimal, comment string) (*domain.CashSession, error) {
	args := m.Called(ctx, sessionID, closedBy, declared, comment)
	var closed *domain.CashSession
	if args.Get(0) != nil {
		closed = args.Get(0).(*domain.CashSession)
	}
	return closed, args.Error(1)
}

func (m *MockCashRepository) VoidSession(ctx context.Context, sessionID, voidedBy, reason string) (*domain.CashSession, error) {
	args := m.Called(ctx, sessionID, voidedBy, reason)
	var voided *domain.CashSession
	if args.Get(0) != nil {
		voided = args.Get(0).(*domain.CashSession)
	}
	return voided, args.Error(1)
}

// --- Test Suite ---
type CashSessionServiceTestSuite struct {
	suite.Suite
	mockCashRepo *MockCashRepository
	service      portssvc.CashSvcFacade
}

func (suite *CashSessionServiceTestSuite) SetupTest() {
	suite.mockCashRepo = new(MockCashRepository)
	suite.service = services.NewCashSessionService(suite.mockCashRepo)
}

// --- CreateRegister Tests ---
func (suite *CashSessionServiceTestSuite) TestCreateRegister_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateRegisterRequest{
		Code:           "MAIN",
		Name:           "Caisse principale",
		OpeningBalance: decimal.RequireFromString("150.00"),
	}

	suite.mockCashRepo.On("SaveRegister", ctx, mock.MatchedBy(func(r domain.CashRegister) bool {
		return r.Code == "MAIN" &&
			r.CurrentBalance.Equal(req.OpeningBalance) &&
			r.OpeningBalance.Equal(req.OpeningBalance) &&
			r.ResponsibleUserID == creatorUserID
	})).Return(nil).Once()

	register, err := suite.service.CreateRegister(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(register)
	suite.NotEmpty(register.RegisterID)
	suite.Equal("MAIN", register.Code)
	suite.mockCashRepo.AssertExpectations(suite.T())
}

func (suite *CashSessionServiceTestSuite) TestCreateRegister_NegativeOpeningBalance() {
	ctx := context.Background()
	req := dto.CreateRegisterRequest{
		Code:           "MAIN",
		Name:           "Caisse principale",
		OpeningBalance: decimal.RequireFromString("-1"),
	}

	register, err := suite.service.CreateRegister(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(register)
	suite.mockCashRepo.AssertNotCalled(suite.T(), "SaveRegister")
}

// --- OpenSession Tests ---
func (suite *CashSessionServiceTestSuite) TestOpenSession_Success() {
	ctx := context.Background()
	registerID := uuid.NewString()
	openerUserID := uuid.NewString()
	opening := decimal.RequireFromString("150.00")

	suite.mockCashRepo.On("OpenSession", ctx, mock.MatchedBy(func(s domain.CashSession) bool {
		return s.RegisterID == registerID && s.Status == domain.SessionOpen && s.OpenedBy == openerUserID
	})).Return(&domain.CashSession{
		SessionID:          uuid.NewString(),
		RegisterID:         registerID,
		OpenedBy:           openerUserID,
		Status:             domain.SessionOpen,
		OpeningBalance:     opening,
		TheoreticalBalance: opening,
	}, nil).Once()

	session, err := suite.service.OpenSession(ctx, registerID, dto.OpenSessionRequest{Comment: "matin"}, openerUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(session)
	suite.True(session.IsOpen())
	suite.True(session.OpeningBalance.Equal(opening))
	suite.True(session.TheoreticalBalance.Equal(opening))
	suite.mockCashRepo.AssertExpectations(suite.T())
}

func (suite *CashSessionServiceTestSuite) TestOpenSession_AlreadyOpen() {
	ctx := context.Background()
	registerID := uuid.NewString()

	suite.mockCashRepo.On("OpenSession", ctx, mock.AnythingOfType("domain.CashSession")).
		Return(nil, apperrors.ErrConflict).Once()

	session, err := suite.service.OpenSession(ctx, registerID, dto.OpenSessionRequest{}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(session)
	suite.mockCashRepo.AssertExpectations(suite.T())
}

// --- RecordMovement Tests ---
func (suite *CashSessionServiceTestSuite) TestRecordMovement_Success() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	operatorUserID := uuid.NewString()
	req := dto.RecordMovementRequest{
		Type:          domain.MovementIn,
		Amount:        decimal.RequireFromString("12.50"),
		Category:      "membership",
		PaymentMethod: domain.MethodCash,
		Label:         "Cotisation",
	}

	suite.mockCashRepo.On("SaveMovement", ctx, mock.MatchedBy(func(m domain.CashMovement) bool {
		return m.SessionID == sessionID &&
			m.Type == domain.MovementIn &&
			m.Status == domain.MovementValid &&
			m.Amount.Equal(req.Amount)
	})).Return(&domain.CashMovement{
		MovementID: uuid.NewString(),
		SessionID:  sessionID,
		Type:       domain.MovementIn,
		Amount:     req.Amount,
		Status:     domain.MovementValid,
	}, nil).Once()

	movement, err := suite.service.RecordMovement(ctx, sessionID, req, operatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(movement)
	suite.True(movement.IsValid())
	suite.mockCashRepo.AssertExpectations(suite.T())
}

func (suite *CashSessionServiceTestSuite) TestRecordMovement_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.RecordMovementRequest{
		Type:          domain.MovementIn,
		Amount:        decimal.Zero,
		Category:      "membership",
		PaymentMethod: domain.MethodCash,
	}

	movement, err := suite.service.RecordMovement(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(movement)
	suite.mockCashRepo.AssertNotCalled(suite.T(), "SaveMovement")
}

func (suite *CashSessionServiceTestSuite) TestRecordMovement_MissingCategory() {
	ctx := context.Background()
	req := dto.RecordMovementRequest{
		Type:          domain.MovementOut,
		Amount:        decimal.RequireFromString("5"),
		PaymentMethod: domain.MethodCash,
	}

	movement, err := suite.service.RecordMovement(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(movement)
}

func (suite *CashSessionServiceTestSuite) TestRecordMovement_SessionNotOpen() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	req := dto.RecordMovementRequest{
		Type:          domain.MovementIn,
		Amount:        decimal.RequireFromString("10"),
		Category:      "membership",
		PaymentMethod: domain.MethodCash,
	}

	suite.mockCashRepo.On("SaveMovement", ctx, mock.AnythingOfType("domain.CashMovement")).
		Return(nil, apperrors.ErrInvalidState).Once()

	movement, err := suite.service.RecordMovement(ctx, sessionID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.Nil(movement)
	suite.mockCashRepo.AssertExpectations(suite.T())
}

// --- VoidMovement Tests ---
func (suite *CashSessionServiceTestSuite) TestVoidMovement_MissingReason() {
	ctx := context.Background()

	movement, err := suite.service.VoidMovement(ctx, uuid.NewString(), uuid.NewString(), dto.VoidRequest{}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(movement)
	suite.mockCashRepo.AssertNotCalled(suite.T(), "VoidMovement")
}

func (suite *CashSessionServiceTestSuite) TestVoidMovement_Success() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	movementID := uuid.NewString()
	operatorUserID := uuid.NewString()

	suite.mockCashRepo.On("VoidMovement", ctx, sessionID, movementID, operatorUserID, "saisie en double").
		Return(&domain.CashMovement{
			MovementID: movementID,
			SessionID:  sessionID,
			Status:     domain.MovementVoided,
			VoidReason: "saisie en double",
		}, nil).Once()

	movement, err := suite.service.VoidMovement(ctx, sessionID, movementID, dto.VoidRequest{Reason: "saisie en double"}, operatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(movement)
	suite.Equal(domain.MovementVoided, movement.Status)
	suite.mockCashRepo.AssertExpectations(suite.T())
}

// --- CloseSession Tests ---
func (suite *CashSessionServiceTestSuite) TestCloseSession_Success() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	closerUserID := uuid.NewString()
	declared := decimal.RequireFromString("174.00")
	theoretical := decimal.RequireFromString("174.50")
	variance := decimal.RequireFromString("-0.50")
	now := time.Now().UTC()

	suite.mockCashRepo.On("CloseSession", ctx, sessionID, closerUserID, declared, "soir").
		Return(&domain.CashSession{
			SessionID:          sessionID,
			Status:             domain.SessionClosed,
			ClosedBy:           &closerUserID,
			TheoreticalBalance: theoretical,
			DeclaredBalance:    &declared,
			Variance:           &variance,
			ClosedAt:           &now,
		}, nil).Once()

	session, err := suite.service.CloseSession(ctx, sessionID, dto.CloseSessionRequest{DeclaredBalance: declared, Comment: "soir"}, closerUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(session)
	suite.Equal(domain.SessionClosed, session.Status)
	suite.True(session.Variance.Equal(variance))
	suite.mockCashRepo.AssertExpectations(suite.T())
}

func (suite *CashSessionServiceTestSuite) TestCloseSession_NegativeDeclared() {
	ctx := context.Background()

	session, err := suite.service.CloseSession(ctx, uuid.NewString(), dto.CloseSessionRequest{
		DeclaredBalance: decimal.RequireFromString("-10"),
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(session)
	suite.mockCashRepo.AssertNotCalled(suite.T(), "CloseSession")
}

func (suite *CashSessionServiceTestSuite) TestCloseSession_NotOpen() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	declared := decimal.RequireFromString("100")

	suite.mockCashRepo.On("CloseSession", ctx, sessionID, mock.AnythingOfType("string"), declared, "").
		Return(nil, apperrors.ErrInvalidState).Once()

	session, err := suite.service.CloseSession(ctx, sessionID, dto.CloseSessionRequest{DeclaredBalance: declared}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.Nil(session)
	suite.mockCashRepo.AssertExpectations(suite.T())
}

// --- VoidSession Tests ---
func (suite *CashSessionServiceTestSuite) TestVoidSession_HasValidMovements() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	operatorUserID := uuid.NewString()

	suite.mockCashRepo.On("VoidSession", ctx, sessionID, operatorUserID, "ouverte par erreur").
		Return(nil, apperrors.ErrBusinessRule).Once()

	session, err := suite.service.VoidSession(ctx, sessionID, dto.VoidRequest{Reason: "ouverte par erreur"}, operatorUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.Nil(session)
	suite.mockCashRepo.AssertExpectations(suite.T())
}

func (suite *CashSessionServiceTestSuite) TestVoidSession_Success() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	operatorUserID := uuid.NewString()

	suite.mockCashRepo.On("VoidSession", ctx, sessionID, operatorUserID, "ouverte par erreur").
		Return(&domain.CashSession{
			SessionID:  sessionID,
			Status:     domain.SessionVoided,
			VoidReason: "ouverte par erreur",
		}, nil).Once()

	session, err := suite.service.VoidSession(ctx, sessionID, dto.VoidRequest{Reason: "ouverte par erreur"}, operatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(session)
	suite.Equal(domain.SessionVoided, session.Status)
	suite.mockCashRepo.AssertExpectations(suite.T())
}

// --- GetSessionByID Tests ---
func (suite *CashSessionServiceTestSuite) TestGetSessionByID_LoadsMovements() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	movements := []domain.CashMovement{
		{MovementID: uuid.NewString(), SessionID: sessionID, Type: domain.MovementIn, Amount: decimal.RequireFromString("10"), Status: domain.MovementValid},
	}

	suite.mockCashRepo.On("FindSessionByID", ctx, sessionID).
		Return(&domain.CashSession{SessionID: sessionID, Status: domain.SessionOpen}, nil).Once()
	suite.mockCashRepo.On("FindMovementsBySession", ctx, sessionID).
		Return(movements, nil).Once()

	session, err := suite.service.GetSessionByID(ctx, sessionID)

	suite.Require().NoError(err)
	suite.Require().NotNil(session)
	suite.Len(session.Movements, 1)
	suite.mockCashRepo.AssertExpectations(suite.T())
}

// --- GetCurrentSession Tests ---
func (suite *CashSessionServiceTestSuite) TestGetCurrentSession_LoadsMovements() {
	ctx := context.Background()
	registerID := uuid.NewString()
	sessionID := uuid.NewString()
	movements := []domain.CashMovement{
		{MovementID: uuid.NewString(), SessionID: sessionID, Type: domain.MovementOut, Amount: decimal.RequireFromString("7.50"), Status: domain.MovementValid},
	}

	suite.mockCashRepo.On("FindOpenSessionByRegister", ctx, registerID).
		Return(&domain.CashSession{SessionID: sessionID, RegisterID: registerID, Status: domain.SessionOpen}, nil).Once()
	suite.mockCashRepo.On("FindMovementsBySession", ctx, sessionID).
		Return(movements, nil).Once()

	session, err := suite.service.GetCurrentSession(ctx, registerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(session)
	suite.True(session.IsOpen())
	suite.Len(session.Movements, 1)
	suite.mockCashRepo.AssertExpectations(suite.T())
}

func (suite *CashSessionServiceTestSuite) TestGetCurrentSession_NoneOpen() {
	ctx := context.Background()
	registerID := uuid.NewString()

	suite.mockCashRepo.On("FindOpenSessionByRegister", ctx, registerID).
		Return(nil, apperrors.ErrNotFound).Once()

	session, err := suite.service.GetCurrentSession(ctx, registerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(session)
	suite.mockCashRepo.AssertNotCalled(suite.T(), "FindMovementsBySession")
}

func TestCashSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CashSessionServiceTestSuite))
}
