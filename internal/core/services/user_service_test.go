package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/opentreso/treasury_app/internal/apperrors"
	"github.com/opentreso/treasury_app/internal/core/domain"
	portsrepo "github.com/opentreso/treasury_app/internal/core/ports/repositories"
	portssvc "github.com/opentreso/treasury_app/internal/core/ports/services"
	"github.com/opentreso/treasury_app/internal/core/services"
	"github.com/opentreso/treasury_app/internal/dto"
	"github.com/opentreso/treasury_app/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User, passwordHash string) error {
	args := m.Called(ctx, user, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*portsrepo.UserWithCredentials, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.UserWithCredentials), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string) error {
	args := m.Called(ctx, userID, deletedBy)
	return args.Error(0)
}

// --- Test Suite Setup ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
	actorID      string
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
	suite.actorID = uuid.NewString()
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestCreateUser_HashesPassword() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Name: "Sana", Email: "sana@example.com", Password: "s3cretpass"}

	var savedHash string
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User"), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { savedHash = args.Get(2).(string) }).
		Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal("sana@example.com", user.Email)
	suite.NotEqual("s3cretpass", savedHash)
	suite.True(utils.CheckPasswordHash("s3cretpass", savedHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Name: "Sana", Email: "sana@example.com", Password: "s3cretpass"}
	suite.mockUserRepo.On("SaveUser", ctx, mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateUser(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestVerifyCredentials_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct horse")
	suite.Require().NoError(err)
	record := &portsrepo.UserWithCredentials{
		User:         domain.User{UserID: uuid.NewString(), Email: "sana@example.com"},
		PasswordHash: hash,
	}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "sana@example.com").Return(record, nil).Once()

	user, err := suite.service.VerifyCredentials(ctx, "sana@example.com", "correct horse")

	suite.Require().NoError(err)
	suite.Equal(record.UserID, user.UserID)
}

func (suite *UserServiceTestSuite) TestVerifyCredentials_DoesNotLeakWhichFailed() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct horse")
	suite.Require().NoError(err)
	record := &portsrepo.UserWithCredentials{
		User:         domain.User{UserID: uuid.NewString(), Email: "sana@example.com"},
		PasswordHash: hash,
	}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "sana@example.com").Return(record, nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, badPasswordErr := suite.service.VerifyCredentials(ctx, "sana@example.com", "wrong")
	_, unknownUserErr := suite.service.VerifyCredentials(ctx, "nobody@example.com", "whatever")

	suite.Require().Error(badPasswordErr)
	suite.Require().Error(unknownUserErr)
	// Both failure modes must map to the same error so login responses are
	// indistinguishable.
	suite.ErrorIs(badPasswordErr, apperrors.ErrValidation)
	suite.ErrorIs(unknownUserErr, apperrors.ErrValidation)
	suite.Equal(badPasswordErr.Error(), unknownUserErr.Error())
}

func (suite *UserServiceTestSuite) TestUpdateUser_PatchesName() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Name: "Old Name", Email: "sana@example.com"}
	suite.mockUserRepo.On("FindUserByID", ctx, existing.UserID).Return(existing, nil).Once()

	var savedUser domain.User
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) { savedUser = args.Get(1).(domain.User) }).
		Return(nil).Once()

	newName := "New Name"
	updated, err := suite.service.UpdateUser(ctx, existing.UserID, dto.UpdateUserRequest{Name: &newName}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal("New Name", updated.Name)
	suite.Equal("New Name", savedUser.Name)
	suite.Equal(suite.actorID, savedUser.LastUpdatedBy)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_SoftDelete() {
	ctx := context.Background()
	userID := uuid.NewString()
	suite.mockUserRepo.On("MarkUserDeleted", ctx, userID, suite.actorID).Return(nil).Once()

	err := suite.service.DeleteUser(ctx, userID, suite.actorID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
