package services_test

import (
	"fmt"
	"testing"

	"bhansa/internal/apperrors"
	"bhansa/internal/models"
	"bhansa/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a testify mock of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func notFoundErr(email string) error {
	return fmt.Errorf("user %s: %w", email, apperrors.ErrNotFound)
}

func storedUser(role string) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	return &models.User{
		ID:       "u-1",
		Email:    "admin@bhansa.test",
		Password: string(hash),
		Role:     role,
	}
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	mockRepo.On("GetByEmail", "new@bhansa.test").Return(nil, notFoundErr("new@bhansa.test")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user := &models.User{Email: "new@bhansa.test", Password: "secret123"}
	require.NoError(t, service.Register(user))

	// Stored password must be a working bcrypt hash, not the plaintext.
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
	assert.Equal(t, models.RoleStaff, user.Role)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	mockRepo.On("GetByEmail", "admin@bhansa.test").Return(storedUser(models.RoleAdmin), nil).Once()

	err := service.Register(&models.User{Email: "admin@bhansa.test", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	mockRepo.On("GetByEmail", "admin@bhansa.test").Return(storedUser(models.RoleAdmin), nil).Once()

	token, err := service.Login("admin@bhansa.test", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims["user_id"])
	assert.Equal(t, "admin@bhansa.test", claims["email"])
	assert.Equal(t, models.RoleAdmin, claims["role"])
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	mockRepo.On("GetByEmail", "admin@bhansa.test").Return(storedUser(models.RoleAdmin), nil).Once()

	token, err := service.Login("admin@bhansa.test", "wrong")
	assert.Empty(t, token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	mockRepo.On("GetByEmail", "ghost@bhansa.test").Return(nil, notFoundErr("ghost@bhansa.test")).Once()

	token, err := service.Login("ghost@bhansa.test", "secret123")
	assert.Empty(t, token)
	// Same error as a wrong password, so the response does not reveal
	// whether the account exists.
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_LoginAdmin_RejectsStaff(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	mockRepo.On("GetByEmail", "admin@bhansa.test").Return(storedUser(models.RoleStaff), nil).Once()

	token, err := service.LoginAdmin("admin@bhansa.test", "secret123")
	assert.Empty(t, token, "no session token may be issued to a non-admin")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_LoginAdmin_AcceptsAdmin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	mockRepo.On("GetByEmail", "admin@bhansa.test").Return(storedUser(models.RoleAdmin), nil).Once()

	token, err := service.LoginAdmin("admin@bhansa.test", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAuthService_ResetPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	mockRepo.On("GetByEmail", "admin@bhansa.test").Return(storedUser(models.RoleAdmin), nil).Once()

	token, err := service.ResetPassword("admin@bhansa.test")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "password_reset", claims["purpose"])
}

func TestAuthService_ResetPassword_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	mockRepo.On("GetByEmail", "ghost@bhansa.test").Return(nil, notFoundErr("ghost@bhansa.test")).Once()

	token, err := service.ResetPassword("ghost@bhansa.test")
	assert.Empty(t, token)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	_, err := service.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	mockRepo := new(MockUserRepository)
	issuer := services.NewAuthService(mockRepo, "secret_a")
	verifier := services.NewAuthService(mockRepo, "secret_b")

	mockRepo.On("GetByEmail", "admin@bhansa.test").Return(storedUser(models.RoleAdmin), nil).Once()

	token, err := issuer.Login("admin@bhansa.test", "secret123")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
