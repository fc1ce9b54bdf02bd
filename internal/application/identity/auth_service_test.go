package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/identity"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/infrastructure/auth"
	"github.com/poloatt/attadia-backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.User, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, u *identity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockUserRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func createTestUser(t *testing.T, tenantID uuid.UUID) *identity.User {
	t.Helper()
	user, err := identity.NewUser(tenantID, "juan@example.com", "s3cret-pass", "Juan")
	require.NoError(t, err)
	user.ClearDomainEvents()
	return user
}

func createAuthService(userRepo *MockUserRepository) *AuthService {
	jwtCfg := config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		RefreshSecret:          "test-refresh-secret-32-chars-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	}
	return NewAuthService(userRepo, auth.NewJWTService(jwtCfg), DefaultAuthServiceConfig(), zap.NewNop())
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, code, domainErr.Code)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(t, tenantID)
	userRepo.On("FindByEmail", ctx, tenantID, "juan@example.com").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	svc := createAuthService(userRepo)

	result, err := svc.Login(ctx, LoginRequest{
		TenantID: tenantID,
		Email:    "juan@example.com",
		Password: "s3cret-pass",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, "juan@example.com", result.User.Email)
	assert.Equal(t, tenantID, result.User.TenantID)
	assert.Equal(t, "USER", result.User.Role)
	assert.NotNil(t, user.LastLoginAt)

	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(t, tenantID)
	userRepo.On("FindByEmail", ctx, tenantID, "juan@example.com").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	svc := createAuthService(userRepo)

	result, err := svc.Login(ctx, LoginRequest{
		TenantID: tenantID,
		Email:    "juan@example.com",
		Password: "wrong-password",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assertDomainCode(t, err, "INVALID_CREDENTIALS")
	assert.Equal(t, 1, user.FailedAttempts)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userRepo := new(MockUserRepository)

	userRepo.On("FindByEmail", ctx, tenantID, "nobody@example.com").Return(nil, errors.New("not found"))

	svc := createAuthService(userRepo)

	_, err := svc.Login(ctx, LoginRequest{
		TenantID: tenantID,
		Email:    "nobody@example.com",
		Password: "whatever-pass",
	})

	assertDomainCode(t, err, "INVALID_CREDENTIALS")
}

func TestAuthService_Login_LocksAfterRepeatedFailures(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(t, tenantID)
	user.FailedAttempts = 4
	userRepo.On("FindByEmail", ctx, tenantID, "juan@example.com").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	svc := createAuthService(userRepo)

	_, err := svc.Login(ctx, LoginRequest{
		TenantID: tenantID,
		Email:    "juan@example.com",
		Password: "wrong-password",
	})

	assertDomainCode(t, err, "ACCOUNT_LOCKED")
	assert.Equal(t, identity.UserStatusLocked, user.Status)
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(t, tenantID)
	require.NoError(t, user.Deactivate())
	userRepo.On("FindByEmail", ctx, tenantID, "juan@example.com").Return(user, nil)

	svc := createAuthService(userRepo)

	_, err := svc.Login(ctx, LoginRequest{
		TenantID: tenantID,
		Email:    "juan@example.com",
		Password: "s3cret-pass",
	})

	assertDomainCode(t, err, "ACCOUNT_DEACTIVATED")
}

func TestAuthService_Refresh_Success(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(t, tenantID)
	userRepo.On("FindByEmail", ctx, tenantID, "juan@example.com").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	svc := createAuthService(userRepo)

	loginResult, err := svc.Login(ctx, LoginRequest{
		TenantID: tenantID,
		Email:    "juan@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	refreshResult, err := svc.Refresh(ctx, RefreshRequest{RefreshToken: loginResult.RefreshToken})

	require.NoError(t, err)
	assert.NotEmpty(t, refreshResult.AccessToken)
	assert.NotEqual(t, loginResult.RefreshToken, refreshResult.RefreshToken)
}

func TestAuthService_Refresh_PicksUpRoleChange(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(t, tenantID)
	userRepo.On("FindByEmail", ctx, tenantID, "juan@example.com").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	svc := createAuthService(userRepo)

	loginResult, err := svc.Login(ctx, LoginRequest{
		TenantID: tenantID,
		Email:    "juan@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	require.NoError(t, user.SetRole(identity.RoleAdmin))

	refreshResult, err := svc.Refresh(ctx, RefreshRequest{RefreshToken: loginResult.RefreshToken})
	require.NoError(t, err)

	claims, err := svc.jwtService.ValidateAccessToken(refreshResult.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc := createAuthService(userRepo)

	_, err := svc.Refresh(ctx, RefreshRequest{RefreshToken: "garbage"})

	assertDomainCode(t, err, "TOKEN_INVALID")
}

func TestAuthService_Refresh_DeactivatedUser(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(t, tenantID)
	userRepo.On("FindByEmail", ctx, tenantID, "juan@example.com").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	svc := createAuthService(userRepo)

	loginResult, err := svc.Login(ctx, LoginRequest{
		TenantID: tenantID,
		Email:    "juan@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	require.NoError(t, user.Deactivate())

	_, err = svc.Refresh(ctx, RefreshRequest{RefreshToken: loginResult.RefreshToken})

	assertDomainCode(t, err, "ACCOUNT_INACTIVE")
}
