package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/identity"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register_Success(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userRepo := new(MockUserRepository)

	userRepo.On("FindByEmail", ctx, tenantID, "maria@example.com").Return(nil, shared.ErrNotFound)
	userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

	svc := NewUserService(userRepo)

	resp, err := svc.Register(ctx, tenantID, RegisterUserRequest{
		Email:       "maria@example.com",
		Password:    "valid-password",
		DisplayName: "Maria",
	})

	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", resp.Email)
	assert.Equal(t, "USER", resp.Role)
	assert.Equal(t, "Maria", resp.DisplayName)

	userRepo.AssertExpectations(t)
}

func TestUserService_Register_AdminFlag(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userRepo := new(MockUserRepository)

	userRepo.On("FindByEmail", ctx, tenantID, "admin@example.com").Return(nil, shared.ErrNotFound)
	userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

	svc := NewUserService(userRepo)

	resp, err := svc.Register(ctx, tenantID, RegisterUserRequest{
		Email:    "admin@example.com",
		Password: "valid-password",
		Admin:    true,
	})

	require.NoError(t, err)
	assert.Equal(t, "ADMIN", resp.Role)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userRepo := new(MockUserRepository)

	existing := createTestUser(t, tenantID)
	userRepo.On("FindByEmail", ctx, tenantID, "juan@example.com").Return(existing, nil)

	svc := NewUserService(userRepo)

	_, err := svc.Register(ctx, tenantID, RegisterUserRequest{
		Email:    "juan@example.com",
		Password: "valid-password",
	})

	assertDomainCode(t, err, "ALREADY_EXISTS")
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(t, tenantID)
	userRepo.On("FindByIDForTenant", ctx, tenantID, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	svc := NewUserService(userRepo)

	err := svc.ChangePassword(ctx, tenantID, user.ID, ChangePasswordRequest{
		OldPassword: "s3cret-pass",
		NewPassword: "brand-new-pass",
	})

	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("brand-new-pass"))
}

func TestUserService_ChangePassword_WrongOldPassword(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(t, tenantID)
	userRepo.On("FindByIDForTenant", ctx, tenantID, user.ID).Return(user, nil)

	svc := NewUserService(userRepo)

	err := svc.ChangePassword(ctx, tenantID, user.ID, ChangePasswordRequest{
		OldPassword: "wrong-old-pass",
		NewPassword: "brand-new-pass",
	})

	assertDomainCode(t, err, "INVALID_PASSWORD")
}

func TestUserService_SetRole_Promote(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(t, tenantID)
	userRepo.On("FindByIDForTenant", ctx, tenantID, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	svc := NewUserService(userRepo)

	resp, err := svc.SetRole(ctx, tenantID, user.ID, SetRoleRequest{Role: "ADMIN"})

	require.NoError(t, err)
	assert.Equal(t, "ADMIN", resp.Role)
}

func TestUserService_SetRole_LastAdminCannotBeDemoted(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userRepo := new(MockUserRepository)

	admin, err := identity.NewAdmin(tenantID, "admin@example.com", "valid-password", "")
	require.NoError(t, err)

	userRepo.On("FindByIDForTenant", ctx, tenantID, admin.ID).Return(admin, nil)
	userRepo.On("CountForTenant", ctx, tenantID, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	svc := NewUserService(userRepo)

	_, err = svc.SetRole(ctx, tenantID, admin.ID, SetRoleRequest{Role: "USER"})

	assertDomainCode(t, err, "LAST_ADMIN")
}

func TestUserService_SetActive_Toggle(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(t, tenantID)
	userRepo.On("FindByIDForTenant", ctx, tenantID, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	svc := NewUserService(userRepo)

	resp, err := svc.SetActive(ctx, tenantID, user.ID, false)
	require.NoError(t, err)
	assert.Equal(t, string(identity.UserStatusDeactivated), resp.Status)

	resp, err = svc.SetActive(ctx, tenantID, user.ID, true)
	require.NoError(t, err)
	assert.Equal(t, string(identity.UserStatusActive), resp.Status)
}

func TestUserService_Delete_SelfDeleteRejected(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()
	userRepo := new(MockUserRepository)

	svc := NewUserService(userRepo)

	err := svc.Delete(ctx, tenantID, userID, userID)

	assertDomainCode(t, err, "SELF_DELETE")
}

func TestUserService_Delete_Success(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(t, tenantID)
	userRepo.On("FindByIDForTenant", ctx, tenantID, user.ID).Return(user, nil)
	userRepo.On("DeleteForTenant", ctx, tenantID, user.ID).Return(nil)

	svc := NewUserService(userRepo)

	err := svc.Delete(ctx, tenantID, uuid.New(), user.ID)

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}
