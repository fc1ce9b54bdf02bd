package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T) *User {
	t.Helper()
	u, err := NewUser(uuid.New(), "juan@example.com", "s3cret-pass", "Juan")
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()

	t.Run("valid user", func(t *testing.T) {
		u := createTestUser(t)
		assert.Equal(t, RoleUser, u.Role)
		assert.Equal(t, UserStatusActive, u.Status)
		assert.True(t, u.VerifyPassword("s3cret-pass"))
		assert.False(t, u.VerifyPassword("wrong"))
		assert.Len(t, u.GetDomainEvents(), 1)
	})

	t.Run("email is normalized", func(t *testing.T) {
		u, err := NewUser(tenantID, "  Ana@Example.COM ", "s3cret-pass", "")
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", u.Email)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := NewUser(tenantID, "not-an-email", "s3cret-pass", "")
		assert.Error(t, err)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := NewUser(tenantID, "a@b.com", "short", "")
		assert.Error(t, err)
	})

	t.Run("admin constructor", func(t *testing.T) {
		u, err := NewAdmin(tenantID, "admin@example.com", "s3cret-pass", "Admin")
		require.NoError(t, err)
		assert.True(t, u.IsAdmin())
	})
}

func TestUser_CanAccess(t *testing.T) {
	admin, err := NewAdmin(uuid.New(), "admin@example.com", "s3cret-pass", "")
	require.NoError(t, err)
	user := createTestUser(t)

	otherID := uuid.New()
	assert.True(t, admin.CanAccess(&otherID))
	assert.True(t, admin.CanAccess(nil))

	assert.False(t, user.CanAccess(&otherID))
	assert.False(t, user.CanAccess(nil))
	ownID := user.ID
	assert.True(t, user.CanAccess(&ownID))
}

func TestUser_PasswordChange(t *testing.T) {
	u := createTestUser(t)

	assert.Error(t, u.ChangePassword("wrong", "new-password1"))
	require.NoError(t, u.ChangePassword("s3cret-pass", "new-password1"))
	assert.True(t, u.VerifyPassword("new-password1"))
}

func TestUser_Lockout(t *testing.T) {
	u := createTestUser(t)

	for i := 0; i < 4; i++ {
		u.RecordFailedAttempt(time.Hour)
	}
	assert.Equal(t, UserStatusActive, u.Status)
	assert.True(t, u.CanLogin())

	u.RecordFailedAttempt(time.Hour)
	assert.Equal(t, UserStatusLocked, u.Status)
	assert.False(t, u.CanLogin())

	u.RecordLogin(time.Now())
	assert.Equal(t, UserStatusActive, u.Status)
	assert.Zero(t, u.FailedAttempts)
}

func TestUser_StatusTransitions(t *testing.T) {
	u := createTestUser(t)

	require.NoError(t, u.Deactivate())
	assert.False(t, u.CanLogin())
	assert.Error(t, u.Deactivate())

	require.NoError(t, u.Activate())
	assert.True(t, u.CanLogin())
	assert.Error(t, u.Activate())

	assert.Error(t, u.SetRole(Role("ROOT")))
	require.NoError(t, u.SetRole(RoleAdmin))
	assert.True(t, u.IsAdmin())
}
