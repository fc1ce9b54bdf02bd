package identity

import (
	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
)

// UserCreatedEvent is raised when a new user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   Role      `json:"role"`
}

// EventType returns the event type name
func (e *UserCreatedEvent) EventType() string {
	return "UserCreated"
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(u *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("UserCreated", "User", u.ID, u.TenantID),
		UserID:          u.ID,
		Email:           u.Email,
		Role:            u.Role,
	}
}

// UserLockedEvent is raised when repeated failed logins lock an account
type UserLockedEvent struct {
	shared.BaseDomainEvent
	UserID         uuid.UUID `json:"user_id"`
	Email          string    `json:"email"`
	FailedAttempts int       `json:"failed_attempts"`
}

// EventType returns the event type name
func (e *UserLockedEvent) EventType() string {
	return "UserLocked"
}

// NewUserLockedEvent creates a new UserLockedEvent
func NewUserLockedEvent(u *User) *UserLockedEvent {
	return &UserLockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("UserLocked", "User", u.ID, u.TenantID),
		UserID:          u.ID,
		Email:           u.Email,
		FailedAttempts:  u.FailedAttempts,
	}
}
