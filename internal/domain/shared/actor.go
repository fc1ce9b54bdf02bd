package shared

import (
	"context"

	"github.com/google/uuid"
)

// Actor identifies the authenticated user performing an operation.
// The HTTP layer stores it in the request context so that application
// services can authorize mutations without widening every signature.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == "ADMIN"
}

type actorContextKey struct{}

// WithActor returns a context carrying the acting user.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the acting user from the context.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(Actor)
	return actor, ok
}

// CheckOwnership authorizes a mutation of the given aggregate. Admins
// may touch any record in their tenant; other users only records they
// created. Records without attribution and calls without an actor in
// the context (internal jobs, event handlers) pass.
func CheckOwnership(ctx context.Context, root *TenantAggregateRoot) error {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.IsAdmin() || root.CreatedBy == nil {
		return nil
	}
	if !root.IsOwnedBy(actor.UserID) {
		return ErrForbidden
	}
	return nil
}
