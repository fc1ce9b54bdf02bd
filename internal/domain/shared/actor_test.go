package shared

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActorContextRoundTrip(t *testing.T) {
	actor := Actor{UserID: uuid.New(), Role: "USER"}
	ctx := WithActor(context.Background(), actor)

	got, ok := ActorFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, actor, got)

	_, ok = ActorFromContext(context.Background())
	assert.False(t, ok)
}

func TestCheckOwnership(t *testing.T) {
	owner := uuid.New()
	root := NewTenantAggregateRoot(uuid.New())
	root.SetCreatedBy(owner)

	t.Run("the creator may mutate the record", func(t *testing.T) {
		ctx := WithActor(context.Background(), Actor{UserID: owner, Role: "USER"})
		assert.NoError(t, CheckOwnership(ctx, &root))
	})

	t.Run("another user is forbidden", func(t *testing.T) {
		ctx := WithActor(context.Background(), Actor{UserID: uuid.New(), Role: "USER"})
		assert.ErrorIs(t, CheckOwnership(ctx, &root), ErrForbidden)
	})

	t.Run("admins may touch any record", func(t *testing.T) {
		ctx := WithActor(context.Background(), Actor{UserID: uuid.New(), Role: "ADMIN"})
		assert.NoError(t, CheckOwnership(ctx, &root))
	})

	t.Run("records without attribution pass", func(t *testing.T) {
		unowned := NewTenantAggregateRoot(uuid.New())
		ctx := WithActor(context.Background(), Actor{UserID: uuid.New(), Role: "USER"})
		assert.NoError(t, CheckOwnership(ctx, &unowned))
	})

	t.Run("calls without an actor pass", func(t *testing.T) {
		assert.NoError(t, CheckOwnership(context.Background(), &root))
	})
}
