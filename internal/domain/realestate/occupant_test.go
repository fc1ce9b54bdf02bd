package realestate

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOccupant(t *testing.T) {
	tenantID := uuid.New()

	t.Run("valid occupant starts pending", func(t *testing.T) {
		o, err := NewOccupant(tenantID, "Juan", "Pérez", "juan@example.com", "+54 11 5555-0000", "30123456")
		require.NoError(t, err)
		assert.Equal(t, OccupantStatusPending, o.Status)
		assert.Equal(t, "Juan Pérez", o.FullName())
		assert.Len(t, o.GetDomainEvents(), 1)
	})

	t.Run("names are trimmed", func(t *testing.T) {
		o, err := NewOccupant(tenantID, "  Ana ", " García ", "", "", "")
		require.NoError(t, err)
		assert.Equal(t, "Ana García", o.FullName())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := NewOccupant(tenantID, "  ", "Pérez", "", "", "")
		assert.Error(t, err)
	})

	t.Run("bad email rejected", func(t *testing.T) {
		_, err := NewOccupant(tenantID, "Juan", "Pérez", "not-an-email", "", "")
		assert.Error(t, err)
	})
}

func TestOccupant_StatusTransitions(t *testing.T) {
	o, err := NewOccupant(uuid.New(), "Juan", "Pérez", "", "", "")
	require.NoError(t, err)

	o.Activate()
	assert.Equal(t, OccupantStatusActive, o.Status)

	o.Deactivate()
	assert.Equal(t, OccupantStatusInactive, o.Status)
}

func TestInventoryItem(t *testing.T) {
	tenantID := uuid.New()
	propertyID := uuid.New()

	t.Run("valid item", func(t *testing.T) {
		item, err := NewInventoryItem(tenantID, propertyID, nil, "Heladera", 1, ConditionGood)
		require.NoError(t, err)
		assert.Equal(t, 1, item.Quantity)

		require.NoError(t, item.AdjustQuantity(2))
		assert.Equal(t, 2, item.Quantity)
		assert.Error(t, item.AdjustQuantity(0))

		require.NoError(t, item.Reassess(ConditionRegular))
		assert.Equal(t, ConditionRegular, item.Condition)
	})

	t.Run("requires property", func(t *testing.T) {
		_, err := NewInventoryItem(tenantID, uuid.Nil, nil, "Silla", 4, ConditionNew)
		assert.Error(t, err)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewInventoryItem(tenantID, propertyID, nil, "Silla", 0, ConditionNew)
		assert.Error(t, err)
	})
}

func TestRoom(t *testing.T) {
	tenantID := uuid.New()
	propertyID := uuid.New()

	room, err := NewRoom(tenantID, propertyID, "Dormitorio principal", RoomTypeBedroom)
	require.NoError(t, err)
	assert.Equal(t, propertyID, room.PropertyID)

	require.NoError(t, room.Rename("Suite"))
	assert.Equal(t, "Suite", room.Name)
	assert.Error(t, room.Rename(""))

	_, err = NewRoom(tenantID, uuid.Nil, "Cocina", RoomTypeKitchen)
	assert.Error(t, err)
}
