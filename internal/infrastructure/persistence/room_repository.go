package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/realestate"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRoomRepository implements realestate.RoomRepository using GORM
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// FindByID finds a room by ID within a tenant
func (r *GormRoomRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*realestate.Room, error) {
	var model models.RoomModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProperty finds all rooms of a property
func (r *GormRoomRepository) FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]realestate.Room, error) {
	var roomModels []models.RoomModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND property_id = ?", tenantID, propertyID).
		Order("name ASC").
		Find(&roomModels).Error; err != nil {
		return nil, err
	}

	rooms := make([]realestate.Room, len(roomModels))
	for i, model := range roomModels {
		rooms[i] = *model.ToDomain()
	}
	return rooms, nil
}

// Save creates or updates a room
func (r *GormRoomRepository) Save(ctx context.Context, room *realestate.Room) error {
	model := models.RoomModelFromDomain(room)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForTenant deletes a room within a tenant
func (r *GormRoomRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RoomModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
