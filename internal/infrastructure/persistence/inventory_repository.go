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

// GormInventoryRepository implements realestate.InventoryRepository using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindByID finds an inventory item by ID within a tenant
func (r *GormInventoryRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*realestate.InventoryItem, error) {
	var model models.InventoryItemModel
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

// FindByProperty finds all inventory items of a property
func (r *GormInventoryRepository) FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]realestate.InventoryItem, error) {
	var itemModels []models.InventoryItemModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND property_id = ?", tenantID, propertyID).
		Order("name ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}
	return toDomainItems(itemModels), nil
}

// FindByRoom finds all inventory items assigned to a room
func (r *GormInventoryRepository) FindByRoom(ctx context.Context, tenantID, roomID uuid.UUID) ([]realestate.InventoryItem, error) {
	var itemModels []models.InventoryItemModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND room_id = ?", tenantID, roomID).
		Order("name ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}
	return toDomainItems(itemModels), nil
}

// Save creates or updates an inventory item
func (r *GormInventoryRepository) Save(ctx context.Context, item *realestate.InventoryItem) error {
	model := models.InventoryItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForTenant deletes an inventory item within a tenant
func (r *GormInventoryRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InventoryItemModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainItems(itemModels []models.InventoryItemModel) []realestate.InventoryItem {
	items := make([]realestate.InventoryItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items
}
