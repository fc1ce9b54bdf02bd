package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/realestate"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOccupantRepository implements realestate.OccupantRepository using GORM
type GormOccupantRepository struct {
	db *gorm.DB
}

// NewGormOccupantRepository creates a new GormOccupantRepository
func NewGormOccupantRepository(db *gorm.DB) *GormOccupantRepository {
	return &GormOccupantRepository{db: db}
}

// FindByID finds an occupant by ID within a tenant
func (r *GormOccupantRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*realestate.Occupant, error) {
	var model models.OccupantModel
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

// FindByIDs finds multiple occupants by their IDs
func (r *GormOccupantRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]realestate.Occupant, error) {
	if len(ids) == 0 {
		return []realestate.Occupant{}, nil
	}

	var occupantModels []models.OccupantModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&occupantModels).Error; err != nil {
		return nil, err
	}
	return toDomainOccupants(occupantModels), nil
}

// FindAllForTenant finds all occupants for a tenant matching the filter
func (r *GormOccupantRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter realestate.OccupantFilter) ([]realestate.Occupant, error) {
	var occupantModels []models.OccupantModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OccupantModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&occupantModels).Error; err != nil {
		return nil, err
	}
	return toDomainOccupants(occupantModels), nil
}

// Save creates or updates an occupant
func (r *GormOccupantRepository) Save(ctx context.Context, o *realestate.Occupant) error {
	model := models.OccupantModelFromDomain(o)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForTenant deletes an occupant within a tenant
func (r *GormOccupantRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.OccupantModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts occupants for a tenant matching the filter
func (r *GormOccupantRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter realestate.OccupantFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.OccupantModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOccupantRepository) applyFilter(query *gorm.DB, filter realestate.OccupantFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("last_name ASC, first_name ASC")
	}

	return query
}

func (r *GormOccupantRepository) applyFilterWithoutPagination(query *gorm.DB, filter realestate.OccupantFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR document ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	return query
}

func toDomainOccupants(occupantModels []models.OccupantModel) []realestate.Occupant {
	occupants := make([]realestate.Occupant, len(occupantModels))
	for i, model := range occupantModels {
		occupants[i] = *model.ToDomain()
	}
	return occupants
}
