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

// GormPropertyRepository implements realestate.PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByID finds a property by ID within a tenant
func (r *GormPropertyRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*realestate.Property, error) {
	var model models.PropertyModel
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

// FindAllForTenant finds all properties for a tenant matching the filter
func (r *GormPropertyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter realestate.PropertyFilter) ([]realestate.Property, error) {
	var propertyModels []models.PropertyModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.PropertyModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&propertyModels).Error; err != nil {
		return nil, err
	}

	properties := make([]realestate.Property, len(propertyModels))
	for i, model := range propertyModels {
		properties[i] = *model.ToDomain()
	}
	return properties, nil
}

// Save creates or updates a property
func (r *GormPropertyRepository) Save(ctx context.Context, p *realestate.Property) error {
	model := models.PropertyModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForTenant deletes a property within a tenant
func (r *GormPropertyRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PropertyModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts properties for a tenant matching the filter
func (r *GormPropertyRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter realestate.PropertyFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PropertyModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPropertyRepository) applyFilter(query *gorm.DB, filter realestate.PropertyFilter) *gorm.DB {
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
		query = query.Order("alias ASC")
	}

	return query
}

func (r *GormPropertyRepository) applyFilterWithoutPagination(query *gorm.DB, filter realestate.PropertyFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("alias ILIKE ? OR street ILIKE ? OR city ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.City != nil {
		query = query.Where("city = ?", *filter.City)
	}

	return query
}
