package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/finance"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
	"github.com/poloatt/attadia-backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCurrencyRepository implements finance.CurrencyRepository using GORM
type GormCurrencyRepository struct {
	db *gorm.DB
}

// NewGormCurrencyRepository creates a new GormCurrencyRepository
func NewGormCurrencyRepository(db *gorm.DB) *GormCurrencyRepository {
	return &GormCurrencyRepository{db: db}
}

// FindByID finds a currency by its ID
func (r *GormCurrencyRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.CurrencyInfo, error) {
	var model models.CurrencyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a currency by ID within a tenant
func (r *GormCurrencyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.CurrencyInfo, error) {
	var model models.CurrencyModel
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

// FindByCode finds a currency by ISO code within a tenant
func (r *GormCurrencyRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code valueobject.Currency) (*finance.CurrencyInfo, error) {
	var model models.CurrencyModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all currencies for a tenant
func (r *GormCurrencyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]finance.CurrencyInfo, error) {
	var currencyModels []models.CurrencyModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("code ASC").
		Find(&currencyModels).Error; err != nil {
		return nil, err
	}

	currencies := make([]finance.CurrencyInfo, len(currencyModels))
	for i, model := range currencyModels {
		currencies[i] = *model.ToDomain()
	}
	return currencies, nil
}

// Save creates or updates a currency
func (r *GormCurrencyRepository) Save(ctx context.Context, c *finance.CurrencyInfo) error {
	model := models.CurrencyModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForTenant deletes a currency within a tenant
func (r *GormCurrencyRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CurrencyModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
