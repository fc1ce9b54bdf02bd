package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/contract"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
	"github.com/poloatt/attadia-backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormContractRepository implements contract.Repository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// FindByID finds a contract by its ID
func (r *GormContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	var model models.ContractModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a contract by ID within a tenant
func (r *GormContractRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*contract.Contract, error) {
	var model models.ContractModel
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

// FindByNumber finds a contract by contract number within a tenant
func (r *GormContractRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, contractNumber string) (*contract.Contract, error) {
	var model models.ContractModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND contract_number = ?", tenantID, strings.ToUpper(contractNumber)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all contracts for a tenant matching the filter
func (r *GormContractRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter contract.Filter) ([]contract.Contract, error) {
	var contractModels []models.ContractModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ContractModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&contractModels).Error; err != nil {
		return nil, err
	}

	contracts := make([]contract.Contract, len(contractModels))
	for i, model := range contractModels {
		contracts[i] = *model.ToDomain()
	}
	return contracts, nil
}

// FindByProperty finds contracts attached to a property
func (r *GormContractRepository) FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]contract.Contract, error) {
	var contractModels []models.ContractModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND property_id = ?", tenantID, propertyID).
		Order("start_date DESC").
		Find(&contractModels).Error; err != nil {
		return nil, err
	}

	contracts := make([]contract.Contract, len(contractModels))
	for i, model := range contractModels {
		contracts[i] = *model.ToDomain()
	}
	return contracts, nil
}

// FindActiveOn finds contracts whose period contains the given date and
// that carry no terminal override
func (r *GormContractRepository) FindActiveOn(ctx context.Context, tenantID uuid.UUID, on time.Time) ([]contract.Contract, error) {
	day := valueobject.DateOnly(on)
	var contractModels []models.ContractModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND start_date <= ? AND end_date >= ?", tenantID, day, day).
		Where("override_status IS NULL").
		Order("start_date ASC").
		Find(&contractModels).Error; err != nil {
		return nil, err
	}

	contracts := make([]contract.Contract, len(contractModels))
	for i, model := range contractModels {
		contracts[i] = *model.ToDomain()
	}
	return contracts, nil
}

// Save creates or updates a contract
func (r *GormContractRepository) Save(ctx context.Context, c *contract.Contract) error {
	model := models.ContractModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a contract with optimistic locking (version check)
func (r *GormContractRepository) SaveWithLock(ctx context.Context, c *contract.Contract) error {
	model := models.ContractModelFromDomain(c)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", c.ID, c.Version-1).
		Select("*").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DeleteForTenant deletes a contract within a tenant
func (r *GormContractRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ContractModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts contracts for a tenant matching the filter
func (r *GormContractRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter contract.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ContractModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateContractNumber produces the next sequential contract number.
// Format: ALQ-YYYY-NNNNN (e.g., ALQ-2026-00001)
func (r *GormContractRepository) GenerateContractNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("ALQ-%d-", year)

	var lastNumber string
	err := r.db.WithContext(ctx).
		Model(&models.ContractModel{}).
		Where("tenant_id = ? AND contract_number LIKE ?", tenantID, prefix+"%").
		Order("contract_number DESC").
		Limit(1).
		Pluck("contract_number", &lastNumber).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if lastNumber != "" {
		parts := strings.Split(lastNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

func (r *GormContractRepository) applyFilter(query *gorm.DB, filter contract.Filter) *gorm.DB {
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
		query = query.Order("start_date DESC")
	}

	return query
}

func (r *GormContractRepository) applyFilterWithoutPagination(query *gorm.DB, filter contract.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("contract_number ILIKE ? OR remark ILIKE ?", searchPattern, searchPattern)
	}

	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.TenantRef != nil {
		query = query.Where("tenant_ids @> ?", fmt.Sprintf(`["%s"]`, filter.TenantRef.String()))
	}
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.IsMaintenance != nil {
		query = query.Where("is_maintenance = ?", *filter.IsMaintenance)
	}
	if filter.ActiveOn != nil {
		day := valueobject.DateOnly(*filter.ActiveOn)
		query = query.Where("start_date <= ? AND end_date >= ?", day, day)
	}
	if filter.StartFrom != nil {
		query = query.Where("start_date >= ?", *filter.StartFrom)
	}
	if filter.StartTo != nil {
		query = query.Where("start_date <= ?", *filter.StartTo)
	}

	// Natural statuses derive from dates at read time; overrides are stored.
	// The date comparisons mirror ResolveNaturalStatus: day granularity,
	// boundary days inclusive, and the maintenance flag winning over dates.
	if filter.Status != nil {
		today := valueobject.DateOnly(time.Now())
		switch *filter.Status {
		case contract.StatusPlaneado:
			query = query.Where("override_status IS NULL AND is_maintenance = false AND start_date > ?", today)
		case contract.StatusActivo:
			query = query.Where("override_status IS NULL AND is_maintenance = false AND start_date <= ? AND end_date >= ?", today, today)
		case contract.StatusMantenimiento:
			query = query.Where("override_status IS NULL AND is_maintenance = true")
		case contract.StatusFinalizado:
			query = query.Where("override_status = ? OR (override_status IS NULL AND is_maintenance = false AND end_date < ?)", contract.StatusFinalizado, today)
		default:
			query = query.Where("override_status = ?", *filter.Status)
		}
	}

	return query
}
