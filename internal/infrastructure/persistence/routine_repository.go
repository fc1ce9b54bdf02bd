package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/planning"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRoutineRepository implements planning.RoutineRepository using GORM
type GormRoutineRepository struct {
	db *gorm.DB
}

// NewGormRoutineRepository creates a new GormRoutineRepository
func NewGormRoutineRepository(db *gorm.DB) *GormRoutineRepository {
	return &GormRoutineRepository{db: db}
}

// FindByID finds a routine by ID within a tenant
func (r *GormRoutineRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*planning.Routine, error) {
	var model models.RoutineModel
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

// FindByUserAndDate finds the routine a user tracked for a calendar day
func (r *GormRoutineRepository) FindByUserAndDate(ctx context.Context, tenantID, userID uuid.UUID, date time.Time) (*planning.Routine, error) {
	var model models.RoutineModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ? AND date = ?", tenantID, userID, dateOnly(date)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserRange finds a user's routines between two dates inclusive
func (r *GormRoutineRepository) FindByUserRange(ctx context.Context, tenantID, userID uuid.UUID, from, to time.Time) ([]planning.Routine, error) {
	var routineModels []models.RoutineModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ? AND date >= ? AND date <= ?",
			tenantID, userID, dateOnly(from), dateOnly(to)).
		Order("date ASC").
		Find(&routineModels).Error; err != nil {
		return nil, err
	}

	routines := make([]planning.Routine, len(routineModels))
	for i, model := range routineModels {
		routines[i] = *model.ToDomain()
	}
	return routines, nil
}

// Save creates or updates a routine
func (r *GormRoutineRepository) Save(ctx context.Context, routine *planning.Routine) error {
	model := models.RoutineModelFromDomain(routine)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForTenant deletes a routine within a tenant
func (r *GormRoutineRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RoutineModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// dateOnly truncates a timestamp to its calendar day so comparisons
// against the date column ignore the time of day
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
