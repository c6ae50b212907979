package repository

import (
	"context"

	"github.com/yukikurage/priority-focus-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormManagerRepository is a GORM implementation of ManagerRepository
type GormManagerRepository struct {
	db *gorm.DB
}

// NewManagerRepository creates a new ManagerRepository
func NewManagerRepository(db *gorm.DB) ManagerRepository {
	return &GormManagerRepository{db: db}
}

// Create creates a new manager
func (r *GormManagerRepository) Create(ctx context.Context, manager *models.Manager) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(manager).Error
}

// FindByID finds a manager by ID
func (r *GormManagerRepository) FindByID(ctx context.Context, id uint64) (*models.Manager, error) {
	var manager models.Manager
	if err := r.db.WithContext(ctx).First(&manager, id).Error; err != nil {
		return nil, err
	}
	return &manager, nil
}

// FindByEmail finds a manager by email
func (r *GormManagerRepository) FindByEmail(ctx context.Context, email string) (*models.Manager, error) {
	var manager models.Manager
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&manager).Error; err != nil {
		return nil, err
	}
	return &manager, nil
}

// UpdateSettings replaces the settings blob
func (r *GormManagerRepository) UpdateSettings(ctx context.Context, id uint64, settings datatypes.JSONMap) (*models.Manager, error) {
	if settings == nil {
		settings = datatypes.JSONMap{}
	}

	result := r.db.WithContext(ctx).
		Model(&models.Manager{}).
		Where("id = ?", id).
		Update("settings", settings)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindByID(ctx, id)
}
