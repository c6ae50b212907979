package repository

import (
	"context"
	"time"

	"github.com/yukikurage/priority-focus-api/internal/database"
	"github.com/yukikurage/priority-focus-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPriorityRepository is a GORM implementation of PriorityRepository
type GormPriorityRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPriorityRepository creates a new PriorityRepository
func NewPriorityRepository(db *gorm.DB) PriorityRepository {
	return &GormPriorityRepository{db: db, now: time.Now}
}

// Create inserts a priority at the end of the team member's order.
// Orders released by deletes are not handed out again.
func (r *GormPriorityRepository) Create(ctx context.Context, teamMemberID uint64, content string) (*models.Priority, error) {
	priority := &models.Priority{
		TeamMemberID: teamMemberID,
		Content:      content,
		Status:       models.PriorityStatusActive,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		next, err := claimPriorityOrder(tx, teamMemberID)
		if err != nil {
			return err
		}
		priority.DisplayOrder = next

		return tx.Omit(clause.Associations).Create(priority).Error
	})
	if err != nil {
		return nil, err
	}

	return priority, nil
}

// ListByTeamMember lists priorities, active first, then by display order
func (r *GormPriorityRepository) ListByTeamMember(ctx context.Context, teamMemberID uint64) ([]models.Priority, error) {
	priorities := []models.Priority{}
	if err := r.db.WithContext(ctx).
		Where("priorities.team_member_id = ?", teamMemberID).
		Scopes(database.PriorityOrder).
		Find(&priorities).Error; err != nil {
		return nil, err
	}
	return priorities, nil
}

// FindOwned finds a priority whose team member belongs to the manager
func (r *GormPriorityRepository) FindOwned(ctx context.Context, managerID, id uint64) (*models.Priority, error) {
	return findOwnedPriority(r.db.WithContext(ctx), managerID, id)
}

func findOwnedPriority(db *gorm.DB, managerID, id uint64) (*models.Priority, error) {
	var priority models.Priority
	if err := db.
		Scopes(database.PriorityOwnedByManager(managerID)).
		Where("priorities.id = ?", id).
		First(&priority).Error; err != nil {
		return nil, err
	}
	return &priority, nil
}

// Update applies the fields present in the patch. Writing a status also
// writes completed_at: now for completed, NULL for anything else.
func (r *GormPriorityRepository) Update(ctx context.Context, managerID, id uint64, patch PriorityPatch) (*models.Priority, error) {
	if patch.Empty() {
		return nil, ErrNoChanges
	}

	cols := make(map[string]interface{}, 4)
	if patch.Content != nil {
		cols["content"] = *patch.Content
	}
	if patch.DisplayOrder != nil {
		cols["display_order"] = *patch.DisplayOrder
	}
	if patch.Status != nil {
		cols["status"] = *patch.Status
		if *patch.Status == models.PriorityStatusCompleted {
			cols["completed_at"] = r.now()
		} else {
			cols["completed_at"] = nil
		}
	}

	result := r.db.WithContext(ctx).
		Model(&models.Priority{}).
		Scopes(database.PriorityOwnedByManager(managerID)).
		Where("priorities.id = ?", id).
		Updates(cols)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindOwned(ctx, managerID, id)
}

// Reorder rewrites display orders in one transaction, skipping ids outside the team member
func (r *GormPriorityRepository) Reorder(ctx context.Context, teamMemberID uint64, orderMap map[uint64]int) (*ReorderResult, error) {
	var result *ReorderResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = reorderRows(tx, &models.Priority{}, "team_member_id", teamMemberID, orderMap)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete hard deletes a priority and returns its prior contents
func (r *GormPriorityRepository) Delete(ctx context.Context, managerID, id uint64) (*models.Priority, error) {
	var deleted *models.Priority
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		priority, err := findOwnedPriority(tx, managerID, id)
		if err != nil {
			return err
		}

		if err := tx.Delete(&models.Priority{}, priority.ID).Error; err != nil {
			return err
		}

		deleted = priority
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// VerifyOwnership reports whether the priority belongs to the manager through its team member
func (r *GormPriorityRepository) VerifyOwnership(ctx context.Context, id, managerID uint64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Priority{}).
		Joins("JOIN team_members ON team_members.id = priorities.team_member_id").
		Where("priorities.id = ? AND team_members.manager_id = ?", id, managerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
