package repository

import (
	"context"

	"github.com/yukikurage/priority-focus-api/internal/database"
	"github.com/yukikurage/priority-focus-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTeamMemberRepository is a GORM implementation of TeamMemberRepository
type GormTeamMemberRepository struct {
	db *gorm.DB
}

// NewTeamMemberRepository creates a new TeamMemberRepository
func NewTeamMemberRepository(db *gorm.DB) TeamMemberRepository {
	return &GormTeamMemberRepository{db: db}
}

// Create inserts a team member at the end of the manager's order
func (r *GormTeamMemberRepository) Create(ctx context.Context, managerID uint64, name string) (*models.TeamMember, error) {
	member := &models.TeamMember{
		ManagerID: managerID,
		Name:      name,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		next, err := nextDisplayOrder(tx.Model(&models.TeamMember{}).Where("manager_id = ?", managerID))
		if err != nil {
			return err
		}
		member.DisplayOrder = next

		return tx.Omit(clause.Associations).Create(member).Error
	})
	if err != nil {
		return nil, err
	}

	return member, nil
}

// ListByManager lists team members ordered by display order
func (r *GormTeamMemberRepository) ListByManager(ctx context.Context, managerID uint64, includeArchived bool) ([]models.TeamMember, error) {
	members := []models.TeamMember{}
	if err := r.db.WithContext(ctx).
		Scopes(
			database.OwnedByManager(managerID),
			database.WithArchived(includeArchived),
			database.TeamMemberOrder,
		).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// FindOwned finds a team member owned by the manager
func (r *GormTeamMemberRepository) FindOwned(ctx context.Context, managerID, id uint64) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.WithContext(ctx).
		Scopes(database.OwnedByManager(managerID)).
		Where("team_members.id = ?", id).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// Update applies the fields present in the patch
func (r *GormTeamMemberRepository) Update(ctx context.Context, managerID, id uint64, patch TeamMemberPatch) (*models.TeamMember, error) {
	if patch.Empty() {
		return nil, ErrNoChanges
	}

	result := r.db.WithContext(ctx).
		Model(&models.TeamMember{}).
		Where("id = ? AND manager_id = ?", id, managerID).
		Updates(patch.columns())
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindOwned(ctx, managerID, id)
}

// Reorder rewrites display orders in one transaction, skipping ids the manager does not own
func (r *GormTeamMemberRepository) Reorder(ctx context.Context, managerID uint64, orderMap map[uint64]int) (*ReorderResult, error) {
	var result *ReorderResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = reorderRows(tx, &models.TeamMember{}, "manager_id", managerID, orderMap)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Archive soft deletes a team member. Its priorities are left as they are.
func (r *GormTeamMemberRepository) Archive(ctx context.Context, managerID, id uint64) (*models.TeamMember, error) {
	archived := true
	return r.Update(ctx, managerID, id, TeamMemberPatch{IsArchived: &archived})
}

// VerifyOwnership reports whether the team member belongs to the manager
func (r *GormTeamMemberRepository) VerifyOwnership(ctx context.Context, id, managerID uint64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TeamMember{}).
		Where("id = ? AND manager_id = ?", id, managerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
