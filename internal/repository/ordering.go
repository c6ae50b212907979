package repository

import (
	"github.com/yukikurage/priority-focus-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// nextDisplayOrder returns max(display_order)+1 over the scoped rows, or 0 when there are none.
func nextDisplayOrder(scoped *gorm.DB) (int, error) {
	var next int
	if err := scoped.Select("COALESCE(MAX(display_order), -1) + 1").Scan(&next).Error; err != nil {
		return 0, err
	}
	return next, nil
}

// claimPriorityOrder reserves the display order for a new priority of the team member.
// The result is above every current row and above anything handed out before, so an
// order freed by a delete is never given out again. It must run inside a transaction.
func claimPriorityOrder(tx *gorm.DB, teamMemberID uint64) (int, error) {
	var floors []int
	if err := tx.Model(&models.TeamMember{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", teamMemberID).
		Pluck("next_priority_order", &floors).Error; err != nil {
		return 0, err
	}

	next, err := nextDisplayOrder(tx.Model(&models.Priority{}).Where("team_member_id = ?", teamMemberID))
	if err != nil {
		return 0, err
	}
	if len(floors) > 0 && floors[0] > next {
		next = floors[0]
	}

	if err := tx.Model(&models.TeamMember{}).
		Where("id = ?", teamMemberID).
		Update("next_priority_order", next+1).Error; err != nil {
		return 0, err
	}
	return next, nil
}

// reorderRows applies every (id, order) pair whose row has ownerColumn = ownerID.
// It must run inside a transaction; the first storage error aborts the batch.
func reorderRows(tx *gorm.DB, model interface{}, ownerColumn string, ownerID uint64, orderMap map[uint64]int) (*ReorderResult, error) {
	result := &ReorderResult{
		Updated: make([]uint64, 0, len(orderMap)),
		Skipped: []uint64{},
	}

	for _, id := range sortedIDs(orderMap) {
		res := tx.Model(model).
			Where("id = ?", id).
			Where(ownerColumn+" = ?", ownerID).
			Update("display_order", orderMap[id])
		if res.Error != nil {
			return nil, res.Error
		}

		if res.RowsAffected == 0 {
			result.Skipped = append(result.Skipped, id)
		} else {
			result.Updated = append(result.Updated, id)
		}
	}

	return result, nil
}
