package database

import (
	"gorm.io/gorm"
)

// OwnedByManager restricts team member queries to one manager
func OwnedByManager(managerID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("team_members.manager_id = ?", managerID)
	}
}

// WithArchived drops archived team members unless includeArchived is set
func WithArchived(includeArchived bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if includeArchived {
			return db
		}
		return db.Where("team_members.is_archived = ?", false)
	}
}

// TeamMemberOrder sorts by display order, ties broken by insertion order
func TeamMemberOrder(db *gorm.DB) *gorm.DB {
	return db.Order("team_members.display_order ASC").Order("team_members.id ASC")
}

// PriorityOrder puts active before completed, then display order, then insertion order
func PriorityOrder(db *gorm.DB) *gorm.DB {
	return db.Order("priorities.status ASC").
		Order("priorities.display_order ASC").
		Order("priorities.id ASC")
}

// PriorityOwnedByManager walks priority -> team member -> manager
func PriorityOwnedByManager(managerID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		owned := db.Session(&gorm.Session{NewDB: true}).
			Table("team_members").
			Select("id").
			Where("manager_id = ?", managerID)
		return db.Where("priorities.team_member_id IN (?)", owned)
	}
}
