package models

import "time"

type TeamMember struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	ManagerID    uint64    `gorm:"not null;index" json:"manager_id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	IsArchived   bool      `gorm:"not null;default:false" json:"is_archived"`
	CreatedAt    time.Time `json:"created_at"`

	// Lowest display_order the next priority may take; only ever grows
	NextPriorityOrder int `gorm:"not null;default:0" json:"-"`

	// Relations
	Manager    Manager    `gorm:"foreignKey:ManagerID" json:"-"`
	Priorities []Priority `gorm:"foreignKey:TeamMemberID" json:"-"`
}
