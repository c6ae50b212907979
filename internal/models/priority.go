package models

import "time"

type PriorityStatus string

// Active sorts before completed when ordering by status.
const (
	PriorityStatusActive    PriorityStatus = "active"
	PriorityStatusCompleted PriorityStatus = "completed"
)

// Valid reports whether s is a known status.
func (s PriorityStatus) Valid() bool {
	return s == PriorityStatusActive || s == PriorityStatusCompleted
}

type Priority struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	TeamMemberID uint64         `gorm:"not null;index" json:"team_member_id"`
	Content      string         `gorm:"type:text;not null" json:"content"`
	Status       PriorityStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	DisplayOrder int            `gorm:"not null;default:0" json:"display_order"`
	CompletedAt  *time.Time     `json:"completed_at"`
	CreatedAt    time.Time      `json:"created_at"`

	// Relations
	TeamMember TeamMember `gorm:"foreignKey:TeamMemberID" json:"-"`
}
