package models

import (
	"time"

	"gorm.io/datatypes"
)

type Manager struct {
	ID           uint64            `gorm:"primarykey" json:"id"`
	Email        string            `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string            `gorm:"type:varchar(255);not null" json:"-"`
	Name         string            `gorm:"type:varchar(255);not null" json:"name"`
	Settings     datatypes.JSONMap `json:"settings"`
	CreatedAt    time.Time         `json:"created_at"`

	// Relations
	TeamMembers []TeamMember `gorm:"foreignKey:ManagerID" json:"-"`
}
