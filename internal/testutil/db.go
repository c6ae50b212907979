// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/priority-focus-api/internal/database"
	"github.com/yukikurage/priority-focus-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns a migrated in-memory SQLite database that is closed when the test ends.
// The pool is pinned to one connection so every statement sees the same memory database.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(database.Models()...))

	return db
}

// CreateManager inserts a manager with a placeholder password hash.
func CreateManager(t *testing.T, db *gorm.DB, email string) *models.Manager {
	t.Helper()

	manager := &models.Manager{
		Email:        email,
		PasswordHash: "hashed",
		Name:         email,
	}
	require.NoError(t, db.Create(manager).Error)
	return manager
}

// CreateTeamMember inserts a team member with an explicit display order.
func CreateTeamMember(t *testing.T, db *gorm.DB, managerID uint64, name string, order int) *models.TeamMember {
	t.Helper()

	member := &models.TeamMember{
		ManagerID:    managerID,
		Name:         name,
		DisplayOrder: order,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

// CreatePriority inserts an active priority with an explicit display order.
func CreatePriority(t *testing.T, db *gorm.DB, teamMemberID uint64, content string, order int) *models.Priority {
	t.Helper()

	priority := &models.Priority{
		TeamMemberID: teamMemberID,
		Content:      content,
		Status:       models.PriorityStatusActive,
		DisplayOrder: order,
	}
	require.NoError(t, db.Create(priority).Error)
	return priority
}
