package database

import (
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns []string
}

// Composite indexes backing the ordered list queries
var indexes = []index{
	{"team_members", "idx_team_members_manager_order", []string{"manager_id", "is_archived", "display_order"}},
	{"priorities", "idx_priorities_member_status_order", []string{"team_member_id", "status", "display_order"}},
}

// AddIndexes adds the list-ordering indexes that gorm tags cannot express
func AddIndexes(db *gorm.DB, log *slog.Logger) error {
	migrator := db.Migrator()

	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug("index already exists, skipping", "index", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, strings.Join(idx.columns, ", "))
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index", "index", idx.name, "table", idx.table, "columns", idx.columns)
	}

	return nil
}
