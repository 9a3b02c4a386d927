package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns string
}

// lookupIndexes covers foreign keys and the reverse side of the join tables,
// whose primary keys only serve lookups starting from the project or task.
var lookupIndexes = []index{
	{"projects", "idx_projects_creator_id", "creator_id"},
	{"tasks", "idx_tasks_project_id", "project_id"},
	{"project_members", "idx_project_members_user_id", "user_id"},
	{"task_responsibles", "idx_task_responsibles_user_id", "user_id"},
}

// AddIndexes creates the lookup indexes that are not already present.
func AddIndexes(db *gorm.DB, log *logrus.Logger) error {
	migrator := db.Migrator()

	for _, idx := range lookupIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.WithField("index", idx.name).Debug("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.WithFields(logrus.Fields{
			"index":   idx.name,
			"table":   idx.table,
			"columns": idx.columns,
		}).Info("Created index")
	}

	return nil
}
