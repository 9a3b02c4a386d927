package repository

import (
	"context"
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// CreateWithResponsible creates a task and connects its first responsible user
// in one transaction. ErrNotFound when the project or the user does not exist.
func (r *GormTaskRepository) CreateWithResponsible(ctx context.Context, task *models.Task, responsibleID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := first(tx, &project, task.ProjectID); err != nil {
			return err
		}

		var responsible models.User
		if err := first(tx, &responsible, responsibleID); err != nil {
			return err
		}

		task.Responsible = []models.User{responsible}
		return translateError(tx.Create(task).Error)
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db.WithContext(ctx)

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := first(query, &task, id); err != nil {
		return nil, err
	}

	return &task, nil
}

// AddResponsible assigns a user to a task. Assigning twice is a no-op.
func (r *GormTaskRepository) AddResponsible(ctx context.Context, taskID, userID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, user, err := r.loadPair(tx, taskID, userID)
		if err != nil {
			return err
		}
		return translateError(tx.Model(task).Association("Responsible").Append(user))
	})
}

// RemoveResponsible removes a user assignment from a task. Removing a user
// who is not assigned is a no-op.
func (r *GormTaskRepository) RemoveResponsible(ctx context.Context, taskID, userID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, user, err := r.loadPair(tx, taskID, userID)
		if err != nil {
			return err
		}
		return translateError(tx.Model(task).Association("Responsible").Delete(user))
	})
}

// ToggleStatus flips the status in a single statement so concurrent toggles
// never read a stale value.
func (r *GormTaskRepository) ToggleStatus(ctx context.Context, id uint64) (bool, error) {
	var task models.Task

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := setColumn(tx, &models.Task{}, id, "status", gorm.Expr("NOT status")); err != nil {
			return err
		}
		return first(tx.Select("id", "status"), &task, id)
	})
	if err != nil {
		return false, err
	}

	return task.Status, nil
}

// UpdateDeadline sets the task deadline
func (r *GormTaskRepository) UpdateDeadline(ctx context.Context, id uint64, deadline time.Time) error {
	return setColumn(r.db.WithContext(ctx), &models.Task{}, id, "deadline", deadline)
}

// UpdateProject moves a task to another project. ErrNotFound when either the
// task or the target project does not exist.
func (r *GormTaskRepository) UpdateProject(ctx context.Context, id, projectID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := first(tx, &project, projectID); err != nil {
			return err
		}
		return setColumn(tx, &models.Task{}, id, "project_id", projectID)
	})
}

// Archive marks a task as archived
func (r *GormTaskRepository) Archive(ctx context.Context, id uint64) error {
	return setColumn(r.db.WithContext(ctx), &models.Task{}, id, "archived", true)
}

func (r *GormTaskRepository) loadPair(tx *gorm.DB, taskID, userID uint64) (*models.Task, *models.User, error) {
	var task models.Task
	if err := first(tx, &task, taskID); err != nil {
		return nil, nil, err
	}

	var user models.User
	if err := first(tx, &user, userID); err != nil {
		return nil, nil, err
	}

	return &task, &user, nil
}
