package repository

import (
	"context"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithCreator creates the project and its creator membership in one
// transaction. ErrNotFound when the creator does not exist.
func (r *GormProjectRepository) CreateWithCreator(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var creator models.User
		if err := first(tx, &creator, project.CreatorID); err != nil {
			return err
		}

		project.Members = []models.User{creator}
		return translateError(tx.Create(project).Error)
	})
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := first(query, &project, id); err != nil {
		return nil, err
	}
	return &project, nil
}

// Update applies the non-nil changes and returns the project with its members
func (r *GormProjectRepository) Update(ctx context.Context, id uint64, changes ProjectChanges) (*models.Project, error) {
	var project models.Project

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := first(tx, &project, id); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if changes.Name != nil {
			updates["name"] = *changes.Name
		}
		if changes.Description != nil {
			updates["description"] = *changes.Description
		}
		if len(updates) > 0 {
			if err := tx.Model(&project).Updates(updates).Error; err != nil {
				return translateError(err)
			}
		}

		return first(tx.Preload("Members"), &project, id)
	})
	if err != nil {
		return nil, err
	}

	return &project, nil
}

// Archive marks a project as archived
func (r *GormProjectRepository) Archive(ctx context.Context, id uint64) error {
	return setColumn(r.db.WithContext(ctx), &models.Project{}, id, "archived", true)
}

// AddMember adds a member to a project. Adding an existing member is a no-op.
func (r *GormProjectRepository) AddMember(ctx context.Context, projectID, userID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, user, err := r.loadPair(tx, projectID, userID)
		if err != nil {
			return err
		}
		return translateError(tx.Model(project).Association("Members").Append(user))
	})
}

// RemoveMember removes a member from a project. Removing a non-member is a no-op.
func (r *GormProjectRepository) RemoveMember(ctx context.Context, projectID, userID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, user, err := r.loadPair(tx, projectID, userID)
		if err != nil {
			return err
		}
		return translateError(tx.Model(project).Association("Members").Delete(user))
	})
}

// ListMembers lists all members of a project
func (r *GormProjectRepository) ListMembers(ctx context.Context, projectID uint64) ([]models.User, error) {
	db := r.db.WithContext(ctx)

	var project models.Project
	if err := first(db, &project, projectID); err != nil {
		return nil, err
	}

	var members []models.User
	if err := db.Model(&project).Order("users.id").Association("Members").Find(&members); err != nil {
		return nil, translateError(err)
	}
	return members, nil
}

func (r *GormProjectRepository) loadPair(tx *gorm.DB, projectID, userID uint64) (*models.Project, *models.User, error) {
	var project models.Project
	if err := first(tx, &project, projectID); err != nil {
		return nil, nil, err
	}

	var user models.User
	if err := first(tx, &user, userID); err != nil {
		return nil, nil, err
	}

	return &project, &user, nil
}
