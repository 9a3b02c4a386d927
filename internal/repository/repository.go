package repository

import (
	"context"
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user; ErrConflict when the username is taken
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// Archive marks a user as archived
	Archive(ctx context.Context, id uint64) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// CreateWithCreator creates a project with its creator as the first member
	CreateWithCreator(ctx context.Context, project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Project, error)

	// Update applies the given column values and returns the reloaded project
	Update(ctx context.Context, id uint64, changes ProjectChanges) (*models.Project, error)

	// Archive marks a project as archived
	Archive(ctx context.Context, id uint64) error

	// AddMember connects a user to the project's members
	AddMember(ctx context.Context, projectID, userID uint64) error

	// RemoveMember disconnects a user from the project's members
	RemoveMember(ctx context.Context, projectID, userID uint64) error

	// ListMembers lists all members of a project
	ListMembers(ctx context.Context, projectID uint64) ([]models.User, error)
}

// ProjectChanges holds the project fields to update; nil fields are left untouched.
type ProjectChanges struct {
	Name        *string
	Description *string
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateWithResponsible creates a task with one responsible user
	CreateWithResponsible(ctx context.Context, task *models.Task, responsibleID uint64) error

	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error)

	// AddResponsible connects a user to the task's responsible users
	AddResponsible(ctx context.Context, taskID, userID uint64) error

	// RemoveResponsible disconnects a user from the task's responsible users
	RemoveResponsible(ctx context.Context, taskID, userID uint64) error

	// ToggleStatus inverts the persisted status and returns the new value
	ToggleStatus(ctx context.Context, id uint64) (bool, error)

	// UpdateDeadline sets the task deadline
	UpdateDeadline(ctx context.Context, id uint64, deadline time.Time) error

	// UpdateProject moves the task to another existing project
	UpdateProject(ctx context.Context, id, projectID uint64) error

	// Archive marks a task as archived
	Archive(ctx context.Context, id uint64) error
}
