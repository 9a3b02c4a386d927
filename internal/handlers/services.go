package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// UserService is the user behaviour the handlers depend on
type UserService interface {
	Register(ctx context.Context, input services.RegisterInput) (string, error)
	Authenticate(ctx context.Context, username, password string) (string, error)
	Archive(ctx context.Context, id uint64) error
}

// ProjectService is the project behaviour the handlers depend on
type ProjectService interface {
	Create(ctx context.Context, input services.CreateProjectInput) (*models.Project, error)
	Update(ctx context.Context, input services.UpdateProjectInput) (*models.Project, error)
	Archive(ctx context.Context, id uint64) error
	AddMember(ctx context.Context, projectID, userID uint64) error
	RemoveMember(ctx context.Context, projectID, userID uint64) error
}

// TaskService is the task behaviour the handlers depend on
type TaskService interface {
	Create(ctx context.Context, input services.CreateTaskInput) (*models.Task, error)
	AddResponsible(ctx context.Context, taskID, userID uint64) error
	RemoveResponsible(ctx context.Context, taskID, userID uint64) error
	ToggleStatus(ctx context.Context, id uint64) (bool, error)
	UpdateDeadline(ctx context.Context, id uint64, deadline string) error
	UpdateProject(ctx context.Context, id, projectID uint64) error
	Archive(ctx context.Context, id uint64) error
}

var (
	_ UserService    = (*services.UserService)(nil)
	_ ProjectService = (*services.ProjectService)(nil)
	_ TaskService    = (*services.TaskService)(nil)
)

// respondUnexpected hands the error to the terminal handler, which logs it and
// answers with the generic 500 body.
func respondUnexpected(c *gin.Context, err error) {
	_ = c.Error(err)
}
