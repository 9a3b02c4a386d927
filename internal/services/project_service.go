package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
)

var (
	ErrProjectNotFound       = errors.New("project not found")
	ErrProjectOrUserNotFound = errors.New("project or user not found")
	ErrInvalidProjectData    = errors.New("invalid project data")
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description string
	CreatorID   uint64
}

// UpdateProjectInput represents input for updating a project.
// Nil fields are left untouched.
type UpdateProjectInput struct {
	ID          uint64
	Name        *string
	Description *string
}

// Create creates a project whose first member is its creator
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.CreatorID == 0 {
		return nil, ErrInvalidProjectData
	}

	project := &models.Project{
		Name:        name,
		Description: input.Description,
		CreatorID:   input.CreatorID,
	}
	if err := s.projectRepo.CreateWithCreator(ctx, project); err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrConstraint) {
			return nil, ErrInvalidProjectData
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// Update applies the provided fields and returns the project with its members
func (s *ProjectService) Update(ctx context.Context, input UpdateProjectInput) (*models.Project, error) {
	changes := repository.ProjectChanges{Description: input.Description}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidProjectData
		}
		changes.Name = &name
	}

	project, err := s.projectRepo.Update(ctx, input.ID, changes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// Archive marks a project as archived
func (s *ProjectService) Archive(ctx context.Context, id uint64) error {
	if err := s.projectRepo.Archive(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to archive project: %w", err)
	}
	return nil
}

// AddMember adds a user to the project's members
func (s *ProjectService) AddMember(ctx context.Context, projectID, userID uint64) error {
	if err := s.projectRepo.AddMember(ctx, projectID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectOrUserNotFound
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// RemoveMember removes a user from the project's members
func (s *ProjectService) RemoveMember(ctx context.Context, projectID, userID uint64) error {
	if err := s.projectRepo.RemoveMember(ctx, projectID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectOrUserNotFound
		}
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// Members lists the members of a project. No route exposes it; callers and
// tests use it to read back membership changes.
func (s *ProjectService) Members(ctx context.Context, projectID uint64) ([]models.User, error) {
	members, err := s.projectRepo.ListMembers(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}
