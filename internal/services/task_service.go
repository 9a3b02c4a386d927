package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

var (
	ErrTaskNotFound          = errors.New("task not found")
	ErrTaskReferenceNotFound = errors.New("responsible user or project not found")
	ErrTaskOrUserNotFound    = errors.New("task or user not found")
	ErrTaskOrProjectNotFound = errors.New("task or new project not found")
	ErrInvalidTaskData       = errors.New("invalid task data")
	ErrInvalidDeadline       = utils.ErrInvalidDeadline
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name          string
	Description   string
	ResponsibleID uint64
	Deadline      string
	ProjectID     uint64
}

// Create creates a task under a project with its first responsible user
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidTaskData
	}

	deadline, err := utils.ParseDeadline(input.Deadline)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:        name,
		Description: input.Description,
		Deadline:    deadline,
		ProjectID:   input.ProjectID,
	}
	if err := s.taskRepo.CreateWithResponsible(ctx, task, input.ResponsibleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrConstraint) {
			return nil, ErrTaskReferenceNotFound
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Get returns a task with its responsible users. No route exposes it; callers
// and tests use it to read back what the mutating operations stored.
func (s *TaskService) Get(ctx context.Context, id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id, "Responsible")
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// AddResponsible assigns a user to a task
func (s *TaskService) AddResponsible(ctx context.Context, taskID, userID uint64) error {
	if err := s.taskRepo.AddResponsible(ctx, taskID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskOrUserNotFound
		}
		return fmt.Errorf("failed to add responsible: %w", err)
	}
	return nil
}

// RemoveResponsible unassigns a user from a task
func (s *TaskService) RemoveResponsible(ctx context.Context, taskID, userID uint64) error {
	if err := s.taskRepo.RemoveResponsible(ctx, taskID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskOrUserNotFound
		}
		return fmt.Errorf("failed to remove responsible: %w", err)
	}
	return nil
}

// ToggleStatus inverts the task status and returns the new value
func (s *TaskService) ToggleStatus(ctx context.Context, id uint64) (bool, error) {
	status, err := s.taskRepo.ToggleStatus(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrTaskNotFound
		}
		return false, fmt.Errorf("failed to toggle task status: %w", err)
	}
	return status, nil
}

// UpdateDeadline normalizes and stores a new deadline
func (s *TaskService) UpdateDeadline(ctx context.Context, id uint64, deadline string) error {
	parsed, err := utils.ParseDeadline(deadline)
	if err != nil {
		return err
	}

	if err := s.taskRepo.UpdateDeadline(ctx, id, parsed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to update deadline: %w", err)
	}
	return nil
}

// UpdateProject moves a task to another project
func (s *TaskService) UpdateProject(ctx context.Context, id, projectID uint64) error {
	if err := s.taskRepo.UpdateProject(ctx, id, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrConstraint) {
			return ErrTaskOrProjectNotFound
		}
		return fmt.Errorf("failed to update task project: %w", err)
	}
	return nil
}

// Archive marks a task as archived
func (s *TaskService) Archive(ctx context.Context, id uint64) error {
	if err := s.taskRepo.Archive(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to archive task: %w", err)
	}
	return nil
}
