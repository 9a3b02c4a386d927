package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// ProjectHandler handles project-related HTTP requests
type ProjectHandler struct {
	projects ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projects ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// projectMembershipRequest is shared by the add and remove member routes
type projectMembershipRequest struct {
	ProjectID uint64 `json:"projectId" binding:"required"`
	UserID    uint64 `json:"userId" binding:"required"`
}

// Create creates a project. creatorId defaults to the caller.
func (h *ProjectHandler) Create(c *gin.Context) {
	type CreateRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		CreatorID   uint64 `json:"creatorId"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request data")
		return
	}

	if req.CreatorID == 0 {
		if claims, ok := middleware.GetClaims(c); ok {
			req.CreatorID = claims.UserID
		}
	}

	_, err := h.projects.Create(c.Request.Context(), services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		CreatorID:   req.CreatorID,
	})
	if err != nil {
		respondProjectError(c, err, "Project not found")
		return
	}

	apierrors.OK(c, "Project created", nil)
}

// Update changes the name and/or description of a project
func (h *ProjectHandler) Update(c *gin.Context) {
	type UpdateRequest struct {
		ID          uint64  `json:"id" binding:"required"`
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request data")
		return
	}

	project, err := h.projects.Update(c.Request.Context(), services.UpdateProjectInput{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondProjectError(c, err, "Project not found")
		return
	}

	apierrors.OK(c, "Project updated", gin.H{"project": dto.ToProjectDTO(*project)})
}

// Delete archives a project
func (h *ProjectHandler) Delete(c *gin.Context) {
	type DeleteRequest struct {
		ID uint64 `json:"id" binding:"required"`
	}

	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request data")
		return
	}

	if err := h.projects.Archive(c.Request.Context(), req.ID); err != nil {
		respondProjectError(c, err, "Project not found")
		return
	}

	apierrors.OK(c, "Project deleted", nil)
}

// AddUser adds a member to a project
func (h *ProjectHandler) AddUser(c *gin.Context) {
	var req projectMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request data")
		return
	}

	if err := h.projects.AddMember(c.Request.Context(), req.ProjectID, req.UserID); err != nil {
		respondProjectError(c, err, "Project or user not found")
		return
	}

	apierrors.OK(c, "User added to project", nil)
}

// DeleteUser removes a member from a project
func (h *ProjectHandler) DeleteUser(c *gin.Context) {
	var req projectMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request data")
		return
	}

	if err := h.projects.RemoveMember(c.Request.Context(), req.ProjectID, req.UserID); err != nil {
		respondProjectError(c, err, "Project or user not found")
		return
	}

	apierrors.OK(c, "User removed from project", nil)
}

func respondProjectError(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, services.ErrInvalidProjectData):
		apierrors.BadRequest(c, "Invalid request data")
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrProjectOrUserNotFound):
		apierrors.NotFound(c, notFound)
	default:
		respondUnexpected(c, err)
	}
}
