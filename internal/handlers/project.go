package handlers

import (
	"strconv"

	"github.com/audithub/audithub/internal/middleware"
	"github.com/audithub/audithub/internal/services"
	"github.com/audithub/audithub/pkg/response"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List returns the organization's projects
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	orgID := middleware.GetOrgID(c)

	projects, err := h.projectService.List(*orgID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, projects)
}

// Get returns one project
// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	project, err := h.projectService.Get(uint(id))
	if err != nil {
		response.NotFound(c, "not found")
		return
	}

	response.Success(c, project)
}

// Create creates a project in the selected organization
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	orgID := middleware.GetOrgID(c)
	project, err := h.projectService.Create(*orgID, &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Created(c, project)
}

// Update updates a project
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req services.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Update(uint(id), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, project)
}

// Delete deletes a project
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	if err := h.projectService.Delete(uint(id)); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "project deleted"})
}

// ListResources returns the resources of one project
// GET /api/projects/:id/resources
func (h *ProjectHandler) ListResources(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	resources, err := h.projectService.ListResources(uint(id))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resources)
}

// CreateResource attaches a resource to a project
// POST /api/projects/:id/resources
func (h *ProjectHandler) CreateResource(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req services.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resource, err := h.projectService.CreateResource(uint(id), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Created(c, resource)
}

// UpdateResource updates a resource
// PUT /api/resources/:id
func (h *ProjectHandler) UpdateResource(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req services.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resource, err := h.projectService.UpdateResource(uint(id), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, resource)
}

// DeleteResource deletes a resource
// DELETE /api/resources/:id
func (h *ProjectHandler) DeleteResource(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	if err := h.projectService.DeleteResource(uint(id)); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "resource deleted"})
}
