package handlers

import (
	"errors"
	"strconv"

	"github.com/audithub/audithub/internal/services"
	"github.com/audithub/audithub/pkg/response"
	"github.com/gin-gonic/gin"
)

type ProjectAuditHandler struct {
	auditService *services.ProjectAuditService
}

func NewProjectAuditHandler(auditService *services.ProjectAuditService) *ProjectAuditHandler {
	return &ProjectAuditHandler{auditService: auditService}
}

// List returns the audits of one project with their progress
// GET /api/projects/:id/audits
func (h *ProjectAuditHandler) List(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	audits, err := h.auditService.List(uint(id))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, audits)
}

// Create instantiates an audit library against a project
// POST /api/projects/:id/audits
func (h *ProjectAuditHandler) Create(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req services.CreateAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	audit, err := h.auditService.Create(uint(id), &req)
	if err != nil {
		// A library outside the organization is indistinguishable
		// from one that does not exist
		if errors.Is(err, services.ErrUnknownLibrary) {
			response.NotFound(c, "not found")
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	response.Created(c, audit)
}

// Get returns one audit with its criteria and progress
// GET /api/audits/:id
func (h *ProjectAuditHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	audit, err := h.auditService.Detail(uint(id))
	if err != nil {
		response.NotFound(c, "not found")
		return
	}

	response.Success(c, audit)
}

// Archive marks an audit archived
// POST /api/audits/:id/archive
func (h *ProjectAuditHandler) Archive(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	audit, err := h.auditService.Archive(uint(id))
	if err != nil {
		response.NotFound(c, "not found")
		return
	}

	response.Success(c, audit)
}

// Delete deletes an audit and its criteria snapshot
// DELETE /api/audits/:id
func (h *ProjectAuditHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	if err := h.auditService.Delete(uint(id)); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "audit deleted"})
}

// GetCriterion returns one audit criterion row
// GET /api/audit-criteria/:id
func (h *ProjectAuditHandler) GetCriterion(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	row, err := h.auditService.GetCriterion(uint(id))
	if err != nil {
		response.NotFound(c, "not found")
		return
	}

	response.Success(c, row)
}

// UpdateCriterionStatus sets the compliance status of one criterion row
// PUT /api/audit-criteria/:id/status
func (h *ProjectAuditHandler) UpdateCriterionStatus(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req services.UpdateCriterionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	row, err := h.auditService.UpdateCriterionStatus(uint(id), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) || errors.Is(err, services.ErrAuditArchived) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, row)
}
