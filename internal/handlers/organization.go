package handlers

import (
	"errors"
	"strconv"

	"github.com/audithub/audithub/internal/middleware"
	"github.com/audithub/audithub/internal/services"
	"github.com/audithub/audithub/pkg/response"
	"github.com/gin-gonic/gin"
)

type OrganizationHandler struct {
	orgService *services.OrganizationService
}

func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

// List returns the organizations the caller belongs to
// GET /api/organizations
func (h *OrganizationHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	orgs, err := h.orgService.ListForUser(userID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, orgs)
}

// Create creates an organization with the caller as administrator
// POST /api/organizations
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req services.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	org, err := h.orgService.Create(userID, &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Created(c, org)
}

// Switch selects an organization for the caller's session
// POST /api/organizations/:id/switch
func (h *OrganizationHandler) Switch(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.NotFound(c, "not found")
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.orgService.Switch(userID, uint(id)); err != nil {
		// Non-membership looks exactly like a missing organization
		if errors.Is(err, services.ErrNotMember) {
			response.NotFound(c, "not found")
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "organization switched"})
}

// ListMembers returns the members of an organization
// GET /api/organizations/:id/members
func (h *OrganizationHandler) ListMembers(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	members, err := h.orgService.ListMembers(uint(id))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, members)
}

// AddMember adds a user to an organization
// POST /api/organizations/:id/members
func (h *OrganizationHandler) AddMember(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req services.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.orgService.AddMember(uint(id), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Created(c, member)
}

type updateMemberRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateMemberRole changes a member's role
// PUT /api/organizations/:id/members/:member_id
func (h *OrganizationHandler) UpdateMemberRole(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	memberID, err := strconv.ParseUint(c.Param("member_id"), 10, 32)
	if err != nil {
		response.NotFound(c, "not found")
		return
	}

	var req updateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.orgService.UpdateMemberRole(uint(id), uint(memberID), req.Role); err != nil {
		if errors.Is(err, services.ErrLastAdministrator) {
			response.BadRequest(c, err.Error())
			return
		}
		response.NotFound(c, "not found")
		return
	}

	response.Success(c, gin.H{"message": "member role updated"})
}

// RemoveMember removes a member from an organization
// DELETE /api/organizations/:id/members/:member_id
func (h *OrganizationHandler) RemoveMember(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	memberID, err := strconv.ParseUint(c.Param("member_id"), 10, 32)
	if err != nil {
		response.NotFound(c, "not found")
		return
	}

	if err := h.orgService.RemoveMember(uint(id), uint(memberID)); err != nil {
		if errors.Is(err, services.ErrLastAdministrator) {
			response.BadRequest(c, err.Error())
			return
		}
		response.NotFound(c, "not found")
		return
	}

	response.Success(c, gin.H{"message": "member removed"})
}
