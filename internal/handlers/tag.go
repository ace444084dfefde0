package handlers

import (
	"strconv"

	"github.com/audithub/audithub/internal/middleware"
	"github.com/audithub/audithub/internal/services"
	"github.com/audithub/audithub/pkg/response"
	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagService *services.TagService
}

func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// List returns the organization's tags
// GET /api/tags
func (h *TagHandler) List(c *gin.Context) {
	orgID := middleware.GetOrgID(c)

	tags, err := h.tagService.List(*orgID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, tags)
}

// Create creates a tag in the selected organization
// POST /api/tags
func (h *TagHandler) Create(c *gin.Context) {
	var req services.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	orgID := middleware.GetOrgID(c)
	tag, err := h.tagService.Create(*orgID, &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Created(c, tag)
}

// Update renames a tag
// PUT /api/tags/:id
func (h *TagHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req services.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tag, err := h.tagService.Update(uint(id), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, tag)
}

// Delete deletes a tag
// DELETE /api/tags/:id
func (h *TagHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	if err := h.tagService.Delete(uint(id)); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "tag deleted"})
}
