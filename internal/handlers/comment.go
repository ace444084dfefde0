package handlers

import (
	"strconv"

	"github.com/audithub/audithub/internal/middleware"
	"github.com/audithub/audithub/internal/services"
	"github.com/audithub/audithub/pkg/response"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List returns the comments on one audit criterion
// GET /api/audit-criteria/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	comments, err := h.commentService.ListForCriterion(uint(id))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, comments)
}

// Create adds a comment to an audit criterion
// POST /api/audit-criteria/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req services.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	comment, err := h.commentService.Create(uint(id), userID, &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Created(c, comment)
}

// Update edits a comment
// PUT /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req services.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.commentService.Update(uint(id), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, comment)
}

// Delete deletes a comment
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	if err := h.commentService.Delete(uint(id)); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "comment deleted"})
}
