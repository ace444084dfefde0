package handlers

import (
	"strconv"

	"github.com/audithub/audithub/internal/models"
	"github.com/audithub/audithub/internal/services"
	"github.com/audithub/audithub/pkg/response"
	"github.com/gin-gonic/gin"
)

type PromptHandler struct {
	promptService *services.PromptService
}

func NewPromptHandler(promptService *services.PromptService) *PromptHandler {
	return &PromptHandler{promptService: promptService}
}

type promptView struct {
	ID                      uint                   `json:"id"`
	SessionID               string                 `json:"session_id"`
	ProjectAuditCriterionID uint                   `json:"project_audit_criterion_id"`
	Name                    string                 `json:"name"`
	Messages                []models.PromptMessage `json:"messages"`
}

func viewOf(p *models.Prompt) promptView {
	return promptView{
		ID:                      p.ID,
		SessionID:               p.SessionID,
		ProjectAuditCriterionID: p.ProjectAuditCriterionID,
		Name:                    p.Name,
		Messages:                p.MessageHistory(),
	}
}

// List returns the chat sessions of one audit criterion
// GET /api/audit-criteria/:id/prompts
func (h *PromptHandler) List(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	prompts, err := h.promptService.ListForCriterion(uint(id))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	views := make([]promptView, 0, len(prompts))
	for i := range prompts {
		views = append(views, viewOf(&prompts[i]))
	}
	response.Success(c, views)
}

// Create opens a new chat session on an audit criterion
// POST /api/audit-criteria/:id/prompts
func (h *PromptHandler) Create(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req services.CreatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	prompt, err := h.promptService.Create(uint(id), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Created(c, viewOf(prompt))
}

// Get returns one chat session with its history
// GET /api/prompts/:id
func (h *PromptHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	prompt, err := h.promptService.Get(uint(id))
	if err != nil {
		response.NotFound(c, "not found")
		return
	}

	response.Success(c, viewOf(prompt))
}

// SubmitMessage sends a message to the assistant. Provider failures still
// return 200: the user message and an error entry are kept in the history.
// POST /api/prompts/:id/messages
func (h *PromptHandler) SubmitMessage(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req services.SubmitMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	prompt, err := h.promptService.SubmitMessage(c.Request.Context(), uint(id), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, viewOf(prompt))
}

// Delete removes a chat session
// DELETE /api/prompts/:id
func (h *PromptHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	if err := h.promptService.Delete(uint(id)); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "prompt deleted"})
}
