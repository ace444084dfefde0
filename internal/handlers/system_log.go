package handlers

import (
	"github.com/audithub/audithub/internal/services"
	"github.com/audithub/audithub/pkg/response"
	"github.com/gin-gonic/gin"
)

type SystemLogHandler struct {
	logService *services.SystemLogService
}

func NewSystemLogHandler(logService *services.SystemLogService) *SystemLogHandler {
	return &SystemLogHandler{logService: logService}
}

// List returns paginated system logs
// GET /api/system-logs
func (h *SystemLogHandler) List(c *gin.Context) {
	var req services.SystemLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.logService.List(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// Modules returns the distinct log modules for filtering
// GET /api/system-logs/modules
func (h *SystemLogHandler) Modules(c *gin.Context) {
	modules, err := h.logService.GetModules()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, modules)
}
