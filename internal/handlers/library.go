package handlers

import (
	"strconv"

	"github.com/audithub/audithub/internal/middleware"
	"github.com/audithub/audithub/internal/services"
	"github.com/audithub/audithub/pkg/response"
	"github.com/gin-gonic/gin"
)

type LibraryHandler struct {
	libraryService *services.LibraryService
}

func NewLibraryHandler(libraryService *services.LibraryService) *LibraryHandler {
	return &LibraryHandler{libraryService: libraryService}
}

// List returns the organization's audit libraries
// GET /api/libraries
func (h *LibraryHandler) List(c *gin.Context) {
	orgID := middleware.GetOrgID(c)

	libraries, err := h.libraryService.List(*orgID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, libraries)
}

// Get returns one audit library
// GET /api/libraries/:id
func (h *LibraryHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	library, err := h.libraryService.Get(uint(id))
	if err != nil {
		response.NotFound(c, "not found")
		return
	}

	response.Success(c, library)
}

// Create creates an audit library in the selected organization
// POST /api/libraries
func (h *LibraryHandler) Create(c *gin.Context) {
	var req services.LibraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	orgID := middleware.GetOrgID(c)
	library, err := h.libraryService.Create(*orgID, &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Created(c, library)
}

// Update updates an audit library
// PUT /api/libraries/:id
func (h *LibraryHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req services.LibraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	library, err := h.libraryService.Update(uint(id), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, library)
}

// Delete deletes an audit library
// DELETE /api/libraries/:id
func (h *LibraryHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	if err := h.libraryService.Delete(uint(id)); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "library deleted"})
}

// ListCriteria returns the criteria of one library
// GET /api/libraries/:id/criteria
func (h *LibraryHandler) ListCriteria(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	criteria, err := h.libraryService.ListCriteria(uint(id))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, criteria)
}

// CreateCriterion adds a criterion to a library
// POST /api/libraries/:id/criteria
func (h *LibraryHandler) CreateCriterion(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req services.CriterionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	criterion, err := h.libraryService.CreateCriterion(uint(id), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Created(c, criterion)
}

// GetCriterion returns one criterion
// GET /api/criteria/:id
func (h *LibraryHandler) GetCriterion(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	criterion, err := h.libraryService.GetCriterion(uint(id))
	if err != nil {
		response.NotFound(c, "not found")
		return
	}

	response.Success(c, criterion)
}

// UpdateCriterion updates a criterion
// PUT /api/criteria/:id
func (h *LibraryHandler) UpdateCriterion(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req services.CriterionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	criterion, err := h.libraryService.UpdateCriterion(uint(id), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, criterion)
}

// DeleteCriterion deletes a criterion
// DELETE /api/criteria/:id
func (h *LibraryHandler) DeleteCriterion(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	if err := h.libraryService.DeleteCriterion(uint(id)); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "criterion deleted"})
}
