package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/priority-focus-api/internal/dto"
	apierrors "github.com/yukikurage/priority-focus-api/internal/errors"
	"github.com/yukikurage/priority-focus-api/internal/middleware"
	"github.com/yukikurage/priority-focus-api/internal/services"
)

// PriorityHandler handles priority requests
type PriorityHandler struct {
	priorityService *services.PriorityService
	log             *slog.Logger
}

// NewPriorityHandler creates a new PriorityHandler
func NewPriorityHandler(priorityService *services.PriorityService, log *slog.Logger) *PriorityHandler {
	return &PriorityHandler{
		priorityService: priorityService,
		log:             log,
	}
}

// ListPriorities returns the priorities of the :id team member
func (h *PriorityHandler) ListPriorities(c *gin.Context) {
	managerID, teamMemberID, ok := teamMemberRequestIDs(c)
	if !ok {
		return
	}

	priorities, err := h.priorityService.ListPriorities(c.Request.Context(), managerID, teamMemberID)
	if err != nil {
		h.respondPriorityError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPriorityDTOs(priorities))
}

// CreatePriority appends a priority to the :id team member
func (h *PriorityHandler) CreatePriority(c *gin.Context) {
	type CreatePriorityRequest struct {
		Content string `json:"content" binding:"required"`
	}

	managerID, teamMemberID, ok := teamMemberRequestIDs(c)
	if !ok {
		return
	}

	var req CreatePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Content is required")
		return
	}

	priority, err := h.priorityService.CreatePriority(c.Request.Context(), managerID, teamMemberID, req.Content)
	if err != nil {
		h.respondPriorityError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPriorityDTO(*priority))
}

// GetPriority returns one priority
func (h *PriorityHandler) GetPriority(c *gin.Context) {
	managerID, id, ok := priorityRequestIDs(c)
	if !ok {
		return
	}

	priority, err := h.priorityService.GetPriority(c.Request.Context(), managerID, id)
	if err != nil {
		h.respondPriorityError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPriorityDTO(*priority))
}

// UpdatePriority applies a partial update
func (h *PriorityHandler) UpdatePriority(c *gin.Context) {
	type UpdatePriorityRequest struct {
		Content      *string `json:"content"`
		DisplayOrder *int    `json:"display_order"`
		Status       *string `json:"status"`
	}

	managerID, id, ok := priorityRequestIDs(c)
	if !ok {
		return
	}

	var req UpdatePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	priority, err := h.priorityService.UpdatePriority(c.Request.Context(), managerID, id, services.UpdatePriorityInput{
		Content:      req.Content,
		DisplayOrder: req.DisplayOrder,
		Status:       req.Status,
	})
	if err != nil {
		h.respondPriorityError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPriorityDTO(*priority))
}

// DeletePriority removes a priority and echoes what it held
func (h *PriorityHandler) DeletePriority(c *gin.Context) {
	managerID, id, ok := priorityRequestIDs(c)
	if !ok {
		return
	}

	priority, err := h.priorityService.DeletePriority(c.Request.Context(), managerID, id)
	if err != nil {
		h.respondPriorityError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPriorityDTO(*priority))
}

// ReorderPriorities rewrites display orders within one team member
func (h *PriorityHandler) ReorderPriorities(c *gin.Context) {
	type ReorderPrioritiesRequest struct {
		TeamMemberID uint64         `json:"team_member_id" binding:"required"`
		OrderMap     map[string]int `json:"order_map" binding:"required"`
	}

	managerID, ok := middleware.GetManagerID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req ReorderPrioritiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "team_member_id and order_map are required")
		return
	}

	result, err := h.priorityService.ReorderPriorities(c.Request.Context(), managerID, req.TeamMemberID, req.OrderMap)
	if err != nil {
		h.respondPriorityError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReorderResponse("Priorities reordered successfully", result))
}

func priorityRequestIDs(c *gin.Context) (managerID, priorityID uint64, ok bool) {
	managerID, ok = middleware.GetManagerID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return 0, 0, false
	}
	priorityID, ok = middleware.GetPriorityID(c)
	if !ok {
		apierrors.NotFound(c, "Priority not found")
		return 0, 0, false
	}
	return managerID, priorityID, true
}

func (h *PriorityHandler) respondPriorityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPriorityNotFound):
		apierrors.NotFound(c, "Priority not found")
	case errors.Is(err, services.ErrTeamMemberNotFound):
		apierrors.NotFound(c, "Team member not found")
	case errors.Is(err, services.ErrContentRequired):
		apierrors.BadRequest(c, "Content is required")
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, "Invalid status")
	case errors.Is(err, services.ErrContentTooLong),
		errors.Is(err, services.ErrInvalidOrderMap):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNoFieldsToUpdate):
		apierrors.BadRequest(c, "No updatable fields provided")
	default:
		internalError(c, h.log, err)
	}
}
