package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/priority-focus-api/internal/constants"
	"github.com/yukikurage/priority-focus-api/internal/dto"
	apierrors "github.com/yukikurage/priority-focus-api/internal/errors"
	"github.com/yukikurage/priority-focus-api/internal/middleware"
	"github.com/yukikurage/priority-focus-api/internal/services"
)

// TeamMemberHandler handles team member requests
type TeamMemberHandler struct {
	teamMemberService *services.TeamMemberService
	log               *slog.Logger
}

// NewTeamMemberHandler creates a new TeamMemberHandler
func NewTeamMemberHandler(teamMemberService *services.TeamMemberService, log *slog.Logger) *TeamMemberHandler {
	return &TeamMemberHandler{
		teamMemberService: teamMemberService,
		log:               log,
	}
}

// ListTeamMembers returns the current manager's team members
func (h *TeamMemberHandler) ListTeamMembers(c *gin.Context) {
	managerID, ok := middleware.GetManagerID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	includeArchived := c.Query(constants.QueryIncludeArchived) == "true"

	members, err := h.teamMemberService.ListTeamMembers(c.Request.Context(), managerID, includeArchived)
	if err != nil {
		h.respondTeamMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamMemberDTOs(members))
}

// CreateTeamMember appends a new team member
func (h *TeamMemberHandler) CreateTeamMember(c *gin.Context) {
	type CreateTeamMemberRequest struct {
		Name string `json:"name" binding:"required"`
	}

	managerID, ok := middleware.GetManagerID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req CreateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Name is required")
		return
	}

	member, err := h.teamMemberService.CreateTeamMember(c.Request.Context(), managerID, req.Name)
	if err != nil {
		h.respondTeamMemberError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamMemberDTO(*member))
}

// GetTeamMember returns one team member
func (h *TeamMemberHandler) GetTeamMember(c *gin.Context) {
	managerID, id, ok := teamMemberRequestIDs(c)
	if !ok {
		return
	}

	member, err := h.teamMemberService.GetTeamMember(c.Request.Context(), managerID, id)
	if err != nil {
		h.respondTeamMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamMemberDTO(*member))
}

// UpdateTeamMember applies a partial update
func (h *TeamMemberHandler) UpdateTeamMember(c *gin.Context) {
	type UpdateTeamMemberRequest struct {
		Name         *string `json:"name"`
		DisplayOrder *int    `json:"display_order"`
		IsArchived   *bool   `json:"is_archived"`
	}

	managerID, id, ok := teamMemberRequestIDs(c)
	if !ok {
		return
	}

	var req UpdateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.teamMemberService.UpdateTeamMember(c.Request.Context(), managerID, id, services.UpdateTeamMemberInput{
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
		IsArchived:   req.IsArchived,
	})
	if err != nil {
		h.respondTeamMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamMemberDTO(*member))
}

// ArchiveTeamMember soft deletes a team member
func (h *TeamMemberHandler) ArchiveTeamMember(c *gin.Context) {
	managerID, id, ok := teamMemberRequestIDs(c)
	if !ok {
		return
	}

	member, err := h.teamMemberService.ArchiveTeamMember(c.Request.Context(), managerID, id)
	if err != nil {
		h.respondTeamMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamMemberDTO(*member))
}

// ReorderTeamMembers rewrites display orders from an id -> order map
func (h *TeamMemberHandler) ReorderTeamMembers(c *gin.Context) {
	type ReorderTeamMembersRequest struct {
		OrderMap map[string]int `json:"order_map" binding:"required"`
	}

	managerID, ok := middleware.GetManagerID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req ReorderTeamMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "order_map is required and must be an object")
		return
	}

	result, err := h.teamMemberService.ReorderTeamMembers(c.Request.Context(), managerID, req.OrderMap)
	if err != nil {
		h.respondTeamMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReorderResponse("Team members reordered successfully", result))
}

func teamMemberRequestIDs(c *gin.Context) (managerID, teamMemberID uint64, ok bool) {
	managerID, ok = middleware.GetManagerID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return 0, 0, false
	}
	teamMemberID, ok = middleware.GetTeamMemberID(c)
	if !ok {
		apierrors.NotFound(c, "Team member not found")
		return 0, 0, false
	}
	return managerID, teamMemberID, true
}

func (h *TeamMemberHandler) respondTeamMemberError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTeamMemberNotFound):
		apierrors.NotFound(c, "Team member not found")
	case errors.Is(err, services.ErrNameRequired):
		apierrors.BadRequest(c, "Name is required")
	case errors.Is(err, services.ErrNameTooLong),
		errors.Is(err, services.ErrInvalidOrderMap):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNoFieldsToUpdate):
		apierrors.BadRequest(c, "No updatable fields provided")
	default:
		internalError(c, h.log, err)
	}
}
