package dto

import (
	"time"

	"github.com/yukikurage/priority-focus-api/internal/models"
	"github.com/yukikurage/priority-focus-api/internal/repository"
)

// TeamMemberDTO represents a team member in API responses
type TeamMemberDTO struct {
	ID           uint64    `json:"id"`
	ManagerID    uint64    `json:"manager_id"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	IsArchived   bool      `json:"is_archived"`
	CreatedAt    time.Time `json:"created_at"`
}

// PriorityDTO represents a priority in API responses
type PriorityDTO struct {
	ID           uint64                `json:"id"`
	TeamMemberID uint64                `json:"team_member_id"`
	Content      string                `json:"content"`
	Status       models.PriorityStatus `json:"status"`
	DisplayOrder int                   `json:"display_order"`
	CompletedAt  *time.Time            `json:"completed_at"`
	CreatedAt    time.Time             `json:"created_at"`
}

// ReorderResponse reports which ids of a reorder request were applied
type ReorderResponse struct {
	Message string   `json:"message"`
	Updated []uint64 `json:"updated"`
	Skipped []uint64 `json:"skipped"`
}

// Conversion functions

// ToTeamMemberDTO converts a TeamMember model to TeamMemberDTO
func ToTeamMemberDTO(member models.TeamMember) TeamMemberDTO {
	return TeamMemberDTO{
		ID:           member.ID,
		ManagerID:    member.ManagerID,
		Name:         member.Name,
		DisplayOrder: member.DisplayOrder,
		IsArchived:   member.IsArchived,
		CreatedAt:    member.CreatedAt,
	}
}

// ToTeamMemberDTOs converts a slice of TeamMember models, never returning nil
func ToTeamMemberDTOs(members []models.TeamMember) []TeamMemberDTO {
	dtos := make([]TeamMemberDTO, 0, len(members))
	for _, member := range members {
		dtos = append(dtos, ToTeamMemberDTO(member))
	}
	return dtos
}

// ToPriorityDTO converts a Priority model to PriorityDTO
func ToPriorityDTO(priority models.Priority) PriorityDTO {
	return PriorityDTO{
		ID:           priority.ID,
		TeamMemberID: priority.TeamMemberID,
		Content:      priority.Content,
		Status:       priority.Status,
		DisplayOrder: priority.DisplayOrder,
		CompletedAt:  priority.CompletedAt,
		CreatedAt:    priority.CreatedAt,
	}
}

// ToPriorityDTOs converts a slice of Priority models, never returning nil
func ToPriorityDTOs(priorities []models.Priority) []PriorityDTO {
	dtos := make([]PriorityDTO, 0, len(priorities))
	for _, priority := range priorities {
		dtos = append(dtos, ToPriorityDTO(priority))
	}
	return dtos
}

// ToReorderResponse wraps a reorder result with a message
func ToReorderResponse(message string, result *repository.ReorderResult) ReorderResponse {
	resp := ReorderResponse{
		Message: message,
		Updated: []uint64{},
		Skipped: []uint64{},
	}
	if result != nil {
		if result.Updated != nil {
			resp.Updated = result.Updated
		}
		if result.Skipped != nil {
			resp.Skipped = result.Skipped
		}
	}
	return resp
}
