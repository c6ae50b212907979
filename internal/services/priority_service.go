package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/priority-focus-api/internal/constants"
	"github.com/yukikurage/priority-focus-api/internal/models"
	"github.com/yukikurage/priority-focus-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPriorityNotFound = errors.New("priority not found")
	ErrContentRequired  = errors.New("content is required")
	ErrContentTooLong   = errors.New("content is too long")
	ErrInvalidStatus    = errors.New("status must be active or completed")
)

// PriorityService handles priority business logic
type PriorityService struct {
	priorityRepo   repository.PriorityRepository
	teamMemberRepo repository.TeamMemberRepository
}

// NewPriorityService creates a new PriorityService
func NewPriorityService(priorityRepo repository.PriorityRepository, teamMemberRepo repository.TeamMemberRepository) *PriorityService {
	return &PriorityService{
		priorityRepo:   priorityRepo,
		teamMemberRepo: teamMemberRepo,
	}
}

// UpdatePriorityInput represents a partial update; nil fields are left alone
type UpdatePriorityInput struct {
	Content      *string
	DisplayOrder *int
	Status       *string
}

// ListPriorities returns a team member's priorities, active first
func (s *PriorityService) ListPriorities(ctx context.Context, managerID, teamMemberID uint64) ([]models.Priority, error) {
	if err := s.ensureTeamMemberOwned(ctx, managerID, teamMemberID); err != nil {
		return nil, err
	}

	priorities, err := s.priorityRepo.ListByTeamMember(ctx, teamMemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list priorities: %w", err)
	}
	return priorities, nil
}

// GetPriority returns a single priority reachable from the manager
func (s *PriorityService) GetPriority(ctx context.Context, managerID, id uint64) (*models.Priority, error) {
	priority, err := s.priorityRepo.FindOwned(ctx, managerID, id)
	if err != nil {
		return nil, translatePriorityError("failed to find priority", err)
	}
	return priority, nil
}

// CreatePriority appends a priority to the team member's list.
// Archived team members still accept new priorities.
func (s *PriorityService) CreatePriority(ctx context.Context, managerID, teamMemberID uint64, content string) (*models.Priority, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	if err := s.ensureTeamMemberOwned(ctx, managerID, teamMemberID); err != nil {
		return nil, err
	}

	priority, err := s.priorityRepo.Create(ctx, teamMemberID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create priority: %w", err)
	}
	return priority, nil
}

// UpdatePriority applies a partial update to a priority reachable from the manager
func (s *PriorityService) UpdatePriority(ctx context.Context, managerID, id uint64, input UpdatePriorityInput) (*models.Priority, error) {
	patch := repository.PriorityPatch{
		DisplayOrder: input.DisplayOrder,
	}
	if input.Content != nil {
		content, err := validateContent(*input.Content)
		if err != nil {
			return nil, err
		}
		patch.Content = &content
	}
	if input.Status != nil {
		status := models.PriorityStatus(*input.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		patch.Status = &status
	}

	if patch.Empty() {
		return nil, ErrNoFieldsToUpdate
	}

	priority, err := s.priorityRepo.Update(ctx, managerID, id, patch)
	if err != nil {
		return nil, translatePriorityError("failed to update priority", err)
	}
	return priority, nil
}

// ReorderPriorities rewrites display orders within one team member
func (s *PriorityService) ReorderPriorities(ctx context.Context, managerID, teamMemberID uint64, rawOrderMap map[string]int) (*repository.ReorderResult, error) {
	orderMap, err := ParseOrderMap(rawOrderMap)
	if err != nil {
		return nil, err
	}

	if err := s.ensureTeamMemberOwned(ctx, managerID, teamMemberID); err != nil {
		return nil, err
	}

	result, err := s.priorityRepo.Reorder(ctx, teamMemberID, orderMap)
	if err != nil {
		return nil, fmt.Errorf("failed to reorder priorities: %w", err)
	}
	return result, nil
}

// DeletePriority removes a priority and returns what it held
func (s *PriorityService) DeletePriority(ctx context.Context, managerID, id uint64) (*models.Priority, error) {
	priority, err := s.priorityRepo.Delete(ctx, managerID, id)
	if err != nil {
		return nil, translatePriorityError("failed to delete priority", err)
	}
	return priority, nil
}

// VerifyOwnership reports whether the priority belongs to the manager
func (s *PriorityService) VerifyOwnership(ctx context.Context, id, managerID uint64) (bool, error) {
	return s.priorityRepo.VerifyOwnership(ctx, id, managerID)
}

func (s *PriorityService) ensureTeamMemberOwned(ctx context.Context, managerID, teamMemberID uint64) error {
	owned, err := s.teamMemberRepo.VerifyOwnership(ctx, teamMemberID, managerID)
	if err != nil {
		return fmt.Errorf("failed to verify team member ownership: %w", err)
	}
	if !owned {
		return ErrTeamMemberNotFound
	}
	return nil
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrContentRequired
	}
	if len(content) > constants.MaxContentLength {
		return "", ErrContentTooLong
	}
	return content, nil
}

func translatePriorityError(action string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPriorityNotFound
	}
	if errors.Is(err, repository.ErrNoChanges) {
		return ErrNoFieldsToUpdate
	}
	return fmt.Errorf("%s: %w", action, err)
}
