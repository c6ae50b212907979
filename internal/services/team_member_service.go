package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yukikurage/priority-focus-api/internal/constants"
	"github.com/yukikurage/priority-focus-api/internal/models"
	"github.com/yukikurage/priority-focus-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTeamMemberNotFound = errors.New("team member not found")
	ErrNameRequired       = errors.New("name is required")
	ErrNameTooLong        = errors.New("name is too long")
	ErrNoFieldsToUpdate   = errors.New("no updatable fields provided")
	ErrInvalidOrderMap    = errors.New("order_map keys must be positive integer ids")
)

// TeamMemberService handles team member business logic
type TeamMemberService struct {
	teamMemberRepo repository.TeamMemberRepository
}

// NewTeamMemberService creates a new TeamMemberService
func NewTeamMemberService(teamMemberRepo repository.TeamMemberRepository) *TeamMemberService {
	return &TeamMemberService{
		teamMemberRepo: teamMemberRepo,
	}
}

// UpdateTeamMemberInput represents a partial update; nil fields are left alone
type UpdateTeamMemberInput struct {
	Name         *string
	DisplayOrder *int
	IsArchived   *bool
}

// ListTeamMembers returns the manager's team members in display order
func (s *TeamMemberService) ListTeamMembers(ctx context.Context, managerID uint64, includeArchived bool) ([]models.TeamMember, error) {
	members, err := s.teamMemberRepo.ListByManager(ctx, managerID, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return members, nil
}

// GetTeamMember returns a single team member owned by the manager
func (s *TeamMemberService) GetTeamMember(ctx context.Context, managerID, id uint64) (*models.TeamMember, error) {
	member, err := s.teamMemberRepo.FindOwned(ctx, managerID, id)
	if err != nil {
		return nil, translateTeamMemberError("failed to find team member", err)
	}
	return member, nil
}

// CreateTeamMember appends a team member to the end of the manager's order
func (s *TeamMemberService) CreateTeamMember(ctx context.Context, managerID uint64, name string) (*models.TeamMember, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	member, err := s.teamMemberRepo.Create(ctx, managerID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create team member: %w", err)
	}
	return member, nil
}

// UpdateTeamMember applies a partial update to a team member owned by the manager
func (s *TeamMemberService) UpdateTeamMember(ctx context.Context, managerID, id uint64, input UpdateTeamMemberInput) (*models.TeamMember, error) {
	patch := repository.TeamMemberPatch{
		DisplayOrder: input.DisplayOrder,
		IsArchived:   input.IsArchived,
	}
	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}

	if patch.Empty() {
		return nil, ErrNoFieldsToUpdate
	}

	member, err := s.teamMemberRepo.Update(ctx, managerID, id, patch)
	if err != nil {
		return nil, translateTeamMemberError("failed to update team member", err)
	}
	return member, nil
}

// ArchiveTeamMember soft deletes a team member; its priorities are kept
func (s *TeamMemberService) ArchiveTeamMember(ctx context.Context, managerID, id uint64) (*models.TeamMember, error) {
	member, err := s.teamMemberRepo.Archive(ctx, managerID, id)
	if err != nil {
		return nil, translateTeamMemberError("failed to archive team member", err)
	}
	return member, nil
}

// ReorderTeamMembers rewrites display orders for the ids the manager owns
func (s *TeamMemberService) ReorderTeamMembers(ctx context.Context, managerID uint64, rawOrderMap map[string]int) (*repository.ReorderResult, error) {
	orderMap, err := ParseOrderMap(rawOrderMap)
	if err != nil {
		return nil, err
	}

	result, err := s.teamMemberRepo.Reorder(ctx, managerID, orderMap)
	if err != nil {
		return nil, fmt.Errorf("failed to reorder team members: %w", err)
	}
	return result, nil
}

// VerifyOwnership reports whether the team member belongs to the manager
func (s *TeamMemberService) VerifyOwnership(ctx context.Context, id, managerID uint64) (bool, error) {
	return s.teamMemberRepo.VerifyOwnership(ctx, id, managerID)
}

// ParseOrderMap converts the decimal-string keys of a JSON order map into ids.
// Two keys naming the same id ("1" and "01") make the map invalid.
func ParseOrderMap(raw map[string]int) (map[uint64]int, error) {
	orderMap := make(map[uint64]int, len(raw))
	for key, order := range raw {
		id, err := strconv.ParseUint(strings.TrimSpace(key), 10, 64)
		if err != nil || id == 0 {
			return nil, ErrInvalidOrderMap
		}
		if _, dup := orderMap[id]; dup {
			return nil, ErrInvalidOrderMap
		}
		orderMap[id] = order
	}
	return orderMap, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if len(name) > constants.MaxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

func translateTeamMemberError(action string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTeamMemberNotFound
	}
	if errors.Is(err, repository.ErrNoChanges) {
		return ErrNoFieldsToUpdate
	}
	return fmt.Errorf("%s: %w", action, err)
}
