package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/yukikurage/priority-focus-api/internal/models"
	"gorm.io/datatypes"
)

// ErrNoChanges is returned by Update when the patch carries no fields.
// Nothing is read or written in that case.
var ErrNoChanges = errors.New("repository: no fields to update")

// ManagerRepository defines the interface for manager data access
type ManagerRepository interface {
	// Create creates a new manager
	Create(ctx context.Context, manager *models.Manager) error

	// FindByID finds a manager by ID
	FindByID(ctx context.Context, id uint64) (*models.Manager, error)

	// FindByEmail finds a manager by email
	FindByEmail(ctx context.Context, email string) (*models.Manager, error)

	// UpdateSettings replaces the settings blob
	UpdateSettings(ctx context.Context, id uint64, settings datatypes.JSONMap) (*models.Manager, error)
}

// TeamMemberRepository defines the interface for team member data access.
// Every method taking a managerID scopes its statement to that manager;
// rows owned by someone else behave as if they did not exist.
type TeamMemberRepository interface {
	// Create inserts a team member at the end of the manager's order
	Create(ctx context.Context, managerID uint64, name string) (*models.TeamMember, error)

	// ListByManager lists team members ordered by display order
	ListByManager(ctx context.Context, managerID uint64, includeArchived bool) ([]models.TeamMember, error)

	// FindOwned finds a team member owned by the manager
	FindOwned(ctx context.Context, managerID, id uint64) (*models.TeamMember, error)

	// Update applies the fields present in the patch
	Update(ctx context.Context, managerID, id uint64, patch TeamMemberPatch) (*models.TeamMember, error)

	// Reorder rewrites display orders in one transaction, skipping ids the manager does not own
	Reorder(ctx context.Context, managerID uint64, orderMap map[uint64]int) (*ReorderResult, error)

	// Archive soft deletes a team member
	Archive(ctx context.Context, managerID, id uint64) (*models.TeamMember, error)

	// VerifyOwnership reports whether the team member belongs to the manager
	VerifyOwnership(ctx context.Context, id, managerID uint64) (bool, error)
}

// PriorityRepository defines the interface for priority data access
type PriorityRepository interface {
	// Create inserts a priority at the end of the team member's order.
	// content must already be trimmed and non-empty.
	Create(ctx context.Context, teamMemberID uint64, content string) (*models.Priority, error)

	// ListByTeamMember lists priorities, active first, then by display order
	ListByTeamMember(ctx context.Context, teamMemberID uint64) ([]models.Priority, error)

	// FindOwned finds a priority whose team member belongs to the manager
	FindOwned(ctx context.Context, managerID, id uint64) (*models.Priority, error)

	// Update applies the fields present in the patch
	Update(ctx context.Context, managerID, id uint64, patch PriorityPatch) (*models.Priority, error)

	// Reorder rewrites display orders in one transaction, skipping ids outside the team member
	Reorder(ctx context.Context, teamMemberID uint64, orderMap map[uint64]int) (*ReorderResult, error)

	// Delete hard deletes a priority and returns its prior contents
	Delete(ctx context.Context, managerID, id uint64) (*models.Priority, error)

	// VerifyOwnership reports whether the priority belongs to the manager through its team member
	VerifyOwnership(ctx context.Context, id, managerID uint64) (bool, error)
}

// TeamMemberPatch holds a partial team member update. Nil fields are left untouched.
type TeamMemberPatch struct {
	Name         *string
	DisplayOrder *int
	IsArchived   *bool
}

// Empty reports whether the patch has nothing to write
func (p TeamMemberPatch) Empty() bool {
	return p.Name == nil && p.DisplayOrder == nil && p.IsArchived == nil
}

func (p TeamMemberPatch) columns() map[string]interface{} {
	cols := make(map[string]interface{}, 3)
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.DisplayOrder != nil {
		cols["display_order"] = *p.DisplayOrder
	}
	if p.IsArchived != nil {
		cols["is_archived"] = *p.IsArchived
	}
	return cols
}

// PriorityPatch holds a partial priority update. Nil fields are left untouched.
type PriorityPatch struct {
	Content      *string
	DisplayOrder *int
	Status       *models.PriorityStatus
}

// Empty reports whether the patch has nothing to write
func (p PriorityPatch) Empty() bool {
	return p.Content == nil && p.DisplayOrder == nil && p.Status == nil
}

// ReorderResult reports which ids of a reorder batch were applied.
// Skipped ids are not errors: missing and foreign rows look the same.
type ReorderResult struct {
	Updated []uint64 `json:"updated"`
	Skipped []uint64 `json:"skipped"`
}

// sortedIDs returns the keys of an order map in ascending order so the
// statements of a batch run in a stable sequence.
func sortedIDs(orderMap map[uint64]int) []uint64 {
	ids := make([]uint64, 0, len(orderMap))
	for id := range orderMap {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
