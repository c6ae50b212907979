package middleware

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/priority-focus-api/internal/constants"
	apierrors "github.com/yukikurage/priority-focus-api/internal/errors"
)

// OwnershipVerifier reports whether the resource id belongs to the manager
type OwnershipVerifier interface {
	VerifyOwnership(ctx context.Context, id, managerID uint64) (bool, error)
}

// RequireTeamMemberAccess checks that the :id team member belongs to the current manager.
// Foreign and missing team members both answer 404 so existence does not leak.
func RequireTeamMemberAccess(verifier OwnershipVerifier, log *slog.Logger) gin.HandlerFunc {
	return requireOwnership(verifier, log, constants.ContextKeyTeamMemberID, "Invalid team member ID", "Team member not found")
}

// RequirePriorityAccess checks that the :id priority belongs to the current manager
// through its team member.
func RequirePriorityAccess(verifier OwnershipVerifier, log *slog.Logger) gin.HandlerFunc {
	return requireOwnership(verifier, log, constants.ContextKeyPriorityID, "Invalid priority ID", "Priority not found")
}

// GetTeamMemberID retrieves the team member ID stored by RequireTeamMemberAccess
func GetTeamMemberID(c *gin.Context) (uint64, bool) {
	return getUint64(c, constants.ContextKeyTeamMemberID)
}

// GetPriorityID retrieves the priority ID stored by RequirePriorityAccess
func GetPriorityID(c *gin.Context) (uint64, bool) {
	return getUint64(c, constants.ContextKeyPriorityID)
}

func requireOwnership(verifier OwnershipVerifier, log *slog.Logger, contextKey, invalidMessage, notFoundMessage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, invalidMessage)
			return
		}

		managerID, exists := GetManagerID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			return
		}

		owned, err := verifier.VerifyOwnership(c.Request.Context(), id, managerID)
		if err != nil {
			log.ErrorContext(c.Request.Context(), "ownership check failed",
				"key", contextKey,
				"id", id,
				"manager_id", managerID,
				"error", err,
			)
			apierrors.InternalError(c, "")
			return
		}
		if !owned {
			apierrors.NotFound(c, notFoundMessage)
			return
		}

		c.Set(contextKey, id)
		c.Next()
	}
}
