package constants

// Context keys
const (
	ContextKeyManagerID    = "manager_id"
	ContextKeyTeamMemberID = "team_member_id"
	ContextKeyPriorityID   = "priority_id"
)

// Validation limits
const (
	MinPasswordLength = 6
	MaxNameLength     = 255
	MaxContentLength  = 1000
)

// Token defaults
const (
	TokenIssuer  = "priority-focus"
	BearerPrefix = "Bearer "
)

// Query parameters
const (
	QueryIncludeArchived = "include_archived"
)
