package domain

import (
	"errors"
)

// User is the authenticated caller of the API.
type User struct {
	ID   string
	Role Role
}

// Role represents a user's access level
type Role string

const (
	// RoleAdmin has full access to all operations
	RoleAdmin Role = "admin"

	// RoleOperator can run payment transitions and statement matching
	RoleOperator Role = "operator"

	// RoleViewer can only read processing moves and ledger checks
	RoleViewer Role = "viewer"
)

// roleLevels ranks roles; a role is granted everything a lower one is.
var roleLevels = map[Role]int{
	RoleViewer:   1,
	RoleOperator: 2,
	RoleAdmin:    3,
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return roleLevels[r] > 0
}

// Allows reports whether r grants the access required needs. Unknown roles
// allow nothing and are allowed by nothing.
func (r Role) Allows(required Role) bool {
	have, want := roleLevels[r], roleLevels[required]
	return have > 0 && want > 0 && have >= want
}

// CanTransition checks if the role may move payments through the workflow.
func (r Role) CanTransition() bool {
	return r.Allows(RoleOperator)
}

// Authentication errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)
