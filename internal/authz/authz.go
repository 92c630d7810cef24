// Package authz centralizes the role-based access policy. Every role check
// in the API goes through Can or CanAccessUser so the rule set is declared
// and tested in one place.
package authz

import "socialregistry/internal/models"

// Action identifies an operation subject to the access policy.
type Action string

const (
	ActionHouseholdCreate Action = "household:create"
	ActionHouseholdRead   Action = "household:read"
	ActionHouseholdList   Action = "household:list"
	ActionHouseholdSearch Action = "household:search"
	ActionHouseholdUpdate Action = "household:update"
	ActionMemberUpdate    Action = "member:update"
	ActionUserList        Action = "user:list"
)

// Principal is an authenticated actor making a request.
type Principal struct {
	UserID   uint
	Username string
	Role     models.Role
	IsActive bool
}

// policy maps each action to the roles allowed to perform it. A nil entry
// means any authenticated principal may perform the action.
var policy = map[Action][]models.Role{
	ActionHouseholdCreate: {models.RoleAdmin, models.RoleCaseWorker},
	ActionHouseholdUpdate: {models.RoleAdmin, models.RoleCaseWorker},
	ActionMemberUpdate:    {models.RoleAdmin, models.RoleCaseWorker},
	ActionUserList:        {models.RoleAdmin},
	ActionHouseholdRead:   nil,
	ActionHouseholdList:   nil,
	ActionHouseholdSearch: nil,
}

// Can reports whether the principal is allowed to perform the action.
// It is a pure function with no side effects.
func Can(p Principal, action Action) bool {
	if !p.IsActive {
		return false
	}
	roles, known := policy[action]
	if !known {
		return false
	}
	if roles == nil {
		return true
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// CanAccessUser reports whether the principal may read or update the user
// record identified by targetID. Users may access their own record; admins
// may access any record.
func CanAccessUser(p Principal, targetID uint) bool {
	if !p.IsActive {
		return false
	}
	return p.Role == models.RoleAdmin || p.UserID == targetID
}
