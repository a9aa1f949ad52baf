// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

package sec

// # Administrative Roles

// Role represents the authorization level granted to an administrative account.
type Role string

const (
	// Unrestricted system access, including account lifecycle management
	RoleSuperAdmin Role = "super_admin"

	// Can manage site content and their own profile
	RoleAdmin Role = "admin"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
//
// The hierarchy is the total order super_admin > admin: a minimum of
// [RoleAdmin] is satisfied by either role, a minimum of [RoleSuperAdmin]
// only by a super_admin.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// IsValid reports whether r is one of the two recognized roles.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-20) allows for future intermediate roles
	switch r {
	case RoleSuperAdmin:
		return 20
	case RoleAdmin:
		return 10
	default:
		return 0
	}
}
