// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beaconcms/beacon/internal/platform/sec"
)

/*
TestRole_AtLeast exercises the full role-hierarchy matrix.
*/
func TestRole_AtLeast(t *testing.T) {
	tests := []struct {
		name      string
		role      sec.Role
		minimum   sec.Role
		satisfied bool
	}{
		{"admin_meets_admin", sec.RoleAdmin, sec.RoleAdmin, true},
		{"super_meets_admin", sec.RoleSuperAdmin, sec.RoleAdmin, true},
		{"admin_fails_super", sec.RoleAdmin, sec.RoleSuperAdmin, false},
		{"super_meets_super", sec.RoleSuperAdmin, sec.RoleSuperAdmin, true},
		{"unknown_fails_admin", sec.Role("viewer"), sec.RoleAdmin, false},
		{"empty_fails_admin", sec.Role(""), sec.RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.satisfied, tt.role.AtLeast(tt.minimum))
		})
	}
}

/*
TestRole_IsValid verifies the closed role set.
*/
func TestRole_IsValid(t *testing.T) {
	assert.True(t, sec.RoleAdmin.IsValid())
	assert.True(t, sec.RoleSuperAdmin.IsValid())
	assert.False(t, sec.Role("root").IsValid())
	assert.False(t, sec.Role("").IsValid())
}
