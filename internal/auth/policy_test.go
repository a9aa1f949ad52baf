// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beaconcms/beacon/internal/auth"
	"github.com/beaconcms/beacon/internal/platform/apperr"
	"github.com/beaconcms/beacon/internal/platform/sec"
)

/*
TestRequireAuthenticated verifies the nil-identity gate.
*/
func TestRequireAuthenticated(t *testing.T) {
	assert.NoError(t, auth.RequireAuthenticated(&auth.Account{ID: 1}))

	err := auth.RequireAuthenticated(nil)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 401, ae.HTTPStatus)
}

/*
TestRequireNotBanned verifies the ban gate and its reason code.
*/
func TestRequireNotBanned(t *testing.T) {
	assert.NoError(t, auth.RequireNotBanned(&auth.Account{ID: 1}))

	err := auth.RequireNotBanned(&auth.Account{ID: 1, IsBanned: true})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 403, ae.HTTPStatus)
	assert.Equal(t, apperr.ReasonBanned, ae.Reason)

	// Anonymous is a 401, never a 403.
	err = auth.RequireNotBanned(nil)
	ae = apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 401, ae.HTTPStatus)
}

/*
TestRequireMinRole verifies the role gate against the full matrix.
*/
func TestRequireMinRole(t *testing.T) {
	tests := []struct {
		name    string
		role    sec.Role
		minimum sec.Role
		allowed bool
	}{
		{"admin_vs_admin", sec.RoleAdmin, sec.RoleAdmin, true},
		{"super_vs_admin", sec.RoleSuperAdmin, sec.RoleAdmin, true},
		{"admin_vs_super", sec.RoleAdmin, sec.RoleSuperAdmin, false},
		{"super_vs_super", sec.RoleSuperAdmin, sec.RoleSuperAdmin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := &auth.Account{ID: 1, Role: tt.role}
			err := auth.RequireMinRole(account, tt.minimum)

			if tt.allowed {
				assert.NoError(t, err)
				return
			}

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, 403, ae.HTTPStatus)
			assert.Equal(t, apperr.ReasonInsufficientRole, ae.Reason)
		})
	}

	// Anonymous never reaches a role decision.
	err := auth.RequireMinRole(nil, sec.RoleAdmin)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 401, ae.HTTPStatus)
}
