// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

package auth

import (
	"github.com/beaconcms/beacon/internal/platform/apperr"
	"github.com/beaconcms/beacon/internal/platform/sec"
)

// # Authorization Policy
//
// Pure decision functions over a request's resolved identity. No I/O.
//
// The gates are independently composable but order-sensitive: authentication
// must precede the ban check, which must precede the role check. An
// unauthenticated or banned caller must never reach a role decision that
// could leak information about protected resources.

// RequireAuthenticated fails when no identity was resolved upstream.
func RequireAuthenticated(account *Account) error {
	if account == nil {
		return apperr.Unauthorized("Authentication required")
	}
	return nil
}

// RequireNotBanned fails when the account's ban flag is set.
func RequireNotBanned(account *Account) error {
	if err := RequireAuthenticated(account); err != nil {
		return err
	}
	if account.IsBanned {
		return apperr.Forbidden(apperr.ReasonBanned, "Account is banned")
	}
	return nil
}

// RequireMinRole fails when the account's role does not meet minRole in the
// total order super_admin > admin.
func RequireMinRole(account *Account, minRole sec.Role) error {
	if err := RequireAuthenticated(account); err != nil {
		return err
	}
	if !account.Role.AtLeast(minRole) {
		return apperr.Forbidden(apperr.ReasonInsufficientRole, "Insufficient role for this operation")
	}
	return nil
}
