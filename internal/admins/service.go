// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

package admins

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/beaconcms/beacon/internal/auth"
	"github.com/beaconcms/beacon/internal/platform/apperr"
	"github.com/beaconcms/beacon/internal/platform/sec"
	"github.com/beaconcms/beacon/pkg/pointer"
)

// # Service Layer

// Service orchestrates the administrative account lifecycle: self-service
// profile management plus the super_admin-only management surface (create,
// list, ban, unban, delete).
//
// Role checks for the management operations are enforced here as well as at
// the routing layer, so the permission decision always precedes any existence
// lookup — a caller without the right role learns nothing about which
// accounts exist.
type Service struct {
	accountRepository auth.AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo auth.AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Profile Management (Self-Service)

/*
GetProfile retrieves the full account record of the authenticated caller.

Parameters:
  - context: context.Context
  - accountID: int64

Returns:
  - *auth.Account: The hydrated account
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, accountID int64) (*auth.Account, error) {
	account, err := service.accountRepository.FindByID(context, accountID)
	if err != nil {
		return nil, fmt.Errorf("admins_service_get_profile_failed: %w", err)
	}
	return account, nil
}

// UpdateProfileInput defines the mutable subset of an account's own profile.
type UpdateProfileInput struct {
	Name  *string
	Email *string
}

/*
UpdateProfile applies a partial set of changes to the caller's own account.

Description: Fetches the existing account state, overrides provided fields,
and synchronizes the change to persistent storage. An email change runs into
the same uniqueness constraint as account creation and surfaces as a conflict.
The caller cannot change their own role through this path.

Parameters:
  - context: context.Context
  - accountID: int64
  - input: UpdateProfileInput

Returns:
  - *auth.Account: The updated account
  - error: apperr.Conflict on duplicate email, or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, accountID int64, input UpdateProfileInput) (*auth.Account, error) {

	account, err := service.accountRepository.FindByID(context, accountID)
	if err != nil {
		return nil, fmt.Errorf("admins_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	account.Name = pointer.Fallback(input.Name, account.Name)
	account.Email = pointer.Fallback(input.Email, account.Email)

	// Persist changes
	if err := service.accountRepository.Update(context, account); err != nil {
		if apperr.IsConflict(err) {
			return nil, err
		}
		return nil, fmt.Errorf("admins_service_update_failed: %w", err)
	}

	service.logger.Info("admin_profile_updated", slog.Int64("account_id", accountID))

	return account, nil
}

// ChangePasswordInput carries the proof of identity and the replacement secret.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

/*
ChangePassword rotates the caller's password after re-verifying the current one.

Description: The current password must verify against the stored hash before
any change is applied — possession of a valid token alone is not sufficient to
rotate the credential. The new password is hashed with the same parameters as
registration. Previously issued tokens remain valid until expiry.

Parameters:
  - context: context.Context
  - accountID: int64
  - input: ChangePasswordInput

Returns:
  - error: Unauthorized when the current password fails verification,
    ValidationError when the new password is below the minimum strength,
    or storage failures
*/
func (service *Service) ChangePassword(context context.Context, accountID int64, input ChangePasswordInput) error {

	account, err := service.accountRepository.FindByID(context, accountID)
	if err != nil {
		return fmt.Errorf("admins_service_change_password_lookup_failed: %w", err)
	}

	// Re-authentication: possession of a token is not proof enough.
	if !sec.CheckPasswordHash(input.CurrentPassword, account.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	if err := auth.ValidatePassword(auth.FieldNewPassword, input.NewPassword); err != nil {
		return err
	}

	newHash, err := sec.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	if err := service.accountRepository.UpdatePassword(context, accountID, newHash); err != nil {
		return fmt.Errorf("admins_service_change_password_failed: %w", err)
	}

	service.logger.Info("admin_password_changed", slog.Int64("account_id", accountID))

	return nil
}

// # Account Management (super_admin only)

// CreateInput defines the payload for provisioning a new administrative account.
type CreateInput struct {
	Name     string
	Email    string
	Password string
	Role     sec.Role
}

/*
Create provisions a new administrative account.

Description: Restricted to super_admin callers; the permission check runs
before anything else. The role defaults to admin when unset. Email uniqueness
is decided by the storage constraint, so two concurrent creations with the
same email cannot both succeed.

Parameters:
  - context: context.Context
  - caller: *auth.Account (The authenticated principal performing the action)
  - input: CreateInput

Returns:
  - *auth.Account: The persisted account with its assigned ID
  - error: Forbidden, Conflict on duplicate email, or storage failures
*/
func (service *Service) Create(context context.Context, caller *auth.Account, input CreateInput) (*auth.Account, error) {
	if err := auth.RequireMinRole(caller, sec.RoleSuperAdmin); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = sec.RoleAdmin
	}
	if !role.IsValid() {
		return nil, apperr.ValidationError("Unknown role")
	}

	if err := auth.ValidatePassword(auth.FieldPassword, input.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	account := &auth.Account{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         role,
		IsBanned:     false,
	}

	if err := service.accountRepository.Create(context, account); err != nil {
		if apperr.IsConflict(err) {
			return nil, err
		}
		return nil, fmt.Errorf("admins_service_create_failed: %w", err)
	}

	service.logger.Info("admin_account_created",
		slog.Int64("account_id", account.ID),
		slog.String("role", string(account.Role)),
		slog.Int64("created_by", caller.ID),
	)

	return account, nil
}

/*
List returns a page of administrative accounts with the total count.

Parameters:
  - context: context.Context
  - caller: *auth.Account
  - limit: int
  - offset: int

Returns:
  - []*auth.Account: Page of accounts ordered by ID
  - int: Total account count for pagination metadata
  - error: Forbidden or retrieval failures
*/
func (service *Service) List(context context.Context, caller *auth.Account, limit, offset int) ([]*auth.Account, int, error) {
	if err := auth.RequireMinRole(caller, sec.RoleSuperAdmin); err != nil {
		return nil, 0, err
	}

	accounts, err := service.accountRepository.List(context, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("admins_service_list_failed: %w", err)
	}

	total, err := service.accountRepository.Count(context)
	if err != nil {
		return nil, 0, fmt.Errorf("admins_service_count_failed: %w", err)
	}

	return accounts, total, nil
}

/*
Get retrieves a single administrative account by ID.

Description: The permission check precedes the existence lookup, so a caller
below super_admin receives 403 even for IDs that do not exist.

Parameters:
  - context: context.Context
  - caller: *auth.Account
  - id: int64

Returns:
  - *auth.Account: The hydrated account
  - error: Forbidden, NotFound, or retrieval failures
*/
func (service *Service) Get(context context.Context, caller *auth.Account, id int64) (*auth.Account, error) {
	if err := auth.RequireMinRole(caller, sec.RoleSuperAdmin); err != nil {
		return nil, err
	}

	account, err := service.accountRepository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("admins_service_get_failed: %w", err)
	}

	return account, nil
}

// UpdateInput defines the mutable fields of a managed account.
type UpdateInput struct {
	Name  *string
	Email *string
	Role  *sec.Role
}

/*
Update applies a partial set of changes to a managed account.

Description: Unlike [Service.UpdateProfile], this path may change the role —
it is the only way an account's role moves after creation.

Parameters:
  - context: context.Context
  - caller: *auth.Account
  - id: int64
  - input: UpdateInput

Returns:
  - *auth.Account: The updated account
  - error: Forbidden, NotFound, Conflict on duplicate email, or storage failures
*/
func (service *Service) Update(context context.Context, caller *auth.Account, id int64, input UpdateInput) (*auth.Account, error) {
	if err := auth.RequireMinRole(caller, sec.RoleSuperAdmin); err != nil {
		return nil, err
	}

	account, err := service.accountRepository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("admins_service_update_admin_lookup_failed: %w", err)
	}

	account.Name = pointer.Fallback(input.Name, account.Name)
	account.Email = pointer.Fallback(input.Email, account.Email)
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, apperr.ValidationError("Unknown role")
		}
		account.Role = *input.Role
	}

	if err := service.accountRepository.Update(context, account); err != nil {
		if apperr.IsConflict(err) {
			return nil, err
		}
		return nil, fmt.Errorf("admins_service_update_admin_failed: %w", err)
	}

	service.logger.Info("admin_account_updated",
		slog.Int64("account_id", id),
		slog.Int64("updated_by", caller.ID),
	)

	return account, nil
}

/*
Ban sets the target account's ban flag.

Description: Idempotent — banning an already-banned account reports success.
The permission check precedes the existence check: an insufficient caller gets
403 before the system reveals whether the target exists. A super_admin cannot
ban their own account; that would lock the caller out mid-session.

Parameters:
  - context: context.Context
  - caller: *auth.Account
  - id: int64

Returns:
  - error: Forbidden, Conflict on self-ban, NotFound, or storage failures
*/
func (service *Service) Ban(context context.Context, caller *auth.Account, id int64) error {
	if err := auth.RequireMinRole(caller, sec.RoleSuperAdmin); err != nil {
		return err
	}

	if caller.ID == id {
		return apperr.Conflict("You cannot ban your own account")
	}

	if err := service.accountRepository.SetBanned(context, id, true); err != nil {
		return fmt.Errorf("admins_service_ban_failed: %w", err)
	}

	service.logger.Warn("admin_account_banned",
		slog.Int64("account_id", id),
		slog.Int64("banned_by", caller.ID),
	)

	return nil
}

/*
Unban clears the target account's ban flag.

Description: Idempotent — unbanning an account that was never banned reports
success. Only a missing target is an error.

Parameters:
  - context: context.Context
  - caller: *auth.Account
  - id: int64

Returns:
  - error: Forbidden, NotFound, or storage failures
*/
func (service *Service) Unban(context context.Context, caller *auth.Account, id int64) error {
	if err := auth.RequireMinRole(caller, sec.RoleSuperAdmin); err != nil {
		return err
	}

	if err := service.accountRepository.SetBanned(context, id, false); err != nil {
		return fmt.Errorf("admins_service_unban_failed: %w", err)
	}

	service.logger.Info("admin_account_unbanned",
		slog.Int64("account_id", id),
		slog.Int64("unbanned_by", caller.ID),
	)

	return nil
}

/*
Delete permanently removes an administrative account.

Description: Hard deletion, distinct from banning. Outstanding tokens for the
deleted account fail authentication on their next use because the account can
no longer be resolved. Self-deletion is rejected for the same reason self-ban
is.

Parameters:
  - context: context.Context
  - caller: *auth.Account
  - id: int64

Returns:
  - error: Forbidden, Conflict on self-delete, NotFound, or storage failures
*/
func (service *Service) Delete(context context.Context, caller *auth.Account, id int64) error {
	if err := auth.RequireMinRole(caller, sec.RoleSuperAdmin); err != nil {
		return err
	}

	if caller.ID == id {
		return apperr.Conflict("You cannot delete your own account")
	}

	if err := service.accountRepository.Delete(context, id); err != nil {
		return fmt.Errorf("admins_service_delete_failed: %w", err)
	}

	service.logger.Warn("admin_account_deleted",
		slog.Int64("account_id", id),
		slog.Int64("deleted_by", caller.ID),
	)

	return nil
}
