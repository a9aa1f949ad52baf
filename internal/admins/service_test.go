// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

package admins_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beaconcms/beacon/internal/admins"
	"github.com/beaconcms/beacon/internal/auth"
	"github.com/beaconcms/beacon/internal/platform/apperr"
	"github.com/beaconcms/beacon/internal/platform/sec"
	"github.com/beaconcms/beacon/pkg/pointer"
)

// # Test Doubles

// memoryRepo is an in-memory auth.AccountRepository for lifecycle tests.
type memoryRepo struct {
	accounts map[int64]*auth.Account
	nextID   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{accounts: make(map[int64]*auth.Account), nextID: 1}
}

func (r *memoryRepo) FindByID(_ context.Context, id int64) (*auth.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	copied := *account
	return &copied, nil
}

func (r *memoryRepo) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	for _, account := range r.accounts {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (r *memoryRepo) Create(_ context.Context, account *auth.Account) error {
	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return apperr.Conflict("Email is already registered")
		}
	}
	account.ID = r.nextID
	r.nextID++
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	copied := *account
	r.accounts[account.ID] = &copied
	return nil
}

func (r *memoryRepo) Update(_ context.Context, account *auth.Account) error {
	if _, ok := r.accounts[account.ID]; !ok {
		return apperr.NotFound("Account")
	}
	for _, existing := range r.accounts {
		if existing.Email == account.Email && existing.ID != account.ID {
			return apperr.Conflict("Email is already registered")
		}
	}
	copied := *account
	r.accounts[account.ID] = &copied
	return nil
}

func (r *memoryRepo) UpdatePassword(_ context.Context, id int64, newHash string) error {
	account, ok := r.accounts[id]
	if !ok {
		return apperr.NotFound("Account")
	}
	account.PasswordHash = newHash
	return nil
}

func (r *memoryRepo) SetBanned(_ context.Context, id int64, banned bool) error {
	account, ok := r.accounts[id]
	if !ok {
		return apperr.NotFound("Account")
	}
	account.IsBanned = banned
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.accounts[id]; !ok {
		return apperr.NotFound("Account")
	}
	delete(r.accounts, id)
	return nil
}

func (r *memoryRepo) List(_ context.Context, limit, offset int) ([]*auth.Account, error) {
	out := make([]*auth.Account, 0, len(r.accounts))
	for id := int64(1); id < r.nextID; id++ {
		if account, ok := r.accounts[id]; ok {
			copied := *account
			out = append(out, &copied)
		}
	}
	if offset >= len(out) {
		return []*auth.Account{}, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryRepo) Count(_ context.Context) (int, error) {
	return len(r.accounts), nil
}

// # Fixtures

func newTestService(t *testing.T) (*admins.Service, *memoryRepo) {
	t.Helper()
	repo := newMemoryRepo()
	return admins.NewService(repo, slog.New(slog.DiscardHandler)), repo
}

func seed(t *testing.T, repo *memoryRepo, email, password string, role sec.Role) *auth.Account {
	t.Helper()

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	account := &auth.Account{
		Name:         "Seeded",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, repo.Create(context.Background(), account))
	return account
}

func assertForbiddenRole(t *testing.T, err error) {
	t.Helper()
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 403, ae.HTTPStatus)
	assert.Equal(t, apperr.ReasonInsufficientRole, ae.Reason)
}

// # Create

/*
TestService_Create verifies provisioning, role default, and the permission gate.
*/
func TestService_Create(t *testing.T) {
	service, repo := newTestService(t)
	super := seed(t, repo, "root@iot.com", "admin123", sec.RoleSuperAdmin)
	plain := seed(t, repo, "plain@iot.com", "admin123", sec.RoleAdmin)

	// A plain admin cannot provision accounts.
	_, err := service.Create(context.Background(), plain, admins.CreateInput{
		Name:     "New Admin",
		Email:    "new@iot.com",
		Password: "password1",
	})
	assertForbiddenRole(t, err)

	// Role defaults to admin when unset.
	created, err := service.Create(context.Background(), super, admins.CreateInput{
		Name:     "New Admin",
		Email:    "new@iot.com",
		Password: "password1",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, created.Role)
	assert.NotZero(t, created.ID)
	assert.True(t, sec.CheckPasswordHash("password1", created.PasswordHash))

	// Duplicate email is a conflict, decided by the store.
	_, err = service.Create(context.Background(), super, admins.CreateInput{
		Name:     "Duplicate",
		Email:    "new@iot.com",
		Password: "password2",
	})
	assert.True(t, apperr.IsConflict(err))

	// Unknown roles are rejected outright.
	_, err = service.Create(context.Background(), super, admins.CreateInput{
		Name:     "Odd Role",
		Email:    "odd@iot.com",
		Password: "password3",
		Role:     sec.Role("viewer"),
	})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)

	// A password below the minimum length never reaches the hasher.
	_, err = service.Create(context.Background(), super, admins.CreateInput{
		Name:     "Weak Password",
		Email:    "weak@iot.com",
		Password: "abc",
	})
	ae = apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, auth.FieldPassword, ae.Details[0].Field)
}

// # Ban / Unban

/*
TestService_Ban_Idempotent verifies banning twice succeeds and only a missing
target errors.
*/
func TestService_Ban_Idempotent(t *testing.T) {
	service, repo := newTestService(t)
	super := seed(t, repo, "root@iot.com", "admin123", sec.RoleSuperAdmin)
	target := seed(t, repo, "target@iot.com", "admin123", sec.RoleAdmin)

	require.NoError(t, service.Ban(context.Background(), super, target.ID))

	// Second ban of the same account is a no-op success.
	require.NoError(t, service.Ban(context.Background(), super, target.ID))

	banned, err := repo.FindByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.True(t, banned.IsBanned)

	// Missing targets are 404.
	err = service.Ban(context.Background(), super, 999)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_Unban_NeverBanned verifies unbanning an unbanned account succeeds.
*/
func TestService_Unban_NeverBanned(t *testing.T) {
	service, repo := newTestService(t)
	super := seed(t, repo, "root@iot.com", "admin123", sec.RoleSuperAdmin)
	target := seed(t, repo, "target@iot.com", "admin123", sec.RoleAdmin)

	require.NoError(t, service.Unban(context.Background(), super, target.ID))

	account, err := repo.FindByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.False(t, account.IsBanned)
}

/*
TestService_Ban_PermissionPrecedesExistence verifies an insufficient caller
receives 403 even for a target id that does not exist.
*/
func TestService_Ban_PermissionPrecedesExistence(t *testing.T) {
	service, repo := newTestService(t)
	plain := seed(t, repo, "plain@iot.com", "admin123", sec.RoleAdmin)

	err := service.Ban(context.Background(), plain, 999)
	assertForbiddenRole(t, err)
}

/*
TestService_Ban_Self verifies a super_admin cannot ban their own account.
*/
func TestService_Ban_Self(t *testing.T) {
	service, repo := newTestService(t)
	super := seed(t, repo, "root@iot.com", "admin123", sec.RoleSuperAdmin)

	err := service.Ban(context.Background(), super, super.ID)
	assert.True(t, apperr.IsConflict(err))
}

// # Password Rotation

/*
TestService_ChangePassword covers wrong current password, hashing limits, and
the successful rotation invalidating the previous credential.
*/
func TestService_ChangePassword(t *testing.T) {
	service, repo := newTestService(t)
	account := seed(t, repo, "admin@iot.com", "old-password", sec.RoleAdmin)

	// Wrong current password: 401, nothing changes.
	err := service.ChangePassword(context.Background(), account.ID, admins.ChangePasswordInput{
		CurrentPassword: "not-the-password",
		NewPassword:     "new-password",
	})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 401, ae.HTTPStatus)

	// The strength floor lives in the service, not just the HTTP layer:
	// empty and short-but-nonempty replacements are both rejected.
	for _, weak := range []string{"", "abc"} {
		err = service.ChangePassword(context.Background(), account.ID, admins.ChangePasswordInput{
			CurrentPassword: "old-password",
			NewPassword:     weak,
		})
		ae = apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	}

	// Nothing was persisted by the rejected attempts.
	unchanged, err := repo.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, sec.CheckPasswordHash("old-password", unchanged.PasswordHash))

	// Successful rotation.
	require.NoError(t, service.ChangePassword(context.Background(), account.ID, admins.ChangePasswordInput{
		CurrentPassword: "old-password",
		NewPassword:     "new-password",
	}))

	rotated, err := repo.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, sec.CheckPasswordHash("new-password", rotated.PasswordHash))
	assert.False(t, sec.CheckPasswordHash("old-password", rotated.PasswordHash))
}

// # Profile

/*
TestService_UpdateProfile verifies partial updates and the email conflict.
*/
func TestService_UpdateProfile(t *testing.T) {
	service, repo := newTestService(t)
	account := seed(t, repo, "admin@iot.com", "admin123", sec.RoleAdmin)
	seed(t, repo, "taken@iot.com", "admin123", sec.RoleAdmin)

	updated, err := service.UpdateProfile(context.Background(), account.ID, admins.UpdateProfileInput{
		Name: pointer.To("Renamed Admin"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Admin", updated.Name)
	assert.Equal(t, "admin@iot.com", updated.Email) // untouched

	// Switching to an email that belongs to another account conflicts.
	_, err = service.UpdateProfile(context.Background(), account.ID, admins.UpdateProfileInput{
		Email: pointer.To("taken@iot.com"),
	})
	assert.True(t, apperr.IsConflict(err))
}

// # List / Get / Update / Delete

/*
TestService_List verifies pagination counts and the permission gate.
*/
func TestService_List(t *testing.T) {
	service, repo := newTestService(t)
	super := seed(t, repo, "root@iot.com", "admin123", sec.RoleSuperAdmin)
	plain := seed(t, repo, "plain@iot.com", "admin123", sec.RoleAdmin)
	seed(t, repo, "third@iot.com", "admin123", sec.RoleAdmin)

	_, _, err := service.List(context.Background(), plain, 20, 0)
	assertForbiddenRole(t, err)

	accounts, total, err := service.List(context.Background(), super, 2, 0)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
	assert.Equal(t, 3, total)
}

/*
TestService_Update verifies role changes flow through the managed update path.
*/
func TestService_Update(t *testing.T) {
	service, repo := newTestService(t)
	super := seed(t, repo, "root@iot.com", "admin123", sec.RoleSuperAdmin)
	target := seed(t, repo, "target@iot.com", "admin123", sec.RoleAdmin)

	updated, err := service.Update(context.Background(), super, target.ID, admins.UpdateInput{
		Role: pointer.To(sec.RoleSuperAdmin),
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleSuperAdmin, updated.Role)
}

/*
TestService_Delete verifies hard deletion, self-protection, and 404 semantics.
*/
func TestService_Delete(t *testing.T) {
	service, repo := newTestService(t)
	super := seed(t, repo, "root@iot.com", "admin123", sec.RoleSuperAdmin)
	target := seed(t, repo, "target@iot.com", "admin123", sec.RoleAdmin)

	// Self-deletion is rejected.
	err := service.Delete(context.Background(), super, super.ID)
	assert.True(t, apperr.IsConflict(err))

	require.NoError(t, service.Delete(context.Background(), super, target.ID))

	_, err = repo.FindByID(context.Background(), target.ID)
	assert.True(t, apperr.IsNotFound(err))

	// Deleting again is a 404, not idempotent like ban.
	err = service.Delete(context.Background(), super, target.ID)
	assert.True(t, apperr.IsNotFound(err))
}
