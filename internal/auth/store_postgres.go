// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

// PostgreSQL implementation of the account repository.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, SQLSTATE 23505) are mapped to
// domain-friendly [apperr.AppError] types to avoid leaking storage
// implementation details.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/beaconcms/beacon/internal/platform/apperr"
	"github.com/beaconcms/beacon/internal/platform/dberr"
)

// accountColumns is the canonical SELECT column list for admin.account rows.
const accountColumns = "id, name, email, passwordhash, role, isbanned, createdat, updatedat"

// # Account Repository

// PostgresAccountRepository implements the AccountRepository interface using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

/*
Create persists a new account record into the admin.account table.

Description: Inserts the account in a single statement so that two concurrent
creations with the same email cannot both succeed — the unique constraint is
the final authority, and its violation surfaces as a duplicate-email conflict.

Parameters:
  - context: context.Context
  - account: *Account (Entity to persist; ID and timestamps are assigned)

Returns:
  - error: apperr.Conflict on duplicate email, or connectivity errors
*/
func (repository *PostgresAccountRepository) Create(context context.Context, account *Account) error {
	const query = `
		INSERT INTO admin.account (name, email, passwordhash, role, isbanned, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	err := repository.pool.QueryRow(context, query,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.IsBanned,
		account.CreatedAt,
		account.UpdatedAt,
	).Scan(&account.ID)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Email is already registered")
		}
		return fmt.Errorf("postgres_account_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByEmail retrieves an account record by its unique email address.

Description: Case-sensitive match as stored; used by the login path.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Account: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByEmail(context context.Context, email string) (*Account, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM admin.account
		WHERE email = $1`

	return repository.scanOne(repository.pool.QueryRow(context, query, email), "find_by_email")
}

/*
FindByID retrieves an account record by its unique ID.

Description: Primary key resolution; called on every protected request to
re-resolve role and ban state from the store.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Account: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id int64) (*Account, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM admin.account
		WHERE id = $1`

	return repository.scanOne(repository.pool.QueryRow(context, query, id), "find_by_id")
}

/*
Update persists changes to an account's mutable fields (name, email, role).

Description: Synchronizes the in-memory account state with the database,
refreshing the updatedat timestamp. An email change re-runs into the same
unique constraint as Create.

Parameters:
  - context: context.Context
  - account: *Account

Returns:
  - error: apperr.NotFound, apperr.Conflict on duplicate email, or update failures
*/
func (repository *PostgresAccountRepository) Update(context context.Context, account *Account) error {
	const query = `
		UPDATE admin.account
		SET name = $2, email = $3, role = $4, updatedat = $5
		WHERE id = $1`

	account.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		account.ID,
		account.Name,
		account.Email,
		account.Role,
		account.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Email is already registered")
		}
		return fmt.Errorf("postgres_account_repo_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	return nil
}

/*
UpdatePassword updates only the password hash for a specific account.

Parameters:
  - context: context.Context
  - id: int64
  - newHash: string

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresAccountRepository) UpdatePassword(context context.Context, id int64, newHash string) error {
	const query = `
		UPDATE admin.account
		SET passwordhash = $2, updatedat = $3
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_password_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	return nil
}

/*
SetBanned sets the account's ban flag in a single atomic statement.

Description: The UPDATE is idempotent — setting an already-set flag reports
success. Only a missing row is an error.

Parameters:
  - context: context.Context
  - id: int64
  - banned: bool

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresAccountRepository) SetBanned(context context.Context, id int64, banned bool) error {
	const query = `
		UPDATE admin.account
		SET isbanned = $2, updatedat = $3
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id, banned, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_account_repo_set_banned_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	return nil
}

/*
Delete permanently removes an account row.

Description: Hard deletion, distinct from the ban path. Restricted to
super_admin callers at the service layer.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresAccountRepository) Delete(context context.Context, id int64) error {
	const query = "DELETE FROM admin.account WHERE id = $1"

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	return nil
}

/*
List returns a page of accounts ordered by ID.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Account: Page of accounts
  - error: Retrieval failures
*/
func (repository *PostgresAccountRepository) List(context context.Context, limit, offset int) ([]*Account, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM admin.account
		ORDER BY id ASC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	accounts := make([]*Account, 0)
	for rows.Next() {
		account := &Account{}
		if err := rows.Scan(
			&account.ID,
			&account.Name,
			&account.Email,
			&account.PasswordHash,
			&account.Role,
			&account.IsBanned,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_account_repo_scan_failed: %w", err)
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

/*
Count returns the total number of accounts.

Description: Used by paginated listings and by the one-time bootstrap routine.

Parameters:
  - context: context.Context

Returns:
  - int: Total account count
  - error: Retrieval failures
*/
func (repository *PostgresAccountRepository) Count(context context.Context) (int, error) {
	const query = "SELECT COUNT(*) FROM admin.account"

	var total int
	if err := repository.pool.QueryRow(context, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_account_repo_count_failed: %w", err)
	}

	return total, nil
}

// scanOne hydrates a single account row, mapping pgx.ErrNoRows to NOT_FOUND.
func (repository *PostgresAccountRepository) scanOne(row pgx.Row, action string) (*Account, error) {
	account := &Account{}
	err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.IsBanned,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres_account_repo_%s_failed: %w", action, err)
	}

	return account, nil
}
