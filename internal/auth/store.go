// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

package auth

import (
	"context"
)

// # Account Data Access

// AccountRepository defines the data access contract for administrative accounts.
//
// The store is the sole arbiter of consistency: email uniqueness is enforced
// by its constraint, and a violation surfaces as a client-safe CONFLICT.
type AccountRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*Account, error)

	/*
		FindByEmail returns the account with the given email.

		The match is case-sensitive as stored.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*Account, error)

	/*
		Create persists a brand-new account and assigns its ID.

		Parameters:
		  - context: context.Context
		  - account: *Account

		Returns:
		  - error: apperr.Conflict on duplicate email, or persistence failures
	*/
	Create(context context.Context, account *Account) error

	/*
		Update persists changes to the mutable fields (name, email, role).

		Parameters:
		  - context: context.Context
		  - account: *Account

		Returns:
		  - error: apperr.NotFound, apperr.Conflict on duplicate email,
		    or persistence failures
	*/
	Update(context context.Context, account *Account) error

	/*
		UpdatePassword replaces only the account's password hash.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - newHash: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	UpdatePassword(context context.Context, id int64, newHash string) error

	/*
		SetBanned sets the ban flag. The UPDATE is idempotent: setting an
		already-set flag succeeds without error.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - banned: bool

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	SetBanned(context context.Context, id int64, banned bool) error

	/*
		Delete permanently removes the account row.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Delete(context context.Context, id int64) error

	/*
		List returns a page of accounts ordered by ID.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*Account: Page of accounts
		  - error: Database retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]*Account, error)

	/*
		Count returns the total number of accounts.

		Parameters:
		  - context: context.Context

		Returns:
		  - int: Total account count
		  - error: Database retrieval failures
	*/
	Count(context context.Context) (int, error)
}

// # Login Throttling

// LoginThrottle tracks failed login attempts per client in volatile storage.
type LoginThrottle interface {

	/*
		Hit increments the attempt counter for the given key and returns the
		new count. The counter expires after the throttle window.

		Parameters:
		  - context: context.Context
		  - key: string (client identity, e.g. "email|ip")

		Returns:
		  - int64: Attempt count within the current window
		  - error: Storage failures
	*/
	Hit(context context.Context, key string) (int64, error)

	/*
		Clear removes the attempt counter after a successful login.

		Parameters:
		  - context: context.Context
		  - key: string

		Returns:
		  - error: Storage failures
	*/
	Clear(context context.Context, key string) error
}
