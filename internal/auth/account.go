// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

/*
Package auth implements the identity and access management core of Beacon.

It defines the administrative Account entity and the logic for credential
verification, token issuance, and authorization policy.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to administrative identity.
*/
package auth

import (
	"time"

	"github.com/beaconcms/beacon/internal/platform/sec"
	"github.com/beaconcms/beacon/internal/platform/validate"
)

// # Domain Entities

// Account represents one administrative principal of the Beacon backend.
//
// A banned account continues to exist — the ban flag is evaluated on every
// protected request, never cached, so banning takes effect on the next
// request after commit. Deletion is a separate, explicit operation.
type Account struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.Role  `json:"role"`
	IsBanned     bool      `json:"is_banned"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the auth domain.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldRole            = "role"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldAccount         = "account"
	FieldMessage         = "message"
)

// # Credential Policy

// ValidatePassword enforces the minimum strength rule for every path that
// sets a password: non-empty and at least [PasswordMinLength] characters.
// It belongs to the lifecycle operations, not the transport layer, so a
// direct service consumer cannot persist a weaker credential.
//
// The bcrypt 72-byte ceiling is enforced separately by [sec.HashPassword].
func ValidatePassword(field, password string) error {
	v := &validate.Validator{}
	v.Required(field, password).MinLen(field, password, PasswordMinLength)
	return v.Err()
}
