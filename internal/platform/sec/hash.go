// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/beaconcms/beacon/internal/platform/apperr"
)

// maxPasswordBytes is bcrypt's hard input limit. Longer inputs are silently
// truncated by some implementations, so we reject them outright.
const maxPasswordBytes = 72

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// The per-call random salt is embedded in the output, so no external salt
// storage is needed. Empty or oversized input is rejected with a
// VALIDATION_ERROR before any hashing work is done.
func HashPassword(plainTextPassword string) (string, error) {
	if plainTextPassword == "" {
		return "", apperr.ValidationError("Password must not be empty")
	}
	if len(plainTextPassword) > maxPasswordBytes {
		return "", apperr.ValidationError(fmt.Sprintf("Password must not exceed %d bytes", maxPasswordBytes))
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
//
// bcrypt's comparison runs in time independent of where a mismatch occurs.
// Malformed stored hashes never produce an error here — they verify as false.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
