// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces.
package sec

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Verification Errors

var (
	// ErrInvalidToken marks a token with a bad signature, malformed payload,
	// unexpected algorithm, or unparsable subject.
	ErrInvalidToken = errors.New("sec: invalid token")

	// ErrTokenExpired marks a structurally valid token whose expiry is in the past.
	ErrTokenExpired = errors.New("sec: token expired")
)

// # Token Service

// TokenService issues and verifies HS256-signed identity tokens.
//
// # Why identity only?
//
// The token payload carries ONLY the account id plus timestamps — never the
// role or ban flag. Both are re-resolved from the account record on every
// protected request, so a ban or role change takes effect on the very next
// request even for tokens issued before the change.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService creates a new TokenService.
//
// The symmetric secret comes from process-wide configuration, loaded once at
// startup and immutable thereafter.
func NewTokenService(secret, issuer string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: signing secret must not be empty")
	}
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// TTL returns the fixed lifetime applied to issued tokens.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// IssueToken creates a new signed bearer token for the given account id.
func (service *TokenService) IssueToken(accountID int64) (string, error) {
	currentTime := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(accountID, 10),
		Issuer:    service.issuer,
		IssuedAt:  jwt.NewNumericDate(currentTime),
		ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a token string and
// returns the account id it was issued for.
//
// Failures are classified as [ErrTokenExpired] (expiry in the past) or
// [ErrInvalidToken] (everything else). No clock-skew tolerance is applied
// beyond trusting system time.
func (service *TokenService) VerifyToken(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	accountID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return accountID, nil
}
