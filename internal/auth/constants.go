// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a bearer token remains valid.
	// There is no server-side revocation list: expiry is the sole
	// deactivation mechanism, which is why ban state is re-checked from
	// the account record on every request instead of being carried in
	// the token.
	AccessTokenTTL = 24 * time.Hour

	// PasswordMinLength is the minimum accepted password length for any
	// credential change or account creation.
	PasswordMinLength = 8

	// MaxLoginAttempts is how many failed logins a client may make per
	// throttle window before being rejected with 429.
	MaxLoginAttempts = 10

	// LoginAttemptWindow is the TTL of the Redis login-attempt counter.
	LoginAttemptWindow = 15 * time.Minute
)
