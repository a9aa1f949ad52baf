// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

// Authentication and authorization gates for the request pipeline.
//
// # Pipeline
//
// Every protected request passes an ordered chain of gates, terminal at the
// first failure:
//
//	Authenticate → RequireAuth → RejectBanned → RequireRole(min)
//
// The order is load-bearing: an unauthenticated or banned caller must never
// reach a role decision. [Protected] composes the gates in this fixed order.
//
// No state is retained between requests; the pipeline is purely per-request
// and reentrant.

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/beaconcms/beacon/internal/auth"
	"github.com/beaconcms/beacon/internal/platform/apperr"
	"github.com/beaconcms/beacon/internal/platform/ctxkey"
	"github.com/beaconcms/beacon/internal/platform/respond"
	"github.com/beaconcms/beacon/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify bearer tokens.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing us to inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (int64, error)
}

// AccountSource resolves a verified account id to its current record.
//
// The token carries identity only — role and ban state are re-read from the
// store on every request, so privilege changes take effect immediately.
type AccountSource interface {
	FindByID(ctx context.Context, id int64) (*auth.Account, error)
}

// Authenticate extracts and verifies the bearer token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous (RequireAuth gates later).
//  3. If present, verify the token via [TokenVerifier]; bad signature,
//     malformed payload, and expiry all terminate with 401.
//  4. Re-resolve the account record via [AccountSource]; a token for a
//     deleted account terminates with 401, not a server error.
//  5. Inject the resolved [*auth.Account] into the request context.
func Authenticate(verifier TokenVerifier, accounts AccountSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			accountID, err := verifier.VerifyToken(parts[1])
			if err != nil {
				if errors.Is(err, sec.ErrTokenExpired) {
					respond.Error(writer, request, apperr.Unauthorized("Token has expired"))
					return
				}
				respond.Error(writer, request, apperr.Unauthorized("Invalid token"))
				return
			}

			// ── 4. Account Resolution ─────────────────────────────────────────
			account, err := accounts.FindByID(request.Context(), accountID)
			if err != nil {
				if apperr.IsNotFound(err) {
					respond.Error(writer, request, apperr.Unauthorized("Account no longer exists"))
					return
				}
				respond.Error(writer, request, err)
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := WithAccount(request.Context(), account)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if err := auth.RequireAuthenticated(AccountFrom(request.Context())); err != nil {
			respond.Error(writer, request, err)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RejectBanned blocks requests from banned accounts with a 403 (reason "banned").
//
// # Usage
//
// Must be registered AFTER [RequireAuth] and BEFORE any role gate, so that a
// banned caller never reaches a role decision.
func RejectBanned(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if err := auth.RequireNotBanned(AccountFrom(request.Context())); err != nil {
			respond.Error(writer, request, err)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests whose account does not meet the minimum role.
//
// # Usage
//
// Must be registered AFTER [RejectBanned]. Prefer [Protected], which enforces
// the gate ordering by construction.
func RequireRole(minRole sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if err := auth.RequireMinRole(AccountFrom(request.Context()), minRole); err != nil {
				respond.Error(writer, request, err)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// Protected composes the authorization gates in their required order:
// authentication, then ban check, then role check.
//
// Routes should use this instead of stacking the gates manually — it makes
// the ordering invariant impossible to get wrong at a call site.
func Protected(minRole sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RequireAuth(RejectBanned(RequireRole(minRole)(next)))
	}
}

// # Context Accessors

// WithAccount returns a new context with the resolved account attached.
func WithAccount(ctx context.Context, account *auth.Account) context.Context {
	return context.WithValue(ctx, ctxkey.KeyAccount, account)
}

// AccountFrom retrieves the resolved [*auth.Account] from the [context.Context].
//
// # Returns
//   - The authenticated account, or nil for anonymous requests.
func AccountFrom(ctx context.Context) *auth.Account {
	account, ok := ctx.Value(ctxkey.KeyAccount).(*auth.Account)
	if !ok {
		return nil
	}
	return account
}
