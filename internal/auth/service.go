// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/beaconcms/beacon/internal/platform/apperr"
	"github.com/beaconcms/beacon/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing signed identity tokens.
type TokenProvider interface {
	// IssueToken creates a signed bearer token carrying the account id.
	//
	// # Parameters
	//   - accountID: The ID of the account.
	//
	// # Returns
	//   - A signed token string, or an error if signing fails.
	IssueToken(accountID int64) (string, error)

	// TTL returns the fixed lifetime applied to issued tokens.
	TTL() time.Duration
}

// Service implements the authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, login,
// or bootstrap logic must be reviewed by the security team.
type Service struct {
	accountRepository AccountRepository
	loginThrottle     LoginThrottle
	tokenProvider     TokenProvider
	logger            *slog.Logger
}

// NewService constructs a new [Service] with the necessary dependencies.
func NewService(
	accountRepo AccountRepository,
	throttle LoginThrottle,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		accountRepository: accountRepo,
		loginThrottle:     throttle,
		tokenProvider:     tokenProv,
		logger:            logger,
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
}

// LoginResult represents a successfully issued bearer credential.
type LoginResult struct {
	AccessToken string
	ExpiresIn   time.Duration
	Account     *Account
}

/*
Login validates credentials and issues a signed bearer token.

Description: Looks up the account by email and performs a constant-time
password comparison. An unknown email and a wrong password both produce the
same generic 401 so the response never reveals which factor failed (account
enumeration defense).

The ban flag is intentionally NOT checked here: a banned account may still
log in, but every protected request re-resolves the account record and is
rejected by the ban gate. This keeps ban enforcement in exactly one place.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Transport-ready token and account
  - err: Unauthorized, RateLimited, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {

	// Brute-force throttle keyed by email and client IP.
	throttleKey := input.Email + "|" + input.IPAddress
	attempts, err := service.loginThrottle.Hit(context, throttleKey)
	if err != nil {
		return nil, fmt.Errorf("auth_service_throttle_failed: %w", err)
	}

	if attempts > MaxLoginAttempts {
		service.logger.Warn("login_throttled", slog.String("ip", input.IPAddress))
		return nil, apperr.RateLimited("Too many login attempts. Try again later.")
	}

	// If the email doesn't resolve, fail with the generic message.
	account, err := service.accountRepository.FindByEmail(context, input.Email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	// Constant-time password comparison via bcrypt.
	if !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Successful login resets the throttle window.
	_ = service.loginThrottle.Clear(context, throttleKey)

	token, err := service.tokenProvider.IssueToken(account.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	service.logger.Info("login_succeeded", slog.Int64("account_id", account.ID))

	return &LoginResult{
		AccessToken: token,
		ExpiresIn:   service.tokenProvider.TTL(),
		Account:     account,
	}, nil
}

// # Bootstrap

// BootstrapInput holds the credentials for the one-time default account.
type BootstrapInput struct {
	Name     string
	Email    string
	Password string
}

/*
Bootstrap creates the default account if and only if no accounts exist.

Description: Runs once at startup, after migrations. The default account is
created with the super_admin role — every other creation path requires a
super_admin caller, so bootstrapping a plain admin would leave the system
without any way to manage accounts.

Parameters:
  - context: context.Context
  - input: BootstrapInput

Returns:
  - err: Hashing or storage failures
*/
func (service *Service) Bootstrap(context context.Context, input BootstrapInput) error {
	total, err := service.accountRepository.Count(context)
	if err != nil {
		return fmt.Errorf("auth_service_bootstrap_count_failed: %w", err)
	}

	if total > 0 {
		return nil
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return fmt.Errorf("auth_service_bootstrap_hash_failed: %w", err)
	}

	account := &Account{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleSuperAdmin,
		IsBanned:     false,
	}

	if err := service.accountRepository.Create(context, account); err != nil {
		// A concurrent replica may have bootstrapped first; the store's
		// uniqueness constraint decides, and losing the race is not an error.
		if apperr.IsConflict(err) {
			return nil
		}
		return fmt.Errorf("auth_service_bootstrap_create_failed: %w", err)
	}

	service.logger.Info("bootstrap_account_created",
		slog.Int64("account_id", account.ID),
		slog.String("role", string(account.Role)),
	)

	return nil
}
