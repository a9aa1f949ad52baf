// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beaconcms/beacon/internal/auth"
	"github.com/beaconcms/beacon/internal/platform/apperr"
	"github.com/beaconcms/beacon/internal/platform/middleware"
	"github.com/beaconcms/beacon/internal/platform/sec"
)

// # Test Doubles

// fakeAccounts resolves account ids from a fixed map.
type fakeAccounts struct {
	byID map[int64]*auth.Account
}

func (f *fakeAccounts) FindByID(_ context.Context, id int64) (*auth.Account, error) {
	account, ok := f.byID[id]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	return account, nil
}

// # Fixtures

type pipelineFixture struct {
	tokens   *sec.TokenService
	accounts *fakeAccounts
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()

	tokens, err := sec.NewTokenService("test-secret", "beaconcms.io", time.Hour)
	require.NoError(t, err)

	return &pipelineFixture{
		tokens:   tokens,
		accounts: &fakeAccounts{byID: make(map[int64]*auth.Account)},
	}
}

func (f *pipelineFixture) addAccount(id int64, role sec.Role, banned bool) string {
	f.accounts.byID[id] = &auth.Account{ID: id, Role: role, IsBanned: banned}

	token, err := f.tokens.IssueToken(id)
	if err != nil {
		panic(err)
	}
	return token
}

// serve runs a request through Authenticate plus the given gates and returns
// the recorder. The terminal handler echoes the resolved account id.
func (f *pipelineFixture) serve(token string, gates ...func(http.Handler) http.Handler) *httptest.ResponseRecorder {
	terminal := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		account := middleware.AccountFrom(request.Context())
		payload := map[string]any{"authenticated": account != nil}
		if account != nil {
			payload["account_id"] = account.ID
		}
		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(payload)
	})

	var handler http.Handler = terminal
	for i := len(gates) - 1; i >= 0; i-- {
		handler = gates[i](handler)
	}
	handler = middleware.Authenticate(f.tokens, f.accounts)(handler)

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) (code, reason string) {
	t.Helper()

	var body struct {
		Code   string `json:"code"`
		Reason string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body.Code, body.Reason
}

// # Authentication

/*
TestAuthenticate_AnonymousPassThrough verifies a missing Authorization header
does not fail at the authentication layer — it fails at RequireAuth.
*/
func TestAuthenticate_AnonymousPassThrough(t *testing.T) {
	fixture := newPipelineFixture(t)

	// No gates: anonymous reaches the terminal handler.
	recorder := fixture.serve("")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"authenticated":false`)

	// RequireAuth gate: anonymous is rejected with 401.
	recorder = fixture.serve("", middleware.RequireAuth)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestAuthenticate_InvalidTokens verifies malformed headers and bad tokens
terminate with 401.
*/
func TestAuthenticate_InvalidTokens(t *testing.T) {
	fixture := newPipelineFixture(t)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage_token", "not-a-jwt"},
		{"empty_bearer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.token == "" {
				// Malformed header: "Bearer" with no token.
				request := httptest.NewRequest(http.MethodGet, "/protected", nil)
				request.Header.Set("Authorization", "Bearer")
				recorder := httptest.NewRecorder()
				handler := middleware.Authenticate(fixture.tokens, fixture.accounts)(
					http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}),
				)
				handler.ServeHTTP(recorder, request)
				assert.Equal(t, http.StatusUnauthorized, recorder.Code)
				return
			}

			recorder := fixture.serve(tt.token, middleware.RequireAuth)
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		})
	}
}

/*
TestAuthenticate_ExpiredToken verifies expired tokens yield 401.
*/
func TestAuthenticate_ExpiredToken(t *testing.T) {
	fixture := newPipelineFixture(t)

	expiredTokens, err := sec.NewTokenService("test-secret", "beaconcms.io", -time.Minute)
	require.NoError(t, err)

	token, err := expiredTokens.IssueToken(1)
	require.NoError(t, err)

	recorder := fixture.serve(token, middleware.RequireAuth)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestAuthenticate_DeletedAccount verifies a valid token for a since-deleted
account is treated as unauthenticated, not as a server error.
*/
func TestAuthenticate_DeletedAccount(t *testing.T) {
	fixture := newPipelineFixture(t)

	// Issue a token for an id the account source does not know.
	token, err := fixture.tokens.IssueToken(999)
	require.NoError(t, err)

	recorder := fixture.serve(token, middleware.RequireAuth)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestAuthenticate_AttachesAccount verifies the resolved account reaches the
terminal handler through the context.
*/
func TestAuthenticate_AttachesAccount(t *testing.T) {
	fixture := newPipelineFixture(t)
	token := fixture.addAccount(7, sec.RoleAdmin, false)

	recorder := fixture.serve(token, middleware.Protected(sec.RoleAdmin))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"account_id":7`)
}

// # Gate Ordering

/*
TestProtected_BanPrecedesRole verifies a banned caller receives the ban 403
even when the role gate would also fail — the ordering is observable.
*/
func TestProtected_BanPrecedesRole(t *testing.T) {
	fixture := newPipelineFixture(t)

	// Banned plain admin hitting a super_admin surface: both gates would
	// reject, the ban reason must win.
	token := fixture.addAccount(3, sec.RoleAdmin, true)

	recorder := fixture.serve(token, middleware.Protected(sec.RoleSuperAdmin))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	code, reason := decodeError(t, recorder)
	assert.Equal(t, "FORBIDDEN", code)
	assert.Equal(t, apperr.ReasonBanned, reason)
}

/*
TestProtected_InsufficientRole verifies an unbanned admin below the minimum
role receives the role 403.
*/
func TestProtected_InsufficientRole(t *testing.T) {
	fixture := newPipelineFixture(t)
	token := fixture.addAccount(4, sec.RoleAdmin, false)

	recorder := fixture.serve(token, middleware.Protected(sec.RoleSuperAdmin))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	code, reason := decodeError(t, recorder)
	assert.Equal(t, "FORBIDDEN", code)
	assert.Equal(t, apperr.ReasonInsufficientRole, reason)
}

/*
TestProtected_SuperAdminPasses verifies the happy path through all gates.
*/
func TestProtected_SuperAdminPasses(t *testing.T) {
	fixture := newPipelineFixture(t)
	token := fixture.addAccount(5, sec.RoleSuperAdmin, false)

	recorder := fixture.serve(token, middleware.Protected(sec.RoleSuperAdmin))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestProtected_AnonymousGets401 verifies an anonymous caller is rejected by
the authentication gate, never reaching ban or role decisions.
*/
func TestProtected_AnonymousGets401(t *testing.T) {
	fixture := newPipelineFixture(t)

	recorder := fixture.serve("", middleware.Protected(sec.RoleSuperAdmin))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	code, _ := decodeError(t, recorder)
	assert.Equal(t, "UNAUTHORIZED", code)
}

// # Context Accessors

/*
TestAccountFrom verifies nil-safety of the context accessor.
*/
func TestAccountFrom(t *testing.T) {
	assert.Nil(t, middleware.AccountFrom(context.Background()))

	account := &auth.Account{ID: 9}
	ctx := middleware.WithAccount(context.Background(), account)
	assert.Equal(t, account, middleware.AccountFrom(ctx))
}
