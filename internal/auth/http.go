// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

/*
HTTP delivery layer for authentication.

The handler acts as a thin mediation layer between the web and the auth
service:
  - Protocol: Standard RESTful JSON interface.
  - Security: Issues the bearer token returned at login.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/beaconcms/beacon/internal/platform/request"
	"github.com/beaconcms/beacon/internal/platform/respond"
	"github.com/beaconcms/beacon/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /login : Authenticates and returns a bearer token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/login", handler.login)

	return router
}

// # Request Payloads

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Login authenticates an administrative account and returns a bearer token.

POST /api/v1/auth/login

Description: Verifies credentials and issues a signed identity token with a
fixed 24h expiry. The response is identical for unknown emails and wrong
passwords.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: Access token, token type, expiry, and account profile
  - 401: ErrUnauthorized: Invalid credentials
  - 429: Rate limited after repeated failures
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Email:     input.Email,
		Password:  input.Password,
		IPAddress: clientIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldAccessToken: result.AccessToken,
		FieldTokenType:   "Bearer",
		FieldExpiresIn:   int64(result.ExpiresIn / time.Second),
		FieldAccount:     result.Account,
	})
}

// clientIP derives the throttle key from the connection's remote address.
//
// X-Real-IP and X-Forwarded-For are deliberately ignored here: those headers
// are client-controlled, so rotating spoofed values would let an attacker
// dodge the per-IP login throttle.
func clientIP(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
