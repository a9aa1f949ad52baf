// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

/*
Package admins provides the HTTP delivery layer for administrative accounts.

It implements two surfaces with different minimum roles:

  - Self-service: profile retrieval, profile updates, password rotation.
    Available to every authenticated, non-banned admin.
  - Management: provisioning, listing, banning, unbanning, and deleting
    accounts. Restricted to super_admin.

# Security

All endpoints require the full gate chain (authenticate, ban check, role
check) applied by the router. The service layer re-checks the role for the
management operations.
*/
package admins

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/beaconcms/beacon/internal/auth"
	"github.com/beaconcms/beacon/internal/platform/middleware"
	requestutil "github.com/beaconcms/beacon/internal/platform/request"
	"github.com/beaconcms/beacon/internal/platform/respond"
	"github.com/beaconcms/beacon/internal/platform/sec"
	"github.com/beaconcms/beacon/internal/platform/validate"
	"github.com/beaconcms/beacon/pkg/pagination"
)

// Handler implements the HTTP layer for administrative account management.
type Handler struct {
	adminService *Service
}

// NewHandler constructs a new admins [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{adminService: service}
}

// ProfileRoutes returns the self-service endpoints (minimum role: admin).
func (handler *Handler) ProfileRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/profile", handler.getProfile)
	router.Put("/profile", handler.updateProfile)
	router.Post("/change-password", handler.changePassword)

	return router
}

// AccountRoutes returns the management endpoints (minimum role: super_admin).
func (handler *Handler) AccountRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)
	router.Patch("/{id}/ban", handler.ban)
	router.Patch("/{id}/unban", handler.unban)

	return router
}

// # Self-Service Endpoints

/*
GET /api/v1/admin/profile.

Description: Retrieves the full account record of the authenticated caller.

Response:
  - 200: Account: Fully hydrated profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	caller := middleware.AccountFrom(request.Context())

	account, err := handler.adminService.GetProfile(request.Context(), caller.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

// updateProfileRequest defines the expected JSON payload for profile updates.
type updateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

/*
PUT /api/v1/admin/profile.

Description: Applies partial updates to the caller's own name and email.

Request:
  - body: updateProfileRequest (Partial JSON)

Response:
  - 200: Account: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	caller := middleware.AccountFrom(request.Context())

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.Required(auth.FieldName, *input.Name).MaxLen(auth.FieldName, *input.Name, 120)
	}
	if input.Email != nil {
		v.Required(auth.FieldEmail, *input.Email).Email(auth.FieldEmail, *input.Email)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.adminService.UpdateProfile(request.Context(), caller.ID, UpdateProfileInput{
		Name:  input.Name,
		Email: input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

// changePasswordRequest carries the current and replacement passwords.
type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

/*
POST /api/v1/admin/change-password.

Description: Rotates the caller's password. The current password must verify
before the change is applied; tokens issued earlier remain valid until expiry.

Request:
  - body: changePasswordRequest

Response:
  - 204: No Content: Password rotated
  - 400: Validation: New password below minimum length
  - 401: ErrUnauthorized: Current password incorrect
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	caller := middleware.AccountFrom(request.Context())

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(auth.FieldCurrentPassword, input.CurrentPassword)
	v.Required(auth.FieldNewPassword, input.NewPassword).
		MinLen(auth.FieldNewPassword, input.NewPassword, auth.PasswordMinLength)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err := handler.adminService.ChangePassword(request.Context(), caller.ID, ChangePasswordInput{
		CurrentPassword: input.CurrentPassword,
		NewPassword:     input.NewPassword,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Management Endpoints

// createRequest defines the payload for provisioning a new account.
type createRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

/*
POST /api/v1/admin/admins.

Description: Provisions a new administrative account. The role defaults to
admin when omitted.

Request:
  - body: createRequest

Response:
  - 201: Account: The created account
  - 400: Validation: Invalid input data
  - 403: ErrForbidden: Caller below super_admin
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	caller := middleware.AccountFrom(request.Context())

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(auth.FieldName, input.Name).MaxLen(auth.FieldName, input.Name, 120)
	v.Required(auth.FieldEmail, input.Email).Email(auth.FieldEmail, input.Email)
	v.Required(auth.FieldPassword, input.Password).
		MinLen(auth.FieldPassword, input.Password, auth.PasswordMinLength)
	if input.Role != "" {
		v.OneOf(auth.FieldRole, input.Role, string(sec.RoleAdmin), string(sec.RoleSuperAdmin))
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.adminService.Create(request.Context(), caller, CreateInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     sec.Role(input.Role),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, account)
}

/*
GET /api/v1/admin/admins.

Description: Lists administrative accounts with standard pagination.

Request:
  - query: page, limit

Response:
  - 200: []Account + pagination metadata
  - 403: ErrForbidden: Caller below super_admin
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	caller := middleware.AccountFrom(request.Context())
	params := pagination.FromRequest(request)

	accounts, total, err := handler.adminService.List(request.Context(), caller, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, accounts, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/admin/admins/{id}.

Description: Retrieves a single administrative account.

Request:
  - id: int64

Response:
  - 200: Account
  - 403: ErrForbidden: Caller below super_admin
  - 404: ErrNotFound: No such account
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	caller := middleware.AccountFrom(request.Context())

	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.adminService.Get(request.Context(), caller, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

// updateRequest defines the mutable fields of a managed account.
type updateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

/*
PUT /api/v1/admin/admins/{id}.

Description: Applies partial updates to a managed account, including its role.

Request:
  - id: int64
  - body: updateRequest (Partial JSON)

Response:
  - 200: Account: The updated account
  - 403: ErrForbidden: Caller below super_admin
  - 404: ErrNotFound: No such account
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	caller := middleware.AccountFrom(request.Context())

	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.Required(auth.FieldName, *input.Name).MaxLen(auth.FieldName, *input.Name, 120)
	}
	if input.Email != nil {
		v.Required(auth.FieldEmail, *input.Email).Email(auth.FieldEmail, *input.Email)
	}
	if input.Role != nil {
		v.OneOf(auth.FieldRole, *input.Role, string(sec.RoleAdmin), string(sec.RoleSuperAdmin))
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	serviceInput := UpdateInput{Name: input.Name, Email: input.Email}
	if input.Role != nil {
		role := sec.Role(*input.Role)
		serviceInput.Role = &role
	}

	account, err := handler.adminService.Update(request.Context(), caller, id, serviceInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

/*
PATCH /api/v1/admin/admins/{id}/ban.

Description: Sets the target account's ban flag. Idempotent.

Request:
  - id: int64

Response:
  - 200: message
  - 403: ErrForbidden: Caller below super_admin
  - 404: ErrNotFound: No such account
  - 409: ErrConflict: Self-ban rejected
*/
func (handler *Handler) ban(writer http.ResponseWriter, request *http.Request) {
	caller := middleware.AccountFrom(request.Context())

	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.adminService.Ban(request.Context(), caller, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{auth.FieldMessage: "Account banned"})
}

/*
PATCH /api/v1/admin/admins/{id}/unban.

Description: Clears the target account's ban flag. Idempotent.

Request:
  - id: int64

Response:
  - 200: message
  - 403: ErrForbidden: Caller below super_admin
  - 404: ErrNotFound: No such account
*/
func (handler *Handler) unban(writer http.ResponseWriter, request *http.Request) {
	caller := middleware.AccountFrom(request.Context())

	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.adminService.Unban(request.Context(), caller, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{auth.FieldMessage: "Account unbanned"})
}

/*
DELETE /api/v1/admin/admins/{id}.

Description: Permanently removes an administrative account. Outstanding tokens
for the deleted account fail on their next use.

Request:
  - id: int64

Response:
  - 204: No Content: Account removed
  - 403: ErrForbidden: Caller below super_admin
  - 404: ErrNotFound: No such account
  - 409: ErrConflict: Self-delete rejected
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	caller := middleware.AccountFrom(request.Context())

	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.adminService.Delete(request.Context(), caller, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
