// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/beaconcms/beacon/internal/platform/request"
	"github.com/beaconcms/beacon/internal/platform/respond"
	"github.com/beaconcms/beacon/pkg/pagination"
)

// Handler implements the HTTP layer for site content.
type Handler struct {
	contentService *Service
}

// NewHandler constructs a new content [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{contentService: service}
}

// PublicRoutes returns the anonymous read-only endpoints consumed by the site.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{section}", handler.listSection)
	router.Get("/{section}/{slug}", handler.getBySlug)

	return router
}

// AdminRoutes returns the mutation endpoints (minimum role: admin).
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

// # Public Endpoints

/*
GET /api/v1/content/{section}.

Description: Lists the entries of one section ordered by sort_order, with
standard pagination. Sections are a closed set; unknown ones are rejected.

Response:
  - 200: []Entry + pagination metadata
  - 400: Validation: Unknown section
*/
func (handler *Handler) listSection(writer http.ResponseWriter, request *http.Request) {
	section := requestutil.Param(request, "section")
	params := pagination.FromRequest(request)

	entries, total, err := handler.contentService.ListSection(request.Context(), section, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/content/{section}/{slug}.

Description: Retrieves a single entry by its section-scoped slug.

Response:
  - 200: Entry
  - 404: ErrNotFound: No such entry
*/
func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	section := requestutil.Param(request, "section")
	entrySlug := requestutil.Param(request, "slug")

	entry, err := handler.contentService.GetBySlug(request.Context(), section, entrySlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

// # Admin Endpoints

// entryRequest is the JSON payload for creating or replacing an entry.
type entryRequest struct {
	Section   string  `json:"section"`
	Title     string  `json:"title"`
	Slug      string  `json:"slug"`
	Body      string  `json:"body"`
	ImageURL  *string `json:"image_url"`
	SortOrder int     `json:"sort_order"`
}

func (r entryRequest) toEntry() *Entry {
	return &Entry{
		Section:   r.Section,
		Title:     r.Title,
		Slug:      r.Slug,
		Body:      r.Body,
		ImageURL:  r.ImageURL,
		SortOrder: r.SortOrder,
	}
}

/*
POST /api/v1/admin/content.

Description: Creates a new entry. The slug is derived from the title when
omitted.

Response:
  - 201: Entry: The created entry
  - 400: Validation: Invalid input data
  - 409: ErrConflict: Slug already used within the section
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input entryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry := input.toEntry()
	if err := handler.contentService.CreateEntry(request.Context(), entry); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

/*
GET /api/v1/admin/content/{id}.

Description: Retrieves a single entry by numeric ID for editing.

Response:
  - 200: Entry
  - 404: ErrNotFound: No such entry
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.contentService.GetEntry(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

/*
PUT /api/v1/admin/content/{id}.

Description: Replaces an entry's content.

Response:
  - 200: Entry: The updated entry
  - 400: Validation: Invalid input data
  - 404: ErrNotFound: No such entry
  - 409: ErrConflict: Slug already used within the section
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input entryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry := input.toEntry()
	if err := handler.contentService.UpdateEntry(request.Context(), id, entry); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

/*
DELETE /api/v1/admin/content/{id}.

Description: Permanently removes an entry.

Response:
  - 204: No Content: Entry removed
  - 404: ErrNotFound: No such entry
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.contentService.DeleteEntry(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
