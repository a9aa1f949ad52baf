// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

// Package pagination implements page-based navigation for API list
// endpoints: parsing the "page" and "limit" query parameters and building
// the metadata block of the response envelope.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	defaultPage  = 1
	defaultLimit = 20

	// maxLimit caps the page size so a single request cannot drain a table.
	maxLimit = 100
)

// Params holds the parsed page and limit of one list request.
type Params struct {
	Page  int
	Limit int
}

// Offset converts the 1-indexed page into a SQL OFFSET.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination block included in list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta derives the page count from the total and builds the metadata block.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses "page" and "limit" from the query string. Missing,
// malformed, non-positive, or oversized values fall back to the defaults.
func FromRequest(r *http.Request) Params {
	params := Params{Page: defaultPage, Limit: defaultLimit}

	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page >= 1 {
		params.Page = page
	}

	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit >= 1 && limit <= maxLimit {
		params.Limit = limit
	}

	return params
}
