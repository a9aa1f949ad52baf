// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

/*
Package content manages the editable sections of the marketing site.

Every piece of site copy is an [Entry] belonging to a fixed section (hero,
feature, event, team, testimonial, timeline). The public site reads entries
anonymously; all mutations go through the authenticated admin surface.
*/
package content

import "time"

// # Sections

const (
	SectionHero        = "hero"
	SectionFeature     = "feature"
	SectionEvent       = "event"
	SectionTeam        = "team"
	SectionTestimonial = "testimonial"
	SectionTimeline    = "timeline"
)

// Sections enumerates the valid section identifiers.
var Sections = []string{
	SectionHero,
	SectionFeature,
	SectionEvent,
	SectionTeam,
	SectionTestimonial,
	SectionTimeline,
}

// # Domain Entities

// Entry is one editable block of site content.
//
// The slug is unique within a section, not globally — "launch" can exist as
// both an event and a timeline item.
type Entry struct {
	ID        int64     `json:"id"`
	Section   string    `json:"section"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Body      string    `json:"body"`
	ImageURL  *string   `json:"image_url,omitempty"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldSection   = "section"
	FieldTitle     = "title"
	FieldSlug      = "slug"
	FieldBody      = "body"
	FieldImageURL  = "image_url"
	FieldSortOrder = "sort_order"
)
