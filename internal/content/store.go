// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

package content

import "context"

// Repository defines the persistence contract for content entries.
type Repository interface {
	ListBySection(context context.Context, section string, limit, offset int) ([]*Entry, int, error)
	FindByID(context context.Context, id int64) (*Entry, error)
	FindBySlug(context context.Context, section, slug string) (*Entry, error)
	Create(context context.Context, entry *Entry) error
	Update(context context.Context, entry *Entry) error
	Delete(context context.Context, id int64) error
}
