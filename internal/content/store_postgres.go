// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

package content

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/beaconcms/beacon/internal/platform/apperr"
	"github.com/beaconcms/beacon/internal/platform/dberr"
)

// entryColumns is the canonical SELECT column list for content.entry rows.
const entryColumns = "id, section, title, slug, body, imageurl, sortorder, createdat, updatedat"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListBySection(context context.Context, section string, limit, offset int) ([]*Entry, int, error) {
	const query = `
		SELECT ` + entryColumns + `
		FROM content.entry
		WHERE section = $1
		ORDER BY sortorder ASC, id ASC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, query, section, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_entries")
	}
	defer rows.Close()

	entries := make([]*Entry, 0)
	for rows.Next() {
		entry := &Entry{}
		if err := scanEntry(rows, entry); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_entry")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_entries_rows")
	}

	const countQuery = "SELECT COUNT(*) FROM content.entry WHERE section = $1"

	var total int
	if err := repository.db.QueryRow(context, countQuery, section).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_entries")
	}

	return entries, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Entry, error) {
	const query = `
		SELECT ` + entryColumns + `
		FROM content.entry
		WHERE id = $1`

	entry := &Entry{}
	if err := scanEntry(repository.db.QueryRow(context, query, id), entry); err != nil {
		return nil, wrapEntryErr(err, "find_entry_by_id")
	}

	return entry, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, section, slug string) (*Entry, error) {
	const query = `
		SELECT ` + entryColumns + `
		FROM content.entry
		WHERE section = $1 AND slug = $2`

	entry := &Entry{}
	if err := scanEntry(repository.db.QueryRow(context, query, section, slug), entry); err != nil {
		return nil, wrapEntryErr(err, "find_entry_by_slug")
	}

	return entry, nil
}

func (repository *PostgresRepository) Create(context context.Context, entry *Entry) error {
	const query = `
		INSERT INTO content.entry (section, title, slug, body, imageurl, sortorder, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	err := repository.db.QueryRow(context, query,
		entry.Section,
		entry.Title,
		entry.Slug,
		entry.Body,
		entry.ImageURL,
		entry.SortOrder,
		entry.CreatedAt,
		entry.UpdatedAt,
	).Scan(&entry.ID)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("An entry with this slug already exists in the section")
		}
		return dberr.Wrap(err, "create_entry")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, entry *Entry) error {
	const query = `
		UPDATE content.entry
		SET section = $2, title = $3, slug = $4, body = $5, imageurl = $6, sortorder = $7, updatedat = $8
		WHERE id = $1`

	entry.UpdatedAt = time.Now()
	tag, err := repository.db.Exec(context, query,
		entry.ID,
		entry.Section,
		entry.Title,
		entry.Slug,
		entry.Body,
		entry.ImageURL,
		entry.SortOrder,
		entry.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("An entry with this slug already exists in the section")
		}
		return dberr.Wrap(err, "update_entry")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Entry")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	const query = "DELETE FROM content.entry WHERE id = $1"

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_entry")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Entry")
	}

	return nil
}

// scanEntry hydrates an entry from a row or rows cursor.
func scanEntry(row pgx.Row, entry *Entry) error {
	return row.Scan(
		&entry.ID,
		&entry.Section,
		&entry.Title,
		&entry.Slug,
		&entry.Body,
		&entry.ImageURL,
		&entry.SortOrder,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
}

// wrapEntryErr maps pgx.ErrNoRows to a domain-specific NotFound.
func wrapEntryErr(err error, action string) error {
	wrapped := dberr.Wrap(err, action)
	if apperr.IsNotFound(wrapped) {
		return apperr.NotFound("Entry")
	}
	return wrapped
}
