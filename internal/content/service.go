// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

package content

import (
	"context"
	"log/slog"

	"github.com/beaconcms/beacon/internal/platform/validate"
	"github.com/beaconcms/beacon/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListSection(context context.Context, section string, limit, offset int) ([]*Entry, int, error) {
	validator := &validate.Validator{}
	validator.OneOf(FieldSection, section, Sections...)
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	return service.repo.ListBySection(context, section, limit, offset)
}

func (service *Service) GetEntry(context context.Context, id int64) (*Entry, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) GetBySlug(context context.Context, section, entrySlug string) (*Entry, error) {
	validator := &validate.Validator{}
	validator.OneOf(FieldSection, section, Sections...)
	validator.Slug(FieldSlug, entrySlug)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.FindBySlug(context, section, entrySlug)
}

func (service *Service) CreateEntry(context context.Context, entry *Entry) error {
	// Derive the slug from the title unless one was provided explicitly.
	if entry.Slug == "" {
		entry.Slug = slug.From(entry.Title)
	}

	if err := service.validateEntry(entry); err != nil {
		return err
	}

	if err := service.repo.Create(context, entry); err != nil {
		return err
	}

	service.logger.Info("content_entry_created",
		slog.Int64("entry_id", entry.ID),
		slog.String("section", entry.Section),
		slog.String("slug", entry.Slug),
	)
	return nil
}

func (service *Service) UpdateEntry(context context.Context, id int64, entry *Entry) error {
	entry.ID = id

	if entry.Slug == "" {
		entry.Slug = slug.From(entry.Title)
	}

	if err := service.validateEntry(entry); err != nil {
		return err
	}

	if err := service.repo.Update(context, entry); err != nil {
		return err
	}

	service.logger.Info("content_entry_updated", slog.Int64("entry_id", id))
	return nil
}

func (service *Service) DeleteEntry(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("content_entry_deleted", slog.Int64("entry_id", id))
	return nil
}

func (service *Service) validateEntry(entry *Entry) error {
	validator := &validate.Validator{}
	validator.OneOf(FieldSection, entry.Section, Sections...)
	validator.Required(FieldTitle, entry.Title).MaxLen(FieldTitle, entry.Title, 200)
	validator.Slug(FieldSlug, entry.Slug)
	validator.Required(FieldBody, entry.Body)
	validator.Custom(FieldSortOrder, entry.SortOrder < 0, "Must not be negative")

	return validator.Err()
}
