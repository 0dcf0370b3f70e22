package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcphub/directory-backend/internal/servers/domain"
)

func (s *Service) List(ctx context.Context) ([]domain.ProjectSummary, error) {
	items, err := s.projects.ListSummaries(ctx)
	if err != nil {
		s.logger(ctx, "list").Error().Err(err).Msg("list projects")
		return nil, &domain.StoreError{Op: "list projects", Err: err}
	}
	if items == nil {
		items = []domain.ProjectSummary{}
	}
	return items, nil
}

// Update rewrites a project's editable fields and marks it created. The
// stored row is re-read for the response; if that read fails the result
// carries only id and title.
func (s *Service) Update(ctx context.Context, p domain.Project) (*domain.Project, error) {
	log := s.logger(ctx, "update")

	p.Canonicalize()
	if p.ID == "" {
		return nil, fmt.Errorf("%w: id", domain.ErrMissingRequiredField)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	p.UpdatedAt = &now
	p.Status = domain.StatusCreated

	if err := s.projects.Update(ctx, &p); err != nil {
		log.Error().Err(err).Str("project_id", p.ID).Msg("update project")
		return nil, &domain.StoreError{Op: "update project", Err: err}
	}

	stored, err := s.projects.Get(ctx, p.ID)
	if err != nil {
		log.Warn().Err(err).Str("project_id", p.ID).Msg("re-read updated project")
		return &domain.Project{ID: p.ID, UUID: p.ID, Title: p.Title}, nil
	}
	return stored, nil
}

// Register inserts a new project under a fresh identifier.
func (s *Service) Register(ctx context.Context, p domain.Project) (*domain.Project, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("%w: name", domain.ErrMissingRequiredField)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	p.ID = s.newID()
	p.UUID = p.ID
	now := s.now().UTC()
	p.CreatedAt = &now
	p.UpdatedAt = &now
	if p.Status == "" {
		p.Status = domain.StatusCreated
	}

	if err := s.projects.Insert(ctx, &p); err != nil {
		s.logger(ctx, "register").Error().Err(err).Msg("insert project")
		return nil, &domain.StoreError{Op: "insert project", Err: err}
	}
	return &p, nil
}
