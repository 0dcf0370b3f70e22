// Package repository declares the record store used by the servers
// service. The postgres subpackage implements it.
package repository

import (
	"context"

	"github.com/mcphub/directory-backend/internal/servers/domain"
)

// ProjectRepository is the mandatory projects table.
type ProjectRepository interface {
	ListAll(ctx context.Context) ([]domain.Project, error)
	// ListSummaries returns id, title, description and created_at, newest first.
	ListSummaries(ctx context.Context) ([]domain.ProjectSummary, error)
	// Get returns domain.ErrNotFound when no row has the id.
	Get(ctx context.Context, id string) (*domain.Project, error)
	Insert(ctx context.Context, p *domain.Project) error
	// Upsert inserts p or replaces the row with the same id.
	Upsert(ctx context.Context, p *domain.Project) error
	// Update overwrites the editable fields, status and updated_at of p.ID.
	Update(ctx context.Context, p *domain.Project) error
	// DeleteByIDs removes the matching rows and reports how many existed.
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}

// ConfigRepository is the optional server_configs table. Read and delete
// report an Outcome so callers can tolerate a missing table.
type ConfigRepository interface {
	ListAll(ctx context.Context) ([]domain.ServerConfig, domain.Outcome, error)
	// Upsert inserts c or replaces the row with the same project_id.
	Upsert(ctx context.Context, c *domain.ServerConfig) error
	DeleteByProjectIDs(ctx context.Context, projectIDs []string) (domain.Outcome, error)
}
