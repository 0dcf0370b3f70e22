package postgres

import (
	"context"

	"github.com/mcphub/directory-backend/internal/servers/domain"
	"github.com/mcphub/directory-backend/internal/servers/repository"
)

type ConfigRepository struct {
	db DBTX
}

var _ repository.ConfigRepository = (*ConfigRepository)(nil)

func NewConfigRepository(db DBTX) *ConfigRepository {
	return &ConfigRepository{db: db}
}

func (r *ConfigRepository) ListAll(ctx context.Context) ([]domain.ServerConfig, domain.Outcome, error) {
	const q = `
select project_id, config, created_at, updated_at
from server_configs
order by project_id;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, outcomeOf(err), err
	}
	defer rows.Close()

	out := make([]domain.ServerConfig, 0, 64)
	for rows.Next() {
		var (
			c   domain.ServerConfig
			raw []byte
		)
		if err := rows.Scan(&c.ProjectID, &raw, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, domain.OutcomeError, err
		}
		c.Config = raw
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, outcomeOf(err), err
	}
	return out, domain.OutcomeOK, nil
}

func (r *ConfigRepository) Upsert(ctx context.Context, c *domain.ServerConfig) error {
	const q = `
insert into server_configs (project_id, config, created_at, updated_at)
values ($1, $2, $3, $4)
on conflict (project_id) do update set
  config = excluded.config,
  created_at = excluded.created_at,
  updated_at = excluded.updated_at;
`
	var payload []byte
	if len(c.Config) > 0 {
		payload = []byte(c.Config)
	}
	_, err := r.db.Exec(ctx, q, c.ProjectID, payload, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *ConfigRepository) DeleteByProjectIDs(ctx context.Context, projectIDs []string) (domain.Outcome, error) {
	const q = `delete from server_configs where project_id = any($1);`

	_, err := r.db.Exec(ctx, q, projectIDs)
	return outcomeOf(err), err
}
