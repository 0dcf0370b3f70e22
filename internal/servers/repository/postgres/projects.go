package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/mcphub/directory-backend/internal/servers/domain"
	"github.com/mcphub/directory-backend/internal/servers/repository"
)

type ProjectRepository struct {
	db DBTX
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)

func NewProjectRepository(db DBTX) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `
id, coalesce(uuid, id), coalesce(name, ''), coalesce(title, ''), coalesce(description, ''),
coalesce(url, ''), coalesce(author_name, ''), coalesce(tags, ''), coalesce(category, ''),
coalesce(status, ''), created_at, updated_at`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.UUID, &p.Name, &p.Title, &p.Description,
		&p.URL, &p.AuthorName, &p.Tags, &p.Category,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) ListAll(ctx context.Context) ([]domain.Project, error) {
	q := `select ` + projectColumns + ` from projects order by created_at, id;`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 64)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *ProjectRepository) ListSummaries(ctx context.Context) ([]domain.ProjectSummary, error) {
	const q = `
select id, coalesce(title, ''), coalesce(description, ''), created_at
from projects
order by created_at desc nulls last;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ProjectSummary, 0, 64)
	for rows.Next() {
		var s domain.ProjectSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	q := `select ` + projectColumns + ` from projects where id = $1;`

	p, err := scanProject(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

func (r *ProjectRepository) Insert(ctx context.Context, p *domain.Project) error {
	const q = `
insert into projects (id, uuid, name, title, description, url, author_name, tags, category, status, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`
	_, err := r.db.Exec(ctx, q, projectArgs(p)...)
	return err
}

func (r *ProjectRepository) Upsert(ctx context.Context, p *domain.Project) error {
	const q = `
insert into projects (id, uuid, name, title, description, url, author_name, tags, category, status, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
on conflict (id) do update set
  uuid = excluded.uuid,
  name = excluded.name,
  title = excluded.title,
  description = excluded.description,
  url = excluded.url,
  author_name = excluded.author_name,
  tags = excluded.tags,
  category = excluded.category,
  status = excluded.status,
  created_at = excluded.created_at,
  updated_at = excluded.updated_at;
`
	_, err := r.db.Exec(ctx, q, projectArgs(p)...)
	return err
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	const q = `
update projects set
  name = $2,
  title = $3,
  description = $4,
  url = $5,
  author_name = $6,
  tags = $7,
  category = $8,
  status = $9,
  updated_at = $10
where id = $1;
`
	_, err := r.db.Exec(ctx, q,
		p.ID, p.Name, p.Title, p.Description, p.URL, p.AuthorName, p.Tags, p.Category, p.Status, p.UpdatedAt,
	)
	return err
}

func (r *ProjectRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	const q = `delete from projects where id = any($1);`

	tag, err := r.db.Exec(ctx, q, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func projectArgs(p *domain.Project) []any {
	return []any{
		p.ID, p.UUID, p.Name, p.Title, p.Description,
		p.URL, p.AuthorName, p.Tags, p.Category, p.Status,
		p.CreatedAt, p.UpdatedAt,
	}
}
