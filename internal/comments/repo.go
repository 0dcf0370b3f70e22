package comments

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Comment struct {
	ID          string    `json:"id"`
	ProjectUUID string    `json:"project_uuid"`
	Author      string    `json:"author"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) List(ctx context.Context, projectUUID string) ([]Comment, error) {
	const q = `
select id::text, project_uuid, author, text, created_at
from comments
where project_uuid = $1
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, projectUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Comment, 0, 16)
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.ProjectUUID, &c.Author, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, projectUUID, author, text string) (*Comment, error) {
	const q = `
insert into comments (project_uuid, author, text)
values ($1, $2, $3)
returning id::text, project_uuid, author, text, created_at;
`
	var c Comment
	err := r.db.QueryRow(ctx, q, projectUUID, author, text).
		Scan(&c.ID, &c.ProjectUUID, &c.Author, &c.Text, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
