package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/mcphub/directory-backend/config"
	"github.com/mcphub/directory-backend/internal/servers/domain"
)

// stubProjectRepository is an in-memory projects table keyed by id.
type stubProjectRepository struct {
	mu        sync.Mutex
	rows      map[string]domain.Project
	failOn    map[string]error
	listErr   error
	getErr    error
	deleteErr error
	calls     int
	deleted   [][]string
}

func newStubProjects() *stubProjectRepository {
	return &stubProjectRepository{rows: map[string]domain.Project{}, failOn: map[string]error{}}
}

func (r *stubProjectRepository) ListAll(context.Context) ([]domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.Project, 0, len(r.rows))
	for _, p := range r.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProjectRepository) ListSummaries(context.Context) ([]domain.ProjectSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.ProjectSummary, 0, len(r.rows))
	for _, p := range r.rows {
		out = append(out, domain.ProjectSummary{ID: p.ID, Title: p.Title, Description: p.Description, CreatedAt: p.CreatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(*out[j].CreatedAt) })
	return out, nil
}

func (r *stubProjectRepository) Get(_ context.Context, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.getErr != nil {
		return nil, r.getErr
	}
	p, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *stubProjectRepository) Insert(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if _, ok := r.rows[p.ID]; ok {
		return fmt.Errorf("duplicate key %s", p.ID)
	}
	r.rows[p.ID] = *p
	return nil
}

func (r *stubProjectRepository) Upsert(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if err, ok := r.failOn[p.ID]; ok {
		return err
	}
	r.rows[p.ID] = *p
	return nil
}

func (r *stubProjectRepository) Update(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if err, ok := r.failOn[p.ID]; ok {
		return err
	}
	cur, ok := r.rows[p.ID]
	if !ok {
		return nil
	}
	cur.Name, cur.Title, cur.Description = p.Name, p.Title, p.Description
	cur.URL, cur.AuthorName, cur.Tags, cur.Category = p.URL, p.AuthorName, p.Tags, p.Category
	cur.Status, cur.UpdatedAt = p.Status, p.UpdatedAt
	r.rows[p.ID] = cur
	return nil
}

func (r *stubProjectRepository) DeleteByIDs(_ context.Context, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.deleted = append(r.deleted, ids)
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	var n int64
	for _, id := range ids {
		if _, ok := r.rows[id]; ok {
			delete(r.rows, id)
			n++
		}
	}
	return n, nil
}

// stubConfigRepository models the optional table. missing simulates an
// absent table; err simulates any other failure.
type stubConfigRepository struct {
	mu      sync.Mutex
	rows    map[string]domain.ServerConfig
	missing bool
	err     error
	calls   int
}

func newStubConfigs() *stubConfigRepository {
	return &stubConfigRepository{rows: map[string]domain.ServerConfig{}}
}

var errNoTable = errors.New(`relation "server_configs" does not exist`)

func (r *stubConfigRepository) failure() (domain.Outcome, error) {
	switch {
	case r.missing:
		return domain.OutcomeNotFound, errNoTable
	case r.err != nil:
		return domain.OutcomeError, r.err
	}
	return domain.OutcomeOK, nil
}

func (r *stubConfigRepository) ListAll(context.Context) ([]domain.ServerConfig, domain.Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if outcome, err := r.failure(); err != nil {
		return nil, outcome, err
	}
	out := make([]domain.ServerConfig, 0, len(r.rows))
	for _, c := range r.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProjectID < out[j].ProjectID })
	return out, domain.OutcomeOK, nil
}

func (r *stubConfigRepository) Upsert(_ context.Context, c *domain.ServerConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if _, err := r.failure(); err != nil {
		return err
	}
	r.rows[c.ProjectID] = *c
	return nil
}

func (r *stubConfigRepository) DeleteByProjectIDs(_ context.Context, ids []string) (domain.Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if outcome, err := r.failure(); err != nil {
		return outcome, err
	}
	for _, id := range ids {
		delete(r.rows, id)
	}
	return domain.OutcomeOK, nil
}

// stubLimiter counts calls and blocks once failures reach limit.
type stubLimiter struct {
	mu       sync.Mutex
	failures map[string]int
	limit    int
	err      error
}

func newStubLimiter(limit int) *stubLimiter {
	return &stubLimiter{failures: map[string]int{}, limit: limit}
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return false, l.err
	}
	return l.failures[key] < l.limit, nil
}

func (l *stubLimiter) Fail(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[key]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, key)
	return nil
}

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func newTestService(projects *stubProjectRepository, configs *stubConfigRepository, concurrency int) *Service {
	cfg := &config.Config{
		Admin:  config.AdminConfig{DeletePassword: "hunter2", DeleteAttemptLimit: 3},
		Import: config.ImportConfig{Concurrency: concurrency, MaxBodyBytes: 1 << 20},
	}

	var seq atomic.Int64
	s := New(projects, configs, nil, cfg, zerolog.Nop())
	s.now = func() time.Time { return fixedNow }
	s.newID = func() string { return fmt.Sprintf("gen-%d", seq.Add(1)) }
	return s
}
