package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mcphub/directory-backend/internal/metrics"
	"github.com/mcphub/directory-backend/internal/servers/domain"
)

// Import upserts every project and then every server configuration. Each
// record stands alone: a failure is counted and described in the result
// and never stops the others. Results are aggregated in input order.
func (s *Service) Import(ctx context.Context, req domain.ImportRequest) (*domain.ImportResult, error) {
	if req.Projects == nil {
		return nil, fmt.Errorf("%w: projects must be an array", domain.ErrInvalidBundle)
	}
	log := s.logger(ctx, "import")
	now := s.now().UTC()

	projectErrs := make([]string, len(req.Projects))
	s.forEach(len(req.Projects), func(i int) {
		if err := req.ProjectError(i); err != nil {
			projectErrs[i] = fmt.Sprintf("%v (project at index %d)", err, i)
			return
		}
		projectErrs[i] = s.importProject(ctx, req.Projects[i], now)
	})

	configErrs := make([]string, len(req.ServerConfigs))
	s.forEach(len(req.ServerConfigs), func(i int) {
		if err := req.ConfigError(i); err != nil {
			configErrs[i] = fmt.Sprintf("server config: %v (at index %d)", err, i)
			return
		}
		configErrs[i] = s.importConfig(ctx, req.ServerConfigs[i], now)
	})

	res := &domain.ImportResult{Errors: []string{}}
	for _, msg := range projectErrs {
		if msg == "" {
			res.Imported++
			continue
		}
		res.Failed++
		res.Errors = append(res.Errors, msg)
	}
	for _, msg := range configErrs {
		if msg != "" {
			res.Errors = append(res.Errors, msg)
		}
	}

	metrics.RecordImport(res.Imported, res.Failed)
	log.Info().
		Int("imported", res.Imported).
		Int("failed", res.Failed).
		Int("server_configs", len(req.ServerConfigs)).
		Int("errors", len(res.Errors)).
		Msg("import complete")

	return res, nil
}

// forEach runs fn for 0..n-1 with at most importConcurrency calls in flight.
func (s *Service) forEach(n int, fn func(i int)) {
	var g errgroup.Group
	g.SetLimit(s.importConcurrency())
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

// importProject returns an empty string on success, otherwise the
// caller-facing failure message.
func (s *Service) importProject(ctx context.Context, p domain.Project, now time.Time) string {
	if p.EnsureID(s.newID) {
		s.logger(ctx, "import").Debug().Str("project_id", p.ID).Msg("generated identifier")
	}

	if err := p.Validate(); err != nil {
		return fmt.Sprintf("%v (project %s)", err, p.Label())
	}

	p.DefaultTimestamps(now)

	if err := s.projects.Upsert(ctx, &p); err != nil {
		s.logger(ctx, "import").Error().Err(err).Str("project_id", p.ID).Msg("upsert project")
		return fmt.Sprintf("failed to upload project: %s", p.Label())
	}
	return ""
}

func (s *Service) importConfig(ctx context.Context, c domain.ServerConfig, now time.Time) string {
	if err := c.Validate(); err != nil {
		return fmt.Sprintf("server config: %v", err)
	}

	c.DefaultTimestamps(now)

	if err := s.configs.Upsert(ctx, &c); err != nil {
		s.logger(ctx, "import").Error().Err(err).Str("project_id", c.ProjectID).Msg("upsert server config")
		return fmt.Sprintf("failed to upload server config: %s", c.ProjectID)
	}
	return ""
}
