package service

import (
	"context"

	"github.com/mcphub/directory-backend/internal/servers/domain"
)

// Export reads every project and, when the table is reachable, every
// server configuration. A failure on the configuration table is logged
// and yields an empty ServerConfigs list.
func (s *Service) Export(ctx context.Context) (*domain.Bundle, error) {
	log := s.logger(ctx, "export")

	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("read projects")
		return nil, &domain.StoreError{Op: "read projects", Err: err}
	}
	if projects == nil {
		projects = []domain.Project{}
	}

	configs, outcome, err := s.configs.ListAll(ctx)
	switch outcome {
	case domain.OutcomeOK:
	case domain.OutcomeNotFound:
		log.Warn().Err(err).Msg("server_configs table not found, exporting projects only")
		configs = nil
	default:
		log.Warn().Err(err).Msg("read server configs failed, exporting projects only")
		configs = nil
	}
	if configs == nil {
		configs = []domain.ServerConfig{}
	}

	log.Info().Int("projects", len(projects)).Int("server_configs", len(configs)).Msg("export complete")

	return &domain.Bundle{
		Projects:      projects,
		ServerConfigs: configs,
		ExportedAt:    s.now().UTC(),
	}, nil
}
