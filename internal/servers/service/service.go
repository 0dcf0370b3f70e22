// Package service implements bulk export, import and delete of the
// directory's projects and server configurations, plus the collaborator
// listing, update and registration operations.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mcphub/directory-backend/config"
	"github.com/mcphub/directory-backend/internal/logging"
	"github.com/mcphub/directory-backend/internal/servers/guard"
	"github.com/mcphub/directory-backend/internal/servers/repository"
)

type Service struct {
	projects repository.ProjectRepository
	configs  repository.ConfigRepository
	limiter  guard.AttemptLimiter
	cfg      *config.Config
	log      zerolog.Logger
	now      func() time.Time
	newID    func() string
}

// New wires a Service. limiter may be nil, which disables throttling of
// failed delete attempts.
func New(
	projects repository.ProjectRepository,
	configs repository.ConfigRepository,
	limiter guard.AttemptLimiter,
	cfg *config.Config,
	log zerolog.Logger,
) *Service {
	return &Service{
		projects: projects,
		configs:  configs,
		limiter:  limiter,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *Service) logger(ctx context.Context, op string) *zerolog.Logger {
	l := logging.FromContext(ctx, s.log).With().Str("operation", op).Logger()
	return &l
}

func (s *Service) importConcurrency() int {
	if s.cfg == nil || s.cfg.Import.Concurrency < 1 {
		return 1
	}
	return s.cfg.Import.Concurrency
}
