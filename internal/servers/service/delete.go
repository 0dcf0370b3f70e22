package service

import (
	"context"
	"crypto/subtle"

	"github.com/mcphub/directory-backend/internal/metrics"
	"github.com/mcphub/directory-backend/internal/servers/domain"
)

// Delete removes the selected projects and their configurations. The
// password is checked before anything else touches the store. The
// configuration cleanup is best effort; the project delete is not.
// Count echoes the number of requested identifiers.
func (s *Service) Delete(ctx context.Context, req domain.DeleteRequest) (*domain.DeleteResult, error) {
	log := s.logger(ctx, "delete")

	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, req.ClientKey)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("attempt limiter unavailable, continuing")
		case !ok:
			metrics.RecordDeleteRejected("throttled")
			log.Warn().Str("client", req.ClientKey).Msg("delete throttled")
			return nil, domain.ErrTooManyAttempts
		}
	}

	if !s.passwordMatches(req.Password) {
		metrics.RecordDeleteRejected("unauthorized")
		if s.limiter != nil {
			if err := s.limiter.Fail(ctx, req.ClientKey); err != nil {
				log.Warn().Err(err).Msg("record failed attempt")
			}
		}
		return nil, domain.ErrUnauthorized
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, req.ClientKey); err != nil {
			log.Warn().Err(err).Msg("reset attempt counter")
		}
	}

	if len(req.ServerIDs) == 0 {
		return nil, domain.ErrEmptySelection
	}

	outcome, err := s.configs.DeleteByProjectIDs(ctx, req.ServerIDs)
	switch outcome {
	case domain.OutcomeOK:
	case domain.OutcomeNotFound:
		log.Info().Msg("server_configs table not found, skipping config cleanup")
	default:
		log.Warn().Err(err).Msg("delete server configs failed, continuing with projects")
	}

	n, err := s.projects.DeleteByIDs(ctx, req.ServerIDs)
	if err != nil {
		log.Error().Err(err).Strs("ids", req.ServerIDs).Msg("delete projects")
		return nil, &domain.StoreError{Op: "delete projects", Err: err}
	}

	metrics.RecordDelete(len(req.ServerIDs))
	log.Info().Int("requested", len(req.ServerIDs)).Int64("deleted", n).Msg("delete complete")

	return &domain.DeleteResult{Count: len(req.ServerIDs)}, nil
}

func (s *Service) passwordMatches(given string) bool {
	if s.cfg == nil || s.cfg.Admin.DeletePassword == "" || given == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(s.cfg.Admin.DeletePassword)) == 1
}
