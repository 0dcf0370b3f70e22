// Package backup writes periodic snapshots of the export bundle to disk.
// A snapshot file has the same shape as the export download; wrap it as
// {"servers": <file>} to import it.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/mcphub/directory-backend/config"
	"github.com/mcphub/directory-backend/internal/metrics"
	"github.com/mcphub/directory-backend/internal/servers/domain"
)

type Exporter interface {
	Export(ctx context.Context) (*domain.Bundle, error)
}

type Scheduler struct {
	exporter Exporter
	cfg      config.BackupConfig
	log      zerolog.Logger
	cron     *cron.Cron
	timeout  time.Duration
}

func NewScheduler(exporter Exporter, cfg config.BackupConfig, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		exporter: exporter,
		cfg:      cfg,
		log:      log.With().Str("component", "backup").Logger(),
		timeout:  2 * time.Minute,
	}
}

// Start registers the snapshot job. An empty schedule leaves the
// scheduler idle.
func (s *Scheduler) Start() error {
	if s.cfg.Schedule == "" {
		s.log.Info().Msg("backup schedule not set, scheduler disabled")
		return nil
	}

	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(s.cfg.Schedule, s.run); err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", s.cfg.Schedule, err)
	}

	s.cron = c
	c.Start()
	s.log.Info().Str("schedule", s.cfg.Schedule).Str("dir", s.cfg.Dir).Msg("backup scheduler started")
	return nil
}

// Stop waits for a running snapshot to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.RunOnce(ctx); err != nil {
		s.log.Error().Err(err).Msg("backup failed")
	}
}

// RunOnce exports the directory and writes it to a timestamped file in
// the backup directory, returning the file path.
func (s *Scheduler) RunOnce(ctx context.Context) (string, error) {
	path, err := s.snapshot(ctx)
	metrics.RecordBackup(err == nil)
	return path, err
}

func (s *Scheduler) snapshot(ctx context.Context) (string, error) {
	bundle, err := s.exporter.Export(ctx)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode bundle: %w", err)
	}

	name := fmt.Sprintf("mcp-servers-%s.json", bundle.ExportedAt.UTC().Format("20060102T150405Z"))
	path := filepath.Join(s.cfg.Dir, name)

	tmp, err := os.CreateTemp(s.cfg.Dir, name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("rename snapshot: %w", err)
	}

	s.log.Info().
		Str("path", path).
		Int("projects", len(bundle.Projects)).
		Int("server_configs", len(bundle.ServerConfigs)).
		Msg("backup written")
	return path, nil
}
