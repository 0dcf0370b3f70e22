package backup

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcphub/directory-backend/config"
	"github.com/mcphub/directory-backend/internal/servers/domain"
)

type fakeExporter struct {
	bundle *domain.Bundle
	err    error
}

func (f fakeExporter) Export(context.Context) (*domain.Bundle, error) {
	return f.bundle, f.err
}

func TestRunOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	bundle := &domain.Bundle{
		Projects:      []domain.Project{{ID: "a", UUID: "a", Title: "Alpha", Description: "d"}},
		ServerConfigs: []domain.ServerConfig{{ProjectID: "a"}},
		ExportedAt:    time.Date(2026, 10, 18, 3, 0, 0, 0, time.UTC),
	}
	s := NewScheduler(fakeExporter{bundle: bundle}, config.BackupConfig{Dir: dir}, zerolog.Nop())

	path, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mcp-servers-20261018T030000Z.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &top))
	assert.ElementsMatch(t, []string{"projects", "serverConfigs", "exportedAt"}, slices.Collect(maps.Keys(top)))

	var got domain.Bundle
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, bundle.Projects, got.Projects)
	assert.True(t, bundle.ExportedAt.Equal(got.ExportedAt))

	wrapped := `{"servers":` + string(data) + `}`
	req, err := domain.DecodeImportRequest(strings.NewReader(wrapped))
	require.NoError(t, err, "a wrapped snapshot must be accepted by import")
	assert.Equal(t, bundle.Projects, req.Projects)
	assert.Len(t, req.ServerConfigs, 1)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestRunOnce_ExportFailure(t *testing.T) {
	dir := t.TempDir()
	s := NewScheduler(fakeExporter{err: errors.New("db down")}, config.BackupConfig{Dir: dir}, zerolog.Nop())

	_, err := s.RunOnce(context.Background())
	assert.Error(t, err)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestStart(t *testing.T) {
	t.Run("empty schedule is disabled", func(t *testing.T) {
		s := NewScheduler(fakeExporter{}, config.BackupConfig{}, zerolog.Nop())
		require.NoError(t, s.Start())
		s.Stop()
	})

	t.Run("invalid schedule", func(t *testing.T) {
		s := NewScheduler(fakeExporter{}, config.BackupConfig{Schedule: "every tuesday"}, zerolog.Nop())
		assert.Error(t, s.Start())
	})

	t.Run("valid schedule", func(t *testing.T) {
		s := NewScheduler(fakeExporter{}, config.BackupConfig{Schedule: "0 0 3 * * *", Dir: t.TempDir()}, zerolog.Nop())
		require.NoError(t, s.Start())
		s.Stop()
	})
}
