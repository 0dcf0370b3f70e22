package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeImportRequest(t *testing.T) {
	t.Run("projects and configs", func(t *testing.T) {
		body := `{"servers":{
			"projects":[{"id":"a","uuid":"b","title":"T","description":"D","created_at":"2026-01-02T03:04:05Z"}],
			"serverConfigs":[{"project_id":"a","config":{"command":"npx","args":["x"]}}],
			"exportedAt":"2026-01-02T03:04:05Z"}}`

		req, err := DecodeImportRequest(strings.NewReader(body))
		require.NoError(t, err)
		require.Len(t, req.Projects, 1)
		assert.Equal(t, "a", req.Projects[0].ID)
		assert.Equal(t, "b", req.Projects[0].UUID)
		require.NotNil(t, req.Projects[0].CreatedAt)
		require.Len(t, req.ServerConfigs, 1)
		assert.JSONEq(t, `{"command":"npx","args":["x"]}`, string(req.ServerConfigs[0].Config))
	})

	t.Run("empty projects array is valid", func(t *testing.T) {
		req, err := DecodeImportRequest(strings.NewReader(`{"servers":{"projects":[]}}`))
		require.NoError(t, err)
		assert.NotNil(t, req.Projects)
		assert.Empty(t, req.Projects)
		assert.Nil(t, req.ServerConfigs)
	})

	t.Run("non-array serverConfigs is ignored", func(t *testing.T) {
		req, err := DecodeImportRequest(strings.NewReader(`{"servers":{"projects":[],"serverConfigs":{"a":1}}}`))
		require.NoError(t, err)
		assert.Nil(t, req.ServerConfigs)
	})

	t.Run("mistyped elements are isolated", func(t *testing.T) {
		body := `{"servers":{
			"projects":[
				{"id":"a","title":"ok","description":"d"},
				{"id":"b","title":5,"description":"d"},
				7,
				{"id":"c","title":"ok","description":"d","created_at":"yesterday"}],
			"serverConfigs":[{"project_id":1},{"project_id":"a","config":{}}]}}`

		req, err := DecodeImportRequest(strings.NewReader(body))
		require.NoError(t, err)

		require.Len(t, req.Projects, 4)
		assert.Equal(t, "a", req.Projects[0].ID)
		assert.NoError(t, req.ProjectError(0))
		assert.ErrorIs(t, req.ProjectError(1), ErrMalformedRecord)
		assert.ErrorContains(t, req.ProjectError(1), "title")
		assert.Equal(t, Project{}, req.Projects[1])
		assert.ErrorIs(t, req.ProjectError(2), ErrMalformedRecord)
		assert.ErrorIs(t, req.ProjectError(3), ErrMalformedRecord)
		assert.ErrorContains(t, req.ProjectError(3), "yesterday")

		require.Len(t, req.ServerConfigs, 2)
		assert.ErrorIs(t, req.ConfigError(0), ErrMalformedRecord)
		assert.NoError(t, req.ConfigError(1))
		assert.Equal(t, "a", req.ServerConfigs[1].ProjectID)
	})

	t.Run("well-formed input records no element errors", func(t *testing.T) {
		req, err := DecodeImportRequest(strings.NewReader(`{"servers":{"projects":[{"title":"T"}],"serverConfigs":[]}}`))
		require.NoError(t, err)
		assert.Nil(t, req.ProjectErrors)
		assert.Nil(t, req.ConfigErrors)
	})

	invalid := map[string]string{
		"not json":             `{`,
		"missing servers":      `{"projects":[]}`,
		"missing projects":     `{"servers":{}}`,
		"projects is object":   `{"servers":{"projects":{}}}`,
		"projects is null":     `{"servers":{"projects":null}}`,
		"projects is a string": `{"servers":{"projects":"[]"}}`,
	}
	for name, body := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeImportRequest(strings.NewReader(body))
			assert.ErrorIs(t, err, ErrInvalidBundle)
		})
	}
}
