package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Project
		wantID   string
		wantUUID string
	}{
		{name: "id wins over uuid", in: Project{ID: "a", UUID: "b"}, wantID: "a", wantUUID: "a"},
		{name: "uuid adopted when id missing", in: Project{UUID: "b"}, wantID: "b", wantUUID: "b"},
		{name: "id only", in: Project{ID: "a"}, wantID: "a", wantUUID: "a"},
		{name: "whitespace id falls back to uuid", in: Project{ID: "  ", UUID: "b"}, wantID: "b", wantUUID: "b"},
		{name: "neither", in: Project{}, wantID: "", wantUUID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Canonicalize()
			assert.Equal(t, tt.wantID, p.ID)
			assert.Equal(t, tt.wantUUID, p.UUID)
		})
	}
}

func TestEnsureID(t *testing.T) {
	gen := func() string { return "generated" }

	t.Run("generates when both identifiers are absent", func(t *testing.T) {
		p := Project{Title: "x"}
		assert.True(t, p.EnsureID(gen))
		assert.Equal(t, "generated", p.ID)
		assert.Equal(t, "generated", p.UUID)
	})

	t.Run("keeps an existing identifier", func(t *testing.T) {
		p := Project{UUID: "u-1"}
		assert.False(t, p.EnsureID(gen))
		assert.Equal(t, "u-1", p.ID)
	})
}

func TestProjectValidate(t *testing.T) {
	assert.NoError(t, Project{Title: "t", Description: "d"}.Validate())

	err := Project{Title: " ", Description: "d"}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRequiredField))
	assert.Contains(t, err.Error(), "title")

	err = Project{Title: "t"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description")
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Weather", Project{ID: "1", Title: "Weather"}.Label())
	assert.Equal(t, "1", Project{ID: "1"}.Label())
	assert.Equal(t, "untitled", Project{}.Label())
}

func TestDefaultTimestamps(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-time.Hour)
	later := now.Add(time.Hour)

	t.Run("both absent", func(t *testing.T) {
		var p Project
		p.DefaultTimestamps(now)
		require.NotNil(t, p.CreatedAt)
		require.NotNil(t, p.UpdatedAt)
		assert.Equal(t, now, *p.CreatedAt)
		assert.Equal(t, now, *p.UpdatedAt)
	})

	t.Run("present values are kept", func(t *testing.T) {
		p := Project{CreatedAt: &earlier, UpdatedAt: &later}
		p.DefaultTimestamps(now)
		assert.Equal(t, earlier, *p.CreatedAt)
		assert.Equal(t, later, *p.UpdatedAt)
	})

	t.Run("created only", func(t *testing.T) {
		p := Project{CreatedAt: &later}
		p.DefaultTimestamps(now)
		assert.Equal(t, later, *p.CreatedAt)
		assert.Equal(t, later, *p.UpdatedAt, "updated_at must not precede created_at")
	})

	t.Run("updated only", func(t *testing.T) {
		c := ServerConfig{ProjectID: "p", UpdatedAt: &earlier}
		c.DefaultTimestamps(now)
		assert.Equal(t, earlier, *c.CreatedAt)
		assert.Equal(t, earlier, *c.UpdatedAt)
	})

	t.Run("inverted values are repaired", func(t *testing.T) {
		p := Project{CreatedAt: &later, UpdatedAt: &earlier}
		p.DefaultTimestamps(now)
		assert.False(t, p.UpdatedAt.Before(*p.CreatedAt))
	})
}

func TestServerConfigValidate(t *testing.T) {
	assert.NoError(t, ServerConfig{ProjectID: "p"}.Validate())
	assert.ErrorIs(t, ServerConfig{}.Validate(), ErrMissingRequiredField)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "ok", OutcomeOK.String())
	assert.Equal(t, "not_found", OutcomeNotFound.String())
	assert.Equal(t, "error", OutcomeError.String())
}
