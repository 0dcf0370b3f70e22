package domain

import (
	"fmt"
	"strings"
	"time"
)

// Canonicalize reconciles the two identifier fields: a non-empty id wins,
// otherwise the record adopts its uuid. Afterwards ID == UUID.
func (p *Project) Canonicalize() {
	p.ID = strings.TrimSpace(p.ID)
	p.UUID = strings.TrimSpace(p.UUID)
	if p.ID == "" {
		p.ID = p.UUID
	}
	p.UUID = p.ID
}

// EnsureID canonicalizes p and assigns newID() when neither identifier
// is present. It reports whether an identifier was generated.
func (p *Project) EnsureID(newID func() string) bool {
	p.Canonicalize()
	if p.ID != "" {
		return false
	}
	p.ID = newID()
	p.UUID = p.ID
	return true
}

func (p Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: title", ErrMissingRequiredField)
	}
	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("%w: description", ErrMissingRequiredField)
	}
	return nil
}

// Label names the project in caller-facing messages.
func (p Project) Label() string {
	if t := strings.TrimSpace(p.Title); t != "" {
		return t
	}
	if p.ID != "" {
		return p.ID
	}
	if p.UUID != "" {
		return p.UUID
	}
	return "untitled"
}

func (p *Project) DefaultTimestamps(now time.Time) {
	p.CreatedAt, p.UpdatedAt = defaultTimestamps(p.CreatedAt, p.UpdatedAt, now)
}

func (c ServerConfig) Validate() error {
	if strings.TrimSpace(c.ProjectID) == "" {
		return fmt.Errorf("%w: project_id", ErrMissingRequiredField)
	}
	return nil
}

func (c *ServerConfig) DefaultTimestamps(now time.Time) {
	c.CreatedAt, c.UpdatedAt = defaultTimestamps(c.CreatedAt, c.UpdatedAt, now)
}

// defaultTimestamps fills absent values and keeps updated >= created.
func defaultTimestamps(created, updated *time.Time, now time.Time) (*time.Time, *time.Time) {
	if created == nil {
		c := now
		if updated != nil {
			c = *updated
		}
		created = &c
	}
	if updated == nil {
		u := now
		updated = &u
	}
	if updated.Before(*created) {
		u := *created
		updated = &u
	}
	return created, updated
}
