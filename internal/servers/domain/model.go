package domain

import (
	"encoding/json"
	"time"
)

// StatusCreated is written by registration and by collaborator updates.
// Other values are stored as received.
const StatusCreated = "created"

// Project is one MCP server listing. ID and UUID name the same record;
// see Canonicalize.
type Project struct {
	ID          string     `json:"id"`
	UUID        string     `json:"uuid"`
	Name        string     `json:"name"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	AuthorName  string     `json:"author_name"`
	Tags        string     `json:"tags"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ServerConfig holds the free-form configuration payload of one project.
// At most one exists per ProjectID.
type ServerConfig struct {
	ProjectID string          `json:"project_id"`
	Config    json.RawMessage `json:"config,omitempty"`
	CreatedAt *time.Time      `json:"created_at,omitempty"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// Bundle is the export document. It is also the payload import accepts
// under the "servers" key.
type Bundle struct {
	Projects      []Project      `json:"projects"`
	ServerConfigs []ServerConfig `json:"serverConfigs"`
	ExportedAt    time.Time      `json:"exportedAt"`
}

// ImportRequest carries the decoded records. ProjectErrors and ConfigErrors
// are indexed like Projects and ServerConfigs; a non-nil entry means that
// element could not be decoded and its zero value must not be stored.
type ImportRequest struct {
	Projects      []Project
	ServerConfigs []ServerConfig
	ProjectErrors []error
	ConfigErrors  []error
}

func (r ImportRequest) ProjectError(i int) error { return errorAt(r.ProjectErrors, i) }

func (r ImportRequest) ConfigError(i int) error { return errorAt(r.ConfigErrors, i) }

func errorAt(errs []error, i int) error {
	if i < len(errs) {
		return errs[i]
	}
	return nil
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
}

// DeleteRequest carries the shared secret and the selection. ClientKey
// identifies the caller for attempt throttling.
type DeleteRequest struct {
	Password  string
	ServerIDs []string
	ClientKey string
}

type DeleteResult struct {
	Count int `json:"count"`
}

// ProjectSummary is the row shape of the collaborator listing.
type ProjectSummary struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// Outcome classifies access to the optional configuration table.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "error"
	}
}
