package http

import (
	"encoding/json"

	"github.com/mcphub/directory-backend/internal/servers/domain"
)

// deleteRequest keeps both fields raw so a mistyped value reaches the
// service as an empty value instead of failing the bind. The password
// check then runs before the selection is looked at.
type deleteRequest struct {
	Password  json.RawMessage `json:"password"`
	ServerIDs json.RawMessage `json:"serverIds"`
}

func (r deleteRequest) toDomain(clientKey string) domain.DeleteRequest {
	var password string
	if json.Unmarshal(r.Password, &password) != nil {
		password = ""
	}
	var ids []string
	if json.Unmarshal(r.ServerIDs, &ids) != nil {
		ids = nil
	}
	return domain.DeleteRequest{Password: password, ServerIDs: ids, ClientKey: clientKey}
}

type updateRequest struct {
	ID          string `json:"id" binding:"required_without=UUID"`
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	URL         string `json:"url"`
	AuthorName  string `json:"author_name"`
	Tags        string `json:"tags"`
	Category    string `json:"category"`
}

func (r updateRequest) project() domain.Project {
	return domain.Project{
		ID:          r.ID,
		UUID:        r.UUID,
		Name:        r.Name,
		Title:       r.Title,
		Description: r.Description,
		URL:         r.URL,
		AuthorName:  r.AuthorName,
		Tags:        r.Tags,
		Category:    r.Category,
	}
}

type registerRequest struct {
	Name        string `json:"name" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	URL         string `json:"url"`
	AuthorName  string `json:"author_name"`
	Tags        string `json:"tags"`
	Category    string `json:"category"`
	Status      string `json:"status"`
}

func (r registerRequest) project() domain.Project {
	return domain.Project{
		Name:        r.Name,
		Title:       r.Title,
		Description: r.Description,
		URL:         r.URL,
		AuthorName:  r.AuthorName,
		Tags:        r.Tags,
		Category:    r.Category,
		Status:      r.Status,
	}
}
