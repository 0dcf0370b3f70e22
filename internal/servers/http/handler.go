package http

import (
	"context"

	"github.com/mcphub/directory-backend/internal/servers/domain"
)

// Service is the part of service.Service the handlers use.
type Service interface {
	Export(ctx context.Context) (*domain.Bundle, error)
	Import(ctx context.Context, req domain.ImportRequest) (*domain.ImportResult, error)
	Delete(ctx context.Context, req domain.DeleteRequest) (*domain.DeleteResult, error)
	List(ctx context.Context) ([]domain.ProjectSummary, error)
	Update(ctx context.Context, p domain.Project) (*domain.Project, error)
	Register(ctx context.Context, p domain.Project) (*domain.Project, error)
}

type Handler struct {
	svc            Service
	maxImportBytes int64
}

func New(svc Service, maxImportBytes int64) *Handler {
	return &Handler{svc: svc, maxImportBytes: maxImportBytes}
}
