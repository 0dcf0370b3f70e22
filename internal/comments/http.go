package comments

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mcphub/directory-backend/internal/logging"
)

// Store is implemented by *Repo.
type Store interface {
	List(ctx context.Context, projectUUID string) ([]Comment, error)
	Create(ctx context.Context, projectUUID, author, text string) (*Comment, error)
}

type Handler struct {
	store Store
	log   zerolog.Logger
}

func Register(rg *gin.RouterGroup, store Store, log zerolog.Logger) {
	h := &Handler{store: store, log: log}

	rg.GET("", h.list)
	rg.POST("", h.create)
}

func (h *Handler) list(c *gin.Context) {
	projectUUID := strings.TrimSpace(c.Query("project_uuid"))
	if projectUUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_uuid is required"})
		return
	}

	items, err := h.store.List(c.Request.Context(), projectUUID)
	if err != nil {
		l := logging.FromContext(c.Request.Context(), h.log)
		l.Error().Err(err).Str("project_uuid", projectUUID).Msg("list comments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load comments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": items})
}

type createReq struct {
	ProjectUUID string `json:"project_uuid"`
	Author      string `json:"author"`
	Text        string `json:"text"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.ProjectUUID) == "" ||
		strings.TrimSpace(req.Author) == "" ||
		strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_uuid, author and text are required"})
		return
	}

	comment, err := h.store.Create(c.Request.Context(),
		strings.TrimSpace(req.ProjectUUID), strings.TrimSpace(req.Author), strings.TrimSpace(req.Text))
	if err != nil {
		l := logging.FromContext(c.Request.Context(), h.log)
		l.Error().Err(err).Msg("create comment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save comment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": comment})
}
