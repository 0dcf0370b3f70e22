package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mcphub/directory-backend/internal/servers/domain"
)

// Export streams the whole directory as an attachment.
func (h *Handler) Export(c *gin.Context) {
	bundle, err := h.svc.Export(c.Request.Context())
	if err != nil {
		writeError(c, err, "failed to export server data")
		return
	}

	filename := fmt.Sprintf("mcp-servers-%s.json", bundle.ExportedAt.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.JSON(http.StatusOK, bundle)
}

func (h *Handler) Import(c *gin.Context) {
	body := c.Request.Body
	if h.maxImportBytes > 0 {
		body = http.MaxBytesReader(c.Writer, body, h.maxImportBytes)
	}

	req, err := domain.DecodeImportRequest(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "import payload too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid server data format"})
		return
	}

	res, err := h.svc.Import(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, "failed to import server data")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "import completed",
		"imported": res.Imported,
		"failed":   res.Failed,
		"errors":   res.Errors,
	})
}

func (h *Handler) Delete(c *gin.Context) {
	var body deleteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.svc.Delete(c.Request.Context(), body.toDomain(c.ClientIP()))
	if err != nil {
		writeError(c, err, "failed to delete servers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "servers deleted", "count": res.Count})
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err, "failed to list servers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": items})
}

func (h *Handler) Update(c *gin.Context) {
	var body updateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id, title and description are required"})
		return
	}

	p, err := h.svc.Update(c.Request.Context(), body.project())
	if err != nil {
		writeError(c, err, "failed to update server")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "server updated", "project": p})
}

func (h *Handler) RegisterProject(c *gin.Context) {
	var body registerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, title and description are required"})
		return
	}

	p, err := h.svc.Register(c.Request.Context(), body.project())
	if err != nil {
		writeError(c, err, "failed to register server")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "project": p})
}

// writeError maps service errors to a status and a caller-safe message.
// Anything unrecognised is reported as fallback with 500.
func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrInvalidBundle):
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidBundle.Error()})
	case errors.Is(err, domain.ErrMissingRequiredField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmptySelection):
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrEmptySelection.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
	case errors.Is(err, domain.ErrTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": domain.ErrTooManyAttempts.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
