package http

import "github.com/gin-gonic/gin"

// Register mounts the server directory routes on rg.
func (h *Handler) Register(rg *gin.RouterGroup) {
	servers := rg.Group("/servers")
	servers.GET("/export", h.Export)
	servers.POST("/import", h.Import)
	servers.DELETE("/delete", h.Delete)
	servers.GET("/list", h.List)
	servers.PUT("/update", h.Update)

	rg.POST("/projects", h.RegisterProject)
}
