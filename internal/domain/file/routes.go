package file

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the file endpoints on the protected group.
// Routes without a folder segment act on the root folder.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	files := r.Group("/files")
	{
		files.GET("", h.List)
		files.GET("/folder/:id", h.List)

		files.POST("", h.Upload)
		files.POST("/folder/:id", h.Upload)

		files.PATCH("/id/:id", h.Rename)
		files.DELETE("/:id", h.Delete)
		files.GET("/id/:id", h.Download)
	}
}
