package folder

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the folder endpoints on the protected group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	folders := r.Group("/folders")
	{
		folders.GET("", h.List)
		folders.GET("/root", h.GetRoot)
		folders.POST("", h.Create)
		folders.POST("/root", h.Create)
		folders.DELETE("/:id", h.Delete)
		folders.GET("/:id", h.Get)
	}
}
