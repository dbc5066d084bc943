package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, identityMiddleware gin.HandlerFunc) {
	group := g.Group("/items")

	// Single-item view is public; everything else is caller-scoped.
	group.GET("/:id", h.Get)

	authed := group.Group("")
	authed.Use(identityMiddleware)
	{
		authed.GET("", h.ListOwn)
		authed.GET("/search", h.Search)
		authed.POST("", h.Create)
		authed.PATCH("/:id", h.Update)
		authed.POST("/:id/comment", h.CreateComment)
	}
}
