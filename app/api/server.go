package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewServer wires the preview routes. The server only reads files the
// renderer already wrote; it holds no pipeline state of its own.
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", handler.GetIndex)
	r.GET("/index.html", handler.GetIndex)
	r.GET("/data.json", handler.GetData)
	r.GET("/health", handler.GetHealth)
	r.GET("/stats", handler.GetStats)

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	return r
}
