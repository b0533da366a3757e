package router

import (
	"net/http"
	"time"

	"github.com/alfredjoe/Online-Quiz/internal/server/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ExtractHandler defines the interface for the upload handler.
type ExtractHandler interface {
	HandleExtract(c *gin.Context)
}

// New wires up handlers to the Gin engine.
func New(extract ExtractHandler) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.RequestLogger(),
		middleware.Recover(),
		cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:   []string{middleware.RequestIDHeader},
			MaxAge:          12 * time.Hour,
		}),
	)

	// Liveness probe
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	{
		api.POST("/extract-text", extract.HandleExtract)
	}

	return r
}
