package webserver

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func attachRoutes(r *gin.Engine, deps Deps) {
	// The landing page is served from arbitrary origins, so CORS stays open.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type"},
	}))

	// The endpoint is write-only; anything but POST gets the structured
	// failure body instead of gin's default empty 405.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"success": false, "error": "Method not allowed"})
	})

	leadH := NewLeads(deps)

	v1 := r.Group("/v1")
	{
		v1.POST("/leads", AntiSpam(deps.Throttle), leadH.Create)
	}
}
