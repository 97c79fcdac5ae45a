package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"shortlink/services"
)

// NewRouter builds the HTTP gateway: the user and link APIs under /api,
// and the redirect endpoint mounted at the root.
func NewRouter(links *services.LinkService, users *services.UserService, corsOrigin string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(corsMiddleware(corsOrigin))

	linkHandler := NewLinkHandler(links)
	userHandler := NewUserHandler(users)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello world")
	})
	router.GET("/:shortId", linkHandler.Redirect)

	link := router.Group("/api/link")
	{
		link.POST("/create", linkHandler.Create)
		link.GET("/links/:userId", linkHandler.ListByUser)
		link.PUT("/update/:id", linkHandler.Update)
		link.DELETE("/delete/:id", linkHandler.Delete)
		link.GET("/analytics/date/:userId", linkHandler.AnalyticsByDate)
		link.GET("/analytics/device/:userId", linkHandler.AnalyticsByDevice)
	}

	user := router.Group("/api/user")
	{
		user.POST("/signup", userHandler.Signup)
		user.POST("/signin", userHandler.Signin)
		user.PUT("/update/:id", userHandler.UpdateProfile)
	}

	return router
}

// corsMiddleware allows a single configured origin, or any origin with an
// explicit method/header allow-list when none is configured.
func corsMiddleware(origin string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}
	if origin != "" {
		cfg.AllowOrigins = []string{origin}
	} else {
		cfg.AllowAllOrigins = true
	}
	return cors.New(cfg)
}
