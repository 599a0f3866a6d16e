package routes

import (
	"time"

	"blogapi/auth"
	"blogapi/graph"
	"blogapi/handlers"
	"blogapi/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
)

// SetupRouter assembles the gin engine: CORS, annotate-only auth, the
// GraphQL endpoint, the image upload endpoint, and static image serving.
func SetupRouter(schema graphql.Schema, tokens *auth.TokenService, imagesDir string) *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "Accept"},
		MaxAge:          12 * time.Hour,
	}))

	router.Use(middleware.Auth(tokens))

	router.PUT("/post-image", handlers.PostImage(imagesDir))
	router.Static("/images", imagesDir)

	gql := graph.Handler(schema)
	router.POST("/graphql", gql)
	router.GET("/graphql", gql)

	return router
}
