package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/codewith-lab/BlogHive/config"
	"github.com/codewith-lab/BlogHive/controllers"
	"github.com/codewith-lab/BlogHive/middlewares"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps carries the wired controllers into the router. Everything is
// constructed once in main and injected here.
type Deps struct {
	Articles *controllers.ArticleController
	Auth     *controllers.AuthController
	Config   *config.Config
}

func InitRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000", "http://localhost:8005"}
	if raw := os.Getenv("FRONTEND_ORIGINS"); raw != "" {
		split := strings.Split(raw, ",")
		allowedOrigins = allowedOrigins[:0]
		for _, v := range split {
			trimmed := strings.TrimSpace(v)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
		if len(allowedOrigins) == 0 {
			allowedOrigins = []string{"*"}
		}
	}

	allowCreds := true
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		allowCreds = false
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCreds,
		MaxAge:           12 * time.Hour,
	}))

	// Public health endpoint for liveness/readiness checks
	r.GET("/api/health", controllers.Health)

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", deps.Auth.Login)
		auth.POST("/register", deps.Auth.Register)
	}

	// Identity resolution runs before every article route; reads stay open
	// to anonymous callers, mutations sit behind RequireAuth.
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware(deps.Config.JWT.Secret))
	{
		api.GET("/articles", deps.Articles.GetArticles)
		api.GET("/articles/:name", deps.Articles.GetArticleByName)

		authed := api.Group("")
		authed.Use(middlewares.RequireAuth())
		{
			authed.PUT("/articles/:name/upvote", deps.Articles.UpvoteArticle)
			authed.POST("/articles/:name/comments", deps.Articles.AddComment)
		}
	}

	// Non-API routes fall through to the built frontend.
	if staticDir := deps.Config.Static.Dir; staticDir != "" {
		r.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			path := filepath.Join(staticDir, filepath.Clean("/"+c.Request.URL.Path))
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				c.File(path)
				return
			}
			c.File(filepath.Join(staticDir, "index.html"))
		})
	}

	return r
}
