package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/swipeup-app/swipeup/internal/config"
	"github.com/swipeup-app/swipeup/internal/handlers"
	"github.com/swipeup-app/swipeup/internal/middleware"
	"github.com/swipeup-app/swipeup/internal/store"
)

func NewRouter(cfg *config.Config, s store.Store) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Admin-Password"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := handlers.New(cfg, s)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/signup", h.Signup)
			auth.POST("/signin", h.Signin)
			auth.GET("/me", middleware.AuthRequired(s), h.Me)
			auth.POST("/logout", middleware.AuthOptional(s), h.Logout)
		}

		profile := api.Group("/profile", middleware.AuthRequired(s))
		{
			profile.GET("", h.GetProfile)
			profile.PATCH("", h.UpdateProfile)
		}

		startups := api.Group("/startups")
		{
			startups.GET("", middleware.AuthOptional(s), h.Feed)
			startups.POST("", middleware.AuthOptional(s), h.SubmitStartup)
			startups.GET("/:id", h.GetStartup)
		}

		api.GET("/my/startups", middleware.AuthRequired(s), h.MyStartups)
		api.GET("/favorites", middleware.AuthRequired(s), h.Favorites)
		api.GET("/rating", h.Rating)

		votes := api.Group("/votes", middleware.AuthRequired(s))
		{
			votes.POST("", h.Vote)
			votes.DELETE("", h.Unvote)
			votes.POST("/undo", h.UndoVote)
		}

		comments := api.Group("/comments")
		{
			comments.GET("", h.ListComments)
			comments.POST("", middleware.AuthRequired(s), h.PostComment)
			comments.DELETE("/:id", middleware.AuthRequired(s), h.DeleteComment)
		}

		api.POST("/payments", middleware.AuthRequired(s), h.CompletePayment)

		admin := api.Group("/admin")
		{
			admin.POST("/login", h.AdminLogin)

			guarded := admin.Group("", middleware.AdminRequired(cfg.AdminPassword))
			{
				guarded.GET("/startups", h.AdminListStartups)
				guarded.PATCH("/startups/:id", h.AdminUpdateStartup)
				guarded.DELETE("/startups/:id", h.AdminDeleteStartup)
				guarded.GET("/stats", h.AdminStats)
			}
		}
	}

	return r
}
