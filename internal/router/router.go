package router

import (
	"net/http"
	"plantastic/internal/handlers"
	"plantastic/internal/middleware"
	"plantastic/internal/realtime"
	"plantastic/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps are the long-lived services the routes are served by.
type Deps struct {
	DB       *gorm.DB
	Tokens   *services.TokenService
	Accounts *services.AccountService
	Forum    *services.ForumService
	Plants   *services.PlantCatalog
	Intake   *services.IntakeService
	Hub      *realtime.Hub
	SiteURL  string
	// Pages turns on the HTML shells; it needs templates and sessions on the engine.
	Pages bool
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Handlers
	authHandler := handlers.NewAuthHandler(d.Accounts)
	userHandler := handlers.NewUserHandler(d.Accounts)
	postHandler := handlers.NewPostHandler(d.Forum, d.Hub)
	voteHandler := handlers.NewVoteHandler(d.Forum, d.Hub)
	plantHandler := handlers.NewPlantHandler(d.Plants)
	intakeHandler := handlers.NewIntakeHandler(d.Intake)
	healthHandler := handlers.NewHealthHandler(d.DB)
	pageHandler := handlers.NewPageHandler()
	seoHandler := handlers.NewSEOHandler(d.SiteURL, d.Forum)

	r.Use(middleware.LoadCaller(d.Tokens))

	// Public routes
	r.GET("/health", healthHandler.Check)
	r.GET("/robots.txt", seoHandler.RobotsTxt)
	r.GET("/sitemap.xml", seoHandler.SitemapXML)
	r.GET("/posts", postHandler.List)        // optional caller for hasUpvoted/hasDownvoted
	r.GET("/posts/:id", postHandler.Detail)
	r.GET("/plants", plantHandler.List)
	r.GET("/plants/:name", plantHandler.Detail)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)
	r.POST("/complaint", intakeHandler.Complaint)
	r.POST("/newsletter/subscribe", intakeHandler.Subscribe)
	r.POST("/newsletter/unsubscribe", intakeHandler.Unsubscribe)
	if d.Hub != nil {
		r.GET("/ws", handlers.NewRealtimeHandler(d.Hub).Stream)
	}

	// Protected routes (bearer token)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/posts", postHandler.Create)
		authorized.DELETE("/posts/:id", postHandler.Delete)
		authorized.POST("/posts/:id/comments", postHandler.CreateComment)
		authorized.POST("/posts/:id/upvote", voteHandler.Upvote)
		authorized.POST("/posts/:id/downvote", voteHandler.Downvote)

		authorized.GET("/verify-token", authHandler.VerifyToken)
		authorized.GET("/profile", userHandler.Profile)
		authorized.PUT("/profile", userHandler.UpdateProfile)
		authorized.GET("/favorites", userHandler.Favorites)
		authorized.POST("/favorites", userHandler.AddFavorite)
		authorized.DELETE("/favorites", userHandler.RemoveFavorite)
	}

	if !d.Pages {
		r.NoRoute(func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		})
		return
	}

	// Page shells
	pages := r.Group("/")
	pages.Use(middleware.LoadUser(d.DB))
	{
		pages.GET("/", pageHandler.Home)
		pages.GET("/forum", pageHandler.Forum)
		pages.GET("/explore", pageHandler.Plants)
		pages.GET("/about", pageHandler.About)
		pages.GET("/login", pageHandler.ShowLogin)
		pages.GET("/register", pageHandler.ShowRegister)
		pages.GET("/account", pageHandler.ShowProfile)
	}
	r.NoRoute(middleware.LoadUser(d.DB), pageHandler.NotFound)
}
